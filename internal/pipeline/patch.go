package pipeline

import (
	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/logging"
	"github.com/backmassage/locremix/internal/merge"
)

// MergeOptions maps the merge section onto merge.Options.
func MergeOptions(cfg *config.Config) merge.Options {
	return merge.Options{
		VersionKey:     cfg.Merge.VersionKey,
		BrandingSuffix: cfg.Merge.BrandingSuffix,
		ForceNewKeys:   cfg.Merge.ForceNewKeys,
	}
}

// MergeFiles carries the hand edits of oldPath over the stock file of a new
// patch and writes the sorted result to outPath in merge.output_encoding.
func MergeFiles(cfg *config.Config, log *logging.Logger, oldPath, stockPath, outPath string) (*merge.Result, error) {
	log.Info("Old Remix: %s", oldPath)
	log.Info("New Stock: %s", stockPath)
	log.Info("Output:    %s", outPath)

	enc, err := cfg.OutputEncoding()
	if err != nil {
		return nil, err
	}
	old, err := kvs.Load(oldPath, Encodings(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "old remix")
	}
	log.Info("  Loaded %d remixed entries", old.Len())
	stock, err := kvs.Load(stockPath, Encodings(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "new stock")
	}
	log.Info("  Loaded %d stock entries", stock.Len())

	res := merge.New(MergeOptions(cfg)).Merge(old, stock)
	log.Info("  Kept %d existing remixed values (%d unchanged)", res.KeptRemixed, res.KeptStock)
	log.Info("  Added %d new stock entries, %d forced", res.Added, res.Forced)
	log.Info("  Total entries: %d", res.Store.Len())

	if len(res.Removed) > 0 {
		log.Warn("%d entries from old remix not in new stock (removed from game)", len(res.Removed))
		for _, k := range res.Removed {
			log.Debug(cfg.Display.Verbose, "  removed: %s", k)
		}
	}

	if cfg.Run.DryRun {
		log.Warn("[DRY] Would write %s", outPath)
		return res, nil
	}
	if err := kvs.SaveSorted(outPath, res.Store, enc); err != nil {
		return nil, errors.Wrapf(err, "save %s", outPath)
	}
	log.Success("Wrote %s", outPath)
	return res, nil
}

// OverlayFile writes every entry of overlayPath into targetPath, keeping the
// target's layout and encoding.
func OverlayFile(cfg *config.Config, log *logging.Logger, targetPath, overlayPath string) (merge.OverlayResult, error) {
	doc, err := kvs.LoadDocument(targetPath, Encodings(cfg))
	if err != nil {
		return merge.OverlayResult{}, err
	}
	overlay, err := kvs.Load(overlayPath, Encodings(cfg))
	if err != nil {
		return merge.OverlayResult{}, errors.Wrap(err, "overlay")
	}

	res := merge.Overlay(doc, overlay)
	log.Info("Replaced %d values, appended %d new keys", res.Replaced, res.Appended)

	if cfg.Run.DryRun {
		log.Warn("[DRY] Would update %s", targetPath)
		return res, nil
	}
	if err := doc.WriteFile(targetPath); err != nil {
		return res, errors.Wrapf(err, "save %s", targetPath)
	}
	log.Success("Updated: %s", targetPath)
	log.Info("Source:  %s", overlayPath)
	return res, nil
}
