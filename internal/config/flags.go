package config

// This file registers CLI flags on pflag sets and binds them to config keys.
// Flags are grouped into display, input, report, run, extract/deploy and merge
// so each command can pick the groups it needs. Load only binds flags that
// exist on the set, and viper only prefers a flag over file and env values
// when the user actually passed it.

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/backmassage/locremix/internal/errors"
)

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"verbose":            "display.verbose",
	"color":              "display.color",
	"log":                "display.log_file",
	"no-progress":        "display.progress",
	"localization":       "paths.localization",
	"records":            "paths.extracted",
	"encodings":          "paths.encodings",
	"pack-root":          "paths.pack_root",
	"version-constraint": "paths.version_constraint",
	"channel":            "paths.channels",
	"language":           "paths.language",
	"report":             "paths.report",
	"format":             "audit.format",
	"limit":              "audit.report_limit",
	"dry-run":            "run.dry_run",
	"strict":             "run.strict",
	"extract":            "extract.enabled",
	"p4k":                "extract.p4k",
	"deploy":             "deploy.enabled",
	"install-dir":        "deploy.install_dir",
	"version-key":        "merge.version_key",
	"branding":           "merge.branding_suffix",
	"output-encoding":    "merge.output_encoding",
}

// AddDisplayFlags registers -v/--verbose, --color, --log and --no-progress.
func AddDisplayFlags(fs *pflag.FlagSet) {
	d := DefaultConfig().Display
	color := d.Color
	fs.BoolP("verbose", "v", d.Verbose, "Verbose output")
	fs.Var(&colorModeValue{&color}, "color", "Color output: auto | always | never")
	fs.StringP("log", "l", d.LogFile, "Append JSON logs to file")
	fs.Var(&invertedBool{v: !d.Progress}, "no-progress", "Disable the progress bar")
	fs.Lookup("no-progress").NoOptDefVal = "true"
}

// AddInputFlags registers the localization and record location flags.
func AddInputFlags(fs *pflag.FlagSet) {
	p := DefaultConfig().Paths
	fs.StringP("localization", "i", p.Localization, "Localization file (default: resolved from the pack root)")
	fs.StringP("records", "r", p.Extracted, "Root of the extracted record tree")
	fs.StringSlice("encodings", p.Encodings, "Decode order for localization files")
	fs.String("pack-root", p.PackRoot, "Directory holding <version>/<channel>/ folders")
	fs.String("version-constraint", p.VersionConstraint, "Only consider versions matching this constraint (e.g. \"< 4.5\")")
	fs.StringSlice("channel", p.Channels, "Channel preference order")
	fs.String("language", p.Language, "Localization language folder")
}

// AddReportFlags registers --format and --limit.
func AddReportFlags(fs *pflag.FlagSet) {
	a := DefaultConfig().Audit
	format := a.Format
	fs.VarP(&reportFormatValue{&format}, "format", "f", "Report format: text | json | yaml")
	fs.Int("limit", a.ReportLimit, "Entries per section in the text report")
}

// AddRunFlags registers behavior, extraction and deployment flags.
func AddRunFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.BoolP("dry-run", "d", d.Run.DryRun, "Audit only; do not write fixes")
	fs.Bool("strict", d.Run.Strict, "Exit with status 2 when issues remain")
	fs.String("report", d.Paths.Report, "Write the audit report to this file")
	fs.Bool("extract", d.Extract.Enabled, "Run unp4k/unforge before auditing")
	fs.String("p4k", d.Extract.P4K, "Path to Data.p4k")
	fs.Bool("deploy", d.Deploy.Enabled, "Copy the result into the game install")
	fs.String("install-dir", d.Deploy.InstallDir, "Game channel directory to deploy into")
}

// AddMergeFlags registers the version marker and output encoding flags.
func AddMergeFlags(fs *pflag.FlagSet) {
	m := DefaultConfig().Merge
	fs.String("version-key", m.VersionKey, "Key that receives the branding suffix")
	fs.String("branding", m.BrandingSuffix, "Suffix appended to the version key's value")
	fs.String("output-encoding", m.OutputEncoding, "Encoding of the merged file")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}
	return nil
}

// pflag.Value adapters so enum types are checked at parse time.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		*c.p = m
	default:
		return errors.Newf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type reportFormatValue struct{ p *ReportFormat }

func (r *reportFormatValue) String() string { return string(*r.p) }
func (r *reportFormatValue) Type() string   { return "format" }
func (r *reportFormatValue) Set(s string) error {
	switch f := ReportFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		*r.p = f
	default:
		return errors.Newf("invalid report format %q (use 'text', 'json' or 'yaml')", s)
	}
	return nil
}

// invertedBool backs a --no-x flag bound to a positive key: its string form
// is the positive value so viper stores the right boolean.
type invertedBool struct{ v bool }

func (b *invertedBool) String() string {
	if b.v {
		return "false"
	}
	return "true"
}
func (b *invertedBool) Type() string { return "bool" }
func (b *invertedBool) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1", "t":
		b.v = true
	case "false", "0", "f":
		b.v = false
	default:
		return errors.Newf("invalid boolean %q", s)
	}
	return nil
}
