package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/fsutil"
)

// FileName is the project config file searched for upward from the working directory.
const FileName = "locremix.toml"

// EnvPrefix prefixes environment overrides, e.g. LOCREMIX_AUDIT_FORMAT=json.
const EnvPrefix = "LOCREMIX"

// LoadOptions tells Load where to look.
type LoadOptions struct {
	File  string         // Explicit config file; must exist when set.
	Dir   string         // Start of the upward search; default working directory.
	Flags *pflag.FlagSet // Flags registered by the Add*Flags helpers.
}

// Load builds a Config from defaults, the config file, LOCREMIX_* variables
// and changed flags, in increasing precedence. It returns the file used ("" if none).
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v, DefaultConfig())

	file := opts.File
	if file == "" {
		file = FindConfigFile(opts.Dir)
	} else if _, err := os.Stat(file); err != nil {
		return nil, "", errors.WithHint(
			errors.Wrapf(errors.ErrInputNotFound, "config file %s", file),
			"run 'locremix config init' to create one",
		)
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.Wrapf(err, "read config %s", file)
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, "", err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, file, nil
}

// SetDefaults registers every key of d so that env overrides and Unmarshal see it.
func SetDefaults(v *viper.Viper, d Config) {
	v.SetDefault("paths.pack_root", d.Paths.PackRoot)
	v.SetDefault("paths.version_constraint", d.Paths.VersionConstraint)
	v.SetDefault("paths.channels", d.Paths.Channels)
	v.SetDefault("paths.language", d.Paths.Language)
	v.SetDefault("paths.localization", d.Paths.Localization)
	v.SetDefault("paths.extracted", d.Paths.Extracted)
	v.SetDefault("paths.report", d.Paths.Report)
	v.SetDefault("paths.encodings", d.Paths.Encodings)

	v.SetDefault("catalog.record_dir", d.Catalog.RecordDir)
	v.SetDefault("catalog.keywords", d.Catalog.Keywords)
	v.SetDefault("catalog.progress_every", d.Catalog.ProgressEvery)

	v.SetDefault("naming.class_codes", d.Naming.ClassCodes)
	v.SetDefault("naming.default_code", d.Naming.DefaultCode)

	v.SetDefault("audit.placeholder_markers", d.Audit.PlaceholderMarkers)
	v.SetDefault("audit.report_limit", d.Audit.ReportLimit)
	v.SetDefault("audit.format", string(d.Audit.Format))

	v.SetDefault("merge.version_key", d.Merge.VersionKey)
	v.SetDefault("merge.branding_suffix", d.Merge.BrandingSuffix)
	v.SetDefault("merge.force_new_keys", d.Merge.ForceNewKeys)
	v.SetDefault("merge.output_encoding", d.Merge.OutputEncoding)

	v.SetDefault("extract.enabled", d.Extract.Enabled)
	v.SetDefault("extract.p4k", d.Extract.P4K)
	v.SetDefault("extract.out_dir", d.Extract.OutDir)
	v.SetDefault("extract.unp4k", d.Extract.Unp4k)
	v.SetDefault("extract.unforge", d.Extract.Unforge)
	v.SetDefault("extract.unp4k_timeout_seconds", d.Extract.Unp4kTimeoutSeconds)
	v.SetDefault("extract.unforge_timeout_seconds", d.Extract.UnforgeTimeoutSeconds)

	v.SetDefault("deploy.enabled", d.Deploy.Enabled)
	v.SetDefault("deploy.install_dir", d.Deploy.InstallDir)

	v.SetDefault("display.verbose", d.Display.Verbose)
	v.SetDefault("display.color", string(d.Display.Color))
	v.SetDefault("display.log_file", d.Display.LogFile)
	v.SetDefault("display.progress", d.Display.Progress)

	v.SetDefault("run.dry_run", d.Run.DryRun)
	v.SetDefault("run.strict", d.Run.Strict)
}

// FindConfigFile walks up from dir (default: working directory) and returns
// the first FileName found, or "".
func FindConfigFile(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, _ = filepath.Abs(dir)
	for {
		p := filepath.Join(dir, FileName)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// WriteDefault writes the default configuration as TOML. An existing file is
// only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it",
		)
	}
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "encode default config")
	}
	header := "# locremix configuration. Every key is optional; values shown are the defaults.\n" +
		"# Environment variables override the file: LOCREMIX_<SECTION>_<KEY>, e.g. LOCREMIX_AUDIT_FORMAT=json.\n\n"
	return fsutil.WriteFileAtomic(path, append([]byte(header), data...), 0o644)
}
