package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/backmassage/locremix/internal/check"
	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/display"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/logging"
	"github.com/backmassage/locremix/internal/pipeline"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "locremix",
		Short: "Audit and fix component names in the localization file",
		Long: `locremix builds a catalog of ship components (coolers, power plants,
shields, quantum drives) from the extracted game records, derives each
component's canonical code (class letter + size + grade, e.g. M3B) and
reconciles the names in global.ini against it.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (LOCREMIX_* prefix)
3. Project config (locremix.toml, searched upward)
4. Default values`,
		Version:           fmt.Sprintf("%s (%s)", version, commit),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Config file (default: locremix.toml searched upward)")
	config.AddDisplayFlags(root.PersistentFlags())

	root.AddCommand(
		newAuditCmd(a),
		newFixCmd(a),
		newRunCmd(a),
		newMergeCmd(a),
		newOverlayCmd(a),
		newCheckCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and opens the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, file, err := config.Load(config.LoadOptions{File: a.cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	if file != "" {
		log.Debug(cfg.Display.Verbose, "Config: %s", file)
	}
	return nil
}

// strict converts remaining issues into errIssues when --strict is set.
func (a *app) strict(stats pipeline.RunStats) error {
	if a.cfg.Run.Strict && !stats.Clean() {
		return errIssues
	}
	return nil
}

func newAuditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report components whose names lack their canonical code",
		Long: `Audit builds the component catalog, checks every name in the
localization file and prints the report. Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("report") {
				a.cfg.Paths.Report = ""
			}
			stats, err := pipeline.Audit(cmd.Context(), a.cfg, a.log, a.stdout)
			if err != nil {
				return err
			}
			return a.strict(stats)
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	config.AddReportFlags(fs)
	fs.String("report", "", "Also write the report to this file")
	fs.Bool("strict", false, "Exit with status 2 when issues remain")
	return cmd
}

func newFixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Prefix mismatched names with their canonical code",
		Long: `Fix rewrites the value of every mismatched name line in place, keeping
the existing base name, line order, comments, line endings and encoding.
Placeholder values are skipped. The file is only written when something changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := pipeline.Fix(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			return a.strict(stats)
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	fs.BoolP("dry-run", "d", false, "Show updates without writing")
	fs.Bool("strict", false, "Exit with status 2 when issues remain")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, audit, fix, verify and optionally deploy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			display.PrintBanner(a.stdout)
			if err := check.CheckDeps(a.cfg); err != nil {
				return err
			}
			if a.cfg.Run.DryRun {
				a.log.Warn("DRY RUN: no files will be written")
			}
			stats, err := pipeline.Run(cmd.Context(), a.cfg, a.log, a.stdout)
			if err != nil {
				return err
			}
			return a.strict(stats)
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	config.AddReportFlags(fs)
	config.AddRunFlags(fs)
	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge OLD_REMIX NEW_STOCK [OUTPUT]",
		Short: "Carry hand-edited values over to a new patch's stock file",
		Long: `Merge keeps the old remix value for every key the new stock file still
has, takes stock values for new keys, brands the version key and reports
keys the game removed. Output is sorted by key. OUTPUT defaults to the
localization file resolved from the pack root.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ""
			if len(args) == 3 {
				out = args[2]
			} else {
				p, err := pipeline.LocalizationPath(a.cfg)
				if err != nil {
					return errors.WithHint(err, "pass OUTPUT explicitly")
				}
				out = p
			}
			_, err := pipeline.MergeFiles(a.cfg, a.log, args[0], args[1], out)
			return err
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	config.AddMergeFlags(fs)
	fs.BoolP("dry-run", "d", false, "Merge without writing")
	return cmd
}

func newOverlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay STRINGS_FILE [TARGET]",
		Short: "Apply a hand-kept strings file onto the localization file",
		Long: `Overlay replaces the value of every key of STRINGS_FILE in TARGET and
appends keys TARGET lacks. TARGET defaults to the localization file resolved
from the pack root. With --deploy the result is copied into the install.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 2 {
				target = args[1]
			} else {
				p, err := pipeline.LocalizationPath(a.cfg)
				if err != nil {
					return err
				}
				target = p
			}
			if _, err := pipeline.OverlayFile(a.cfg, a.log, target, args[0]); err != nil {
				return err
			}
			if !a.cfg.Deploy.Enabled || a.cfg.Run.DryRun {
				return nil
			}
			dst, err := pipeline.Deploy(target, a.cfg.Deploy.InstallDir, a.cfg.Paths.Language)
			if err != nil {
				return err
			}
			a.log.Success("Deployed to: %s", dst)
			return nil
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	fs.BoolP("dry-run", "d", false, "Apply without writing")
	fs.Bool("deploy", false, "Copy the result into the game install")
	fs.String("install-dir", "", "Game channel directory to deploy into")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check tools, language pack, localization file and records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			display.PrintBanner(a.stdout)
			if !check.RunCheck(a.cfg, a.log) {
				return errors.New("check failed")
			}
			return nil
		},
	}
	fs := cmd.Flags()
	config.AddInputFlags(fs)
	config.AddRunFlags(fs)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or show the configuration",
		// No logger is needed and an invalid file must not block "init".
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the default configuration to PATH (default: locremix.toml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, file, err := config.Load(config.LoadOptions{File: a.cfgFile, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			if file != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# from %s\n", file)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "locremix %s (%s)\n", version, commit)
		},
	}
}
