package relconf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kfkonrad/relconf/internal/version"
	"github.com/kfkonrad/relconf/pkg/config"
	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/filesystem"
	"github.com/kfkonrad/relconf/pkg/injection"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/shell"
	"github.com/kfkonrad/relconf/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// stdinConfig as --config reads the root configuration from standard input
const stdinConfig = "-"

type rootOptions struct {
	configPath string
	only       []string
	verbosity  int
	dryRun     bool
	color      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "relconf",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Short(),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ui.ParseFormat(opts.color); err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --color")
			}
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynthesis(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto", MsgFlagColor)
	rootCmd.Flags().StringSliceVarP(&opts.only, "only", "o", nil, MsgFlagOnly)
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)

	_ = rootCmd.RegisterFlagCompletionFunc("only", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := config.Load(config.ResolvePath(opts.configPath))
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := make([]string, 0, len(cfg.Tools))
		for _, tool := range cfg.Tools {
			names = append(names, tool.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newToolsCmd(opts))

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// ColorFormat returns the output format selected by the --color flag of cmd
func ColorFormat(cmd *cobra.Command) ui.Format {
	value, err := cmd.PersistentFlags().GetString("color")
	if err != nil {
		return ui.FormatAuto
	}
	f, err := ui.ParseFormat(value)
	if err != nil {
		return ui.FormatAuto
	}
	return f
}

// loadConfig reads the root configuration selected by --config
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if opts.configPath != stdinConfig {
		return config.Load(config.ResolvePath(opts.configPath))
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read config from standard input").
			WithDetail("path", stdinConfig)
	}
	return config.LoadBytes(data, "<stdin>")
}

func runSynthesis(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.GetLogger("cli")

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrWorkingDir, "cannot determine working directory")
	}

	pipeline := injection.New(injection.Options{
		FS:         filesystem.NewOS(),
		Runner:     shell.NewCommandRunner(),
		Stdout:     cmd.OutOrStdout(),
		WorkingDir: cwd,
		DryRun:     opts.dryRun,
	})

	logger.Info().
		Str("config", cfg.Path).
		Str("cwd", cwd).
		Strs("only", opts.only).
		Bool("dryRun", opts.dryRun).
		Msg("Starting synthesis")

	if err := pipeline.Run(cfg.Tools, opts.only); err != nil {
		return err
	}
	if opts.dryRun {
		logger.Warn().Msg(MsgDryRunNotice)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !write {
				_, _ = fmt.Fprint(out, config.Example())
				return nil
			}

			if opts.configPath == stdinConfig {
				return errors.New(errors.ErrInvalidInput, "genconfig --write needs a file, not standard input")
			}
			path := config.ResolvePath(opts.configPath)
			written, err := config.WriteExample(filesystem.NewOS(), path)
			if err != nil {
				return err
			}
			if written {
				_, _ = fmt.Fprintf(out, MsgConfigWritten, path)
			} else {
				_, _ = fmt.Fprintf(out, MsgConfigNotWritten, path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newToolsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: MsgToolsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Tools) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoTools)
				return nil
			}
			for _, tool := range cfg.Tools {
				_, _ = fmt.Fprintf(out, MsgToolItem,
					tool.Name, strings.ToUpper(tool.Format.String()), len(tool.Fragments), len(tool.Injections))
			}
			return nil
		},
	}
}
