/*
Package cli wires the clzgen command: it installs the logger, loads the configuration found next to the
executable and runs the generator.
*/
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lovewebshell/clzgen/clzgen"
	"github.com/lovewebshell/clzgen/internal/config"
	"github.com/lovewebshell/clzgen/internal/log"
	"github.com/lovewebshell/clzgen/internal/logger"
)

// seams for tests
var (
	appFs     = afero.NewOsFs()
	configDir = config.ExecutableDir
)

type options struct {
	verbosity int
	quiet     bool
}

// Execute runs the clzgen root command.
func Execute() error {
	return New().Execute()
}

// New builds the clzgen root command.
func New() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "clzgen",
		Short: "Generate Tattletale .clz class listings",
		Long: `clzgen lists the Java classes of a module distribution (action=EAP) or of a single API archive
(action=EE) and writes them to a .clz report. Settings are read from ` + config.FileName + `
next to the executable, or from the built-in default.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	flags := cmd.Flags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity (-v = debug, -vv = trace)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all logging output")

	return cmd
}

func setupLogging(opts options) error {
	l, err := logger.NewLogrusLogger(logger.LogrusConfig{
		EnableConsole: !opts.quiet,
		Level:         logLevel(opts.verbosity),
	})
	if err != nil {
		return err
	}
	clzgen.SetLogger(l)
	return nil
}

func logLevel(verbosity int) logrus.Level {
	switch {
	case verbosity >= 2:
		return logrus.TraceLevel
	case verbosity == 1:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func run() error {
	dir, err := configDir()
	if err != nil {
		log.Warnf("unable to locate a custom configuration: %+v", err)
		dir = ""
	}

	app, err := config.LoadApplicationConfig(appFs, dir)
	if err != nil {
		return err
	}

	cfg, err := app.ToGeneratorConfig()
	if err != nil {
		return err
	}

	reportPath, err := clzgen.Generate(appFs, cfg)
	if err != nil {
		return err
	}

	log.Infof("processing finished, report written to %s", reportPath)
	return nil
}
