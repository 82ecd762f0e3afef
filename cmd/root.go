package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/jobsh/core/config"
	"github.com/josephlewis42/jobsh/core/launch"
	"github.com/josephlewis42/jobsh/core/logger"
	"github.com/josephlewis42/jobsh/core/shell"
	"github.com/josephlewis42/jobsh/core/vos"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadSessionConfig falls back to the built-in configuration when no
// directory was given and the working directory has none.
func loadSessionConfig(cmd *cobra.Command) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		configuration, err := config.Load(cfgPath)
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return configuration, err
	}

	return loadConfig()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jobsh",
	Short: "A small shell that tracks the jobs it starts.",
	Long: `jobsh reads commands, runs them from a single binary directory in the
foreground or, with a trailing &, in the background and keeps a record of
every job for the jobs and history built-ins.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		status, err := runSession(cmd)
		if err != nil {
			return err
		}
		if status != 0 {
			os.Exit(status)
		}
		return nil
	},
}

func runSession(cmd *cobra.Command) (int, error) {
	configuration, err := loadSessionConfig(cmd)
	if err != nil {
		return 1, err
	}

	spawner, err := launch.NewReexecSpawner(shell.ChildOptions(configuration))
	if err != nil {
		return 1, err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	var lines shell.LineSource
	if interactive {
		lines, err = shell.NewReadlineSource(os.Stdin, os.Stdout, os.Stderr, true)
		if err != nil {
			return 1, err
		}
	} else {
		lines = shell.NewScannerSource(os.Stdin, os.Stdout, configuration.MaxCommandLen)
	}
	defer lines.Close()

	eventLogger := logger.NewNopLogger()
	eventLog, err := configuration.OpenEventLog()
	if err != nil {
		return 1, err
	}
	if eventLog != nil {
		defer eventLog.Close()
		eventLogger = logger.NewJsonLinesLogRecorder(eventLog)
	}

	sh := shell.New(vos.NewHostOS(), configuration, spawner, lines, eventLogger.NewSession())
	sh.Interactive = interactive
	return sh.Run(), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	log.SetPrefix("[jobsh] ")
	log.SetFlags(0)
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
