package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/clarkzinzow/tinysh/core"
	"github.com/clarkzinzow/tinysh/core/config"
)

var (
	cfgPath  string
	pathFile string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tinysh",
	Short: "A tiny UNIX shell.",
	Long: `tinysh is a tiny interactive UNIX shell supporting output redirection
(">", ">>"), pipes ("|") and a configurable executable search path.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(afero.NewOsFs())
		if err != nil {
			return err
		}

		searchPath := loadSearchPath(afero.NewOsFs(), cfg)

		shell, err := core.NewShell(cfg, searchPath)
		if err != nil {
			return err
		}

		// Interactive interrupt and quit signals belong to the foreground
		// stage; the shell itself survives them and reprompts.
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
		defer signal.Stop(sigs)
		go func() {
			for range sigs {
			}
		}()

		return shell.Run()
	},
}

// loadConfig reads the configuration file and folds in command line
// overrides.
func loadConfig(appFS afero.Fs) (*config.Configuration, error) {
	cfg, err := config.Load(appFS, cfgPath)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Verbose = true
	}
	if pathFile != "" {
		cfg.PathFile = pathFile
	}

	return cfg, nil
}

// loadSearchPath resolves the configured path file. Absence or read
// failure silently falls back to the inherited environment search path.
func loadSearchPath(appFS afero.Fs, cfg *config.Configuration) []string {
	if cfg.PathFile == "" {
		return nil
	}

	dirs, err := config.LoadPathList(appFS, cfg.PathFile)
	if err != nil {
		return nil
	}
	return dirs
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.ConfigurationName, "configuration file")
	rootCmd.PersistentFlags().StringVarP(&pathFile, "path", "p", "", "file with one executable search directory per line")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "narrate process and descriptor handling")
}
