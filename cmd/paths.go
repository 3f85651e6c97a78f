package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// pathsCmd shows where the shell would look for executables, one
// directory per line.
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the executable search path the shell would use.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(afero.NewOsFs())
		if err != nil {
			return err
		}

		dirs := loadSearchPath(afero.NewOsFs(), cfg)
		if len(dirs) == 0 {
			dirs = filepath.SplitList(os.Getenv("PATH"))
		}

		for _, dir := range dirs {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
