package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/floating-geometry/internal/config"
)

var (
	configPath  string
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	Long: `Write the default configuration as YAML. The file goes to --path,
else the --config flag, else the user config directory.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configPath, "path", "", "Where to write the config")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
