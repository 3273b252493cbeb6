package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	"github.com/smykla-skalski/notify-complete/internal/xdg"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a sample configuration file with a "default" and an "alert" profile.

The file goes to --config when given, otherwise to the default location.
An existing file is left alone unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	defer closeLogger(log)

	path := configPath
	if path == "" {
		path = xdg.ConfigFile()
	}

	path = xdg.ExpandPathSilent(path)

	if err := internalconfig.NewWriterWithForce(initForce).WriteFile(path, internalconfig.SampleFile()); err != nil {
		log.Error("failed to write config", "path", path, "error", err)

		return err
	}

	log.Info("config written", "path", path, "force", initForce)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	return nil
}
