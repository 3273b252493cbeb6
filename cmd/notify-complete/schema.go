package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/notify-complete/internal/schema"
)

const schemaFileMode = 0o644

var schemaWriteDir string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Long: `Print the JSON Schema of the configuration file.

Editors with TOML language server support pick it up through the #:schema
directive that init writes at the top of the file.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaWriteDir, "write", "", "Write the schema into this directory instead of printing it")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	data, err := schema.GenerateJSON(true)
	if err != nil {
		return errors.Wrap(err, "generating schema")
	}

	out := cmd.OutOrStdout()

	if schemaWriteDir == "" {
		_, err := out.Write(data)

		return err
	}

	path := filepath.Join(schemaWriteDir, schema.Filename())

	//nolint:gosec // path comes from the --write flag
	if err := os.WriteFile(path, data, schemaFileMode); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Fprintln(out, path)

	return nil
}
