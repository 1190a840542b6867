package main

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a default vdomkit.yaml",
		Long: `Write a vdomkit.yaml with every setting at its default value.

Examples:
  vdomkit init
  vdomkit init deploy/ --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd.OutOrStdout(), dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInit(out io.Writer, dir string, force bool) error {
	path := filepath.Join(dir, config.ConfigFileName)
	if config.Exists(dir) && !force {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(path + " already exists").
			WithSuggestion("Use --force to overwrite it")
	}
	if err := config.New().SaveTo(path); err != nil {
		return err
	}
	success(out, "Wrote %s", path)
	info(out, "Run 'vdomkit serve' to start the server")
	return nil
}
