package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
	"github.com/vango-dev/vdomkit/pkg/modules/attrs"
	"github.com/vango-dev/vdomkit/pkg/modules/logging"
	"github.com/vango-dev/vdomkit/pkg/snapshot"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

type patchOptions struct {
	ops     bool
	pretty  bool
	ids     bool
	verbose bool
}

func patchCmd() *cobra.Command {
	var opts patchOptions

	cmd := &cobra.Command{
		Use:   "patch FILE...",
		Short: "Apply snapshots in order and print the result",
		Long: `Apply snapshot files to a fresh document, one patch per file, and print
the final HTML. A file named "-" is read from standard input.

Examples:
  vdomkit patch before.json after.json
  vdomkit patch --ops v1.json v2.json v3.json
  cat tree.json | vdomkit patch --pretty -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.OutOrStdout(), cmd.InOrStdin(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ops, "ops", false, "Print the host operations of each step")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the final HTML")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "Annotate elements with their node IDs")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every node created and removed")

	return cmd
}

func runPatch(out io.Writer, stdin io.Reader, files []string, opts patchOptions) error {
	if len(files) == 0 {
		return errors.New(errors.CodeNoInput).
			WithSuggestion("Pass one or more snapshot files, or - for standard input")
	}

	doc := hostdom.NewDocument()
	mount := doc.Mount("div")
	rec := host.NewRecorder(doc, doc.ID)

	modules := []vdom.Module{attrs.New(rec)}
	if opts.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		modules = append(modules, logging.New(logger))
	}
	p := vdom.New(modules, rec)

	var tree *vdom.VNode
	for i, file := range files {
		v, err := readSnapshot(stdin, file)
		if err != nil {
			return err
		}

		rec.Reset()
		if tree == nil {
			tree = p.PatchElement(mount, v)
		} else {
			tree = p.Patch(tree, v)
		}

		if opts.ops {
			ops := rec.Take()
			fmt.Fprintf(out, "%s %s (%d ops)\n", colorize("36", fmt.Sprintf("step %d:", i+1)), file, len(ops))
			for _, op := range ops {
				fmt.Fprintf(out, "  %s\n", op)
			}
		}
	}

	if opts.ops {
		fmt.Fprintln(out)
	}
	renderOpts := hostdom.RenderOptions{Pretty: opts.pretty, IDs: opts.ids}
	for _, n := range doc.Body().Children() {
		if err := hostdom.Render(out, n, renderOpts); err != nil {
			return err
		}
	}
	if !opts.pretty {
		fmt.Fprintln(out)
	}
	return nil
}

func readSnapshot(stdin io.Reader, file string) (*vdom.VNode, error) {
	if file == "-" {
		v, err := snapshot.Read(stdin)
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				e.WithPath("<stdin>")
			}
		}
		return v, err
	}
	return snapshot.DecodeFile(file)
}
