package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/io"
	"github.com/matzehuels/microviz/pkg/pipeline"
	"github.com/matzehuels/microviz/pkg/sink"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated output formats
	width   float64 // overrides the document width when > 0
	height  float64 // overrides the document height when > 0
	scale   float64 // PNG scale factor
	title   string  // SVG <title> override
	class   string  // extra class on the SVG root
	noCache bool
	refresh bool
	strict  bool // fail when the model carries warnings
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{formats: string(sink.FormatSVG), scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an input document to SVG, JSON or PNG",
		Long: `Render computes the chart described by an input document (.json, .toml,
.yaml) and writes one file per requested format.

With a single format, -o names the output file ("-" for stdout). With several
formats, -o is a base path and each file gets the format as its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runRender(cmd.Context(), runner, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, json, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override the document width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override the document height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG title (defaults to the accessibility label)")
	cmd.Flags().StringVar(&opts.class, "class", "", "extra class on the SVG root")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when the chart has warnings")

	return cmd
}

// runRender loads the document at input, renders it and writes the artifacts.
func runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := sink.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	outputs, err := outputPaths(opts.output, input, formats)
	if err != nil {
		return err
	}

	doc, err := io.LoadDocument(input)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		doc.Size.Width = opts.width
	}
	if opts.height > 0 {
		doc.Size.Height = opts.height
	}
	in, err := doc.Input()
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s chart from %s", doc.Type, input)

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:   in,
		Formats: formats,
		Scale:   opts.scale,
		Title:   opts.title,
		Class:   opts.class,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", doc.Type))

	for _, f := range formats {
		if err := writeOutput(outputs[f], result.Artifacts[f]); err != nil {
			return err
		}
	}

	toStdout := len(formats) == 1 && outputs[formats[0]] == stdoutPath
	if !toStdout {
		printSuccess("Rendered %s", doc.Type)
		printStats(result.Stats.Marks, result.Stats.Warnings, result.CacheInfo.RenderHit)
		for _, f := range formats {
			printFile(outputs[f])
		}
	}
	if ws := result.Warnings(); len(ws) > 0 {
		if toStdout {
			for _, w := range ws {
				logger.Warn(w.Message, "code", w.Code)
			}
		} else {
			printDiagnostics(ws)
		}
		if opts.strict {
			return fmt.Errorf("%s with --strict", plural(len(ws), "warning"))
		}
	}
	return nil
}

// outputPaths maps each format to its destination.
func outputPaths(output, input string, formats []sink.Format) (map[sink.Format]string, error) {
	out := make(map[sink.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		if output != stdoutPath {
			if err := errors.ValidatePath(output); err != nil {
				return nil, err
			}
		}
		out[formats[0]] = output
		return out, nil
	}
	if output == stdoutPath {
		return nil, errors.New(errors.ErrCodeInvalidPath, "stdout output needs exactly one format")
	}

	base := basePath(output, input)
	if output != "" {
		if err := errors.ValidatePath(base); err != nil {
			return nil, err
		}
	}
	for _, f := range formats {
		out[f] = base + "." + string(f)
	}
	return out, nil
}

// basePath strips a known format extension from output, or derives the base
// from the input file name when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
