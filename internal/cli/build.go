package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/touring/pkg/io"
	"github.com/matzehuels/touring/pkg/pipeline"
	"github.com/matzehuels/touring/pkg/tour"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output       string  // output file (single format) or base path; "-" writes to stdout
	inputFormat  string  // format of stdin input
	mode         string  // insert mode: add, closest, smallest, all
	formats      string  // comma-separated output formats
	width        float64 // SVG frame width; 0 fits the points
	height       float64 // SVG frame height
	dedupeRadius float64 // skip points this close to an earlier one
	noCache      bool
	refresh      bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <points-file>",
		Short: "Build tours from a point file and write the outputs",
		Long: `Build reads points from a JSON, YAML, GeoJSON or text file, feeds them in
order into the tours selected by --mode, prints the total distances and
writes the requested formats.

Use "-" as the file to read from stdin (see --input-format).`,
		Example: `  touring build cities.txt
  touring build cities.geojson --mode smallest -f svg,geojson -o out/cities
  cat points.txt | touring build - -f json -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), args[0], popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", string(io.FormatText), "format of stdin input: json, yaml, geojson, txt")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "insert mode: add, closest, smallest, all")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (0 fits the points)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (0 fits the points)")
	cmd.Flags().Float64Var(&opts.dedupeRadius, "dedupe-radius", 0, "skip points within this distance of an earlier point")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"add", "closest", "smallest", "all"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// pipelineOptions merges the config file with the flags. Flags win only when
// set explicitly.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts *buildOpts) (pipeline.Options, error) {
	cfg := c.config
	popts := pipeline.Options{
		Mode:         cfg.Mode,
		Width:        cfg.Width,
		Height:       cfg.Height,
		DedupeRadius: cfg.DedupeRadius,
		Formats:      parseFormats(opts.formats),
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("mode") || popts.Mode == "" {
		popts.Mode = opts.mode
	}
	if flags.Changed("width") {
		popts.Width = opts.width
	}
	if flags.Changed("height") {
		popts.Height = opts.height
	}
	if flags.Changed("dedupe-radius") {
		popts.DedupeRadius = opts.dedupeRadius
	}

	overrides, err := cfg.StyleOverrides()
	if err != nil {
		return popts, err
	}
	popts.Styles = overrides

	if opts.output == "-" && len(popts.Formats) != 1 {
		return popts, fmt.Errorf("--output - needs exactly one format, got %d", len(popts.Formats))
	}
	return popts, popts.ValidateAndSetDefaults()
}

// runBuild loads the points, runs the pipeline and writes the artifacts.
func (c *CLI) runBuild(ctx context.Context, input string, popts pipeline.Options, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	points, err := readPoints(input, opts.inputFormat)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d points from %s", len(points), displayName(input))

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	var spinner *Spinner
	if needsSpinner(popts.Formats) && opts.output != "-" {
		spinner = newSpinner(ctx, "Rendering...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, points, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built tours in %s mode", popts.Mode))

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	for _, line := range statusLines(result.Board.Status(), summaryStyles(result.Board)) {
		fmt.Println(line)
	}
	printStats(result.Stats.Points, result.Stats.Skipped, result.CacheInfo.RenderHit(len(popts.Formats)))
	if result.Stats.Skipped > 0 {
		printWarning("Skipped %d near-duplicate points (radius %g)", result.Stats.Skipped, popts.DedupeRadius)
	}
	printSuccess("Wrote %d file(s)", len(popts.Formats))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	printNextStep("Place points by hand", "touring play --mode "+popts.Mode)
	return nil
}

// readPoints reads a point file, or stdin when input is "-".
func readPoints(input, stdinFormat string) ([]tour.Point, error) {
	if input != "-" {
		return io.ReadFile(input)
	}
	format, err := io.ParseFormat(stdinFormat)
	if err != nil {
		return nil, err
	}
	return io.ReadPoints(os.Stdin, format)
}

// needsSpinner reports whether any format is slow enough to show progress.
func needsSpinner(formats []string) bool {
	for _, f := range formats {
		switch f {
		case pipeline.FormatGraphviz, pipeline.FormatPNG, pipeline.FormatPDF:
			return true
		}
	}
	return false
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input ("points" for stdin).
// If output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "points"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps every format to its output file. A single format with an
// explicit output file keeps that name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
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

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}
