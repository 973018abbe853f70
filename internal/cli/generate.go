package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kokodio/tdd/pkg/pipeline"
)

// defaultOutputBase names generated files when neither --output nor an
// input file is given.
const defaultOutputBase = "render"

// pipelineFlags holds the layout and render flags shared by several
// commands. Only flags the user actually set override the configuration.
type pipelineFlags struct {
	count      int
	minSize    int
	maxSize    int
	seed       uint64
	strategy   string
	centerX    int
	centerY    int
	renderer   string
	formats    string
	labels     bool
	refresh    bool
	noCache    bool
	snapshotTo string
}

func (f *pipelineFlags) registerSizes(fs *pflag.FlagSet) {
	fs.IntVarP(&f.count, "count", "n", pipeline.DefaultCount, "number of random rectangles")
	fs.IntVar(&f.minSize, "min", pipeline.DefaultMinSize, "smallest random width/height")
	fs.IntVar(&f.maxSize, "max", pipeline.DefaultMaxSize, "largest random width/height (exclusive)")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed")
}

func (f *pipelineFlags) registerLayout(fs *pflag.FlagSet) {
	fs.StringVarP(&f.strategy, "strategy", "s", "", "placement strategy: frontier (default), spiral")
	fs.IntVar(&f.centerX, "center-x", 0, "cluster center x")
	fs.IntVar(&f.centerY, "center-y", 0, "cluster center y")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.StringVar(&f.snapshotTo, "snapshot-dir", "", "write a PNG of the partial layout here when placement fails")
}

func (f *pipelineFlags) registerRender(fs *pflag.FlagSet) {
	fs.StringVarP(&f.renderer, "renderer", "r", "", "png renderer: auto (default), content, fixed")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	fs.BoolVar(&f.labels, "labels", false, "draw rectangle indices")
}

// apply overlays every changed flag onto opts.
func (f *pipelineFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	changed := fs.Changed
	if changed("count") {
		opts.Count = f.count
	}
	if changed("min") {
		opts.MinSize = f.minSize
	}
	if changed("max") {
		opts.MaxSize = f.maxSize
	}
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("strategy") {
		opts.Strategy = f.strategy
	}
	if changed("center-x") {
		opts.CenterX = f.centerX
	}
	if changed("center-y") {
		opts.CenterY = f.centerY
	}
	if changed("renderer") {
		opts.Renderer = f.renderer
	}
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("labels") {
		opts.Labels = f.labels
	}
	opts.Refresh = f.refresh
	opts.SnapshotDir = f.snapshotTo
}

// generateCommand creates the one-step generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Place random rectangles and render the cloud",
		Long: `Place random rectangles and render the cloud.

Sizes are drawn uniformly from [min, max) using the given seed, so the same
flags always produce the same picture. Use 'layout' to place sizes from a
manifest instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			flags.apply(cmd.Flags(), &opts)
			return c.runGenerate(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (default: render)")
	flags.registerSizes(cmd.Flags())
	flags.registerLayout(cmd.Flags())
	flags.registerRender(cmd.Flags())

	return cmd
}

// runGenerate executes the full pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d rectangles...", opts.Count))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d rectangles", result.Stats.Rectangles))

	printSuccess("Cloud generated")
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    output,
		fallback:  defaultOutputBase,
	}); err != nil {
		return err
	}
	printStats(result.Stats.Rectangles, result.Metrics.Density, result.CacheInfo.LayoutHit)
	return nil
}
