package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout' or
'generate -f json') and renders it to PNG, SVG, PDF or JSON. The layout
contains every rectangle, so this step is purely about drawing.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles([]string{"json"}),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			flags.apply(cmd.Flags(), &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")
	flags.registerRender(cmd.Flags())

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := cloud.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if l.Seed != 0 {
		opts.Seed = l.Seed
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d rectangles...", len(l.Rectangles)))
	spinner.Start()

	artifacts, cacheHit, err := runner.Render(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %s", input)
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	summary := summarize(l)
	printStats(summary.Rectangles, summary.Density, cacheHit)
	return nil
}
