package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/pipeline"
)

// layoutCommand creates the layout command for placing a manifest of sizes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [sizes.json|sizes.yaml|sizes.toml]",
		Short: "Place the sizes of a manifest and write layout.json",
		Long: `Place the sizes of a manifest and write layout.json.

The manifest lists sizes in placement order and may name a strategy and a
center. Flags override the manifest. The output layout.json can be rendered
with 'visualize' or inspected with 'stats'.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles(manifestExts),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cloud.ReadManifest(args[0])
			if err != nil {
				return err
			}
			opts := c.Config.PipelineOptions()
			opts.Sizes = m.Sizes
			if m.Strategy != "" {
				opts.Strategy = m.Strategy
			}
			if m.Center != nil {
				opts.CenterX, opts.CenterY = m.Center.X, m.Center.Y
			}
			flags.apply(cmd.Flags(), &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.registerLayout(cmd.Flags())

	return cmd
}

// runLayout places the sizes and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d rectangles...", len(opts.Sizes)))
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayout(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := cloud.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	summary := summarize(l)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(summary.Rectangles, summary.Density, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
