package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/morispolanco/recamazon/internal/config"
	"github.com/morispolanco/recamazon/internal/pipeline"
	"github.com/morispolanco/recamazon/internal/provider"
	"github.com/morispolanco/recamazon/internal/report"
	"github.com/morispolanco/recamazon/internal/services"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var catalogFlag string
	var parallel bool

	cmd := &cobra.Command{
		Use:   "analyze <query...>",
		Short: "Find related items, their details and reviews, and recommendations",
		Example: `  recamazon analyze Dune
  recamazon analyze --format markdown "science fiction classics"
  recamazon analyze --catalog products --format json "electric kettle"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return services.Wrap(services.ErrValidation, "analyze", "query", "a query is required, e.g. recamazon analyze Dune", nil)
			}
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}
			runner, err := buildRunner(ctx, cmd, cfg, catalogFlag, parallel)
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context(), query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return report.Render(out, result, report.Options{
				Format: format,
				Color:  format == report.FormatText && shouldColorize(out),
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(report.FormatText), "Output format: text, markdown, or json")
	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog to search: books or products (default pipeline.catalog)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Fetch details and reviews concurrently")
	return cmd
}

// buildRunner wires the configured provider into a pipeline runner. Flag
// values override the [pipeline] section when set.
func buildRunner(ctx *commandContext, cmd *cobra.Command, cfg *config.Config, catalog string, parallel bool) (*pipeline.Runner, error) {
	logger, err := ctx.logger(cmd)
	if err != nil {
		return nil, err
	}
	client, err := provider.New(cfg.GetLLM(), provider.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(catalog) == "" {
		catalog = cfg.Pipeline.Catalog
	}
	return pipeline.NewRunner(client, pipeline.Options{
		Catalog:        catalog,
		ParallelFetch:  parallel || cfg.Pipeline.ParallelFetch,
		LenientRecords: cfg.Pipeline.LenientRecords,
		Logger:         logger,
	})
}
