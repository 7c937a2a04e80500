package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morispolanco/recamazon/internal/config"
	"github.com/morispolanco/recamazon/internal/logging"
	"github.com/morispolanco/recamazon/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string
	var catalogFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			runner, err := buildRunner(ctx, cmd, cfg, catalogFlag, false)
			if err != nil {
				return err
			}

			bind := strings.TrimSpace(bindFlag)
			if bind == "" {
				bind = cfg.Server.Bind
			}
			opts := web.Options{Bind: bind, APIToken: cfg.Server.APIToken, Logger: logger}
			if !cfg.HasAPIKey() {
				opts.Warning = config.MissingAPIKeyMessage
				logging.WarnWithContext(logger, "no api key configured", "config_warning",
					logging.String(logging.FieldImpact, "analysis requests are refused"),
					logging.String(logging.FieldErrorHint, "set llm.api_key or OPENROUTER_API_KEY"),
				)
			}

			srv, err := web.New(runner, opts)
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if err := srv.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (Ctrl+C to stop)\n", srv.Addr())
			<-runCtx.Done()
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (default server.bind)")
	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog to search: books or products (default pipeline.catalog)")
	return cmd
}
