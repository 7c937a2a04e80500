package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morispolanco/recamazon/internal/preflight"
)

func newLLMCommand(ctx *commandContext) *cobra.Command {
	llmCmd := &cobra.Command{
		Use:   "llm",
		Short: "Completion endpoint utilities",
	}
	llmCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify configuration, credentials, and endpoint reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, nil)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, statusLabel(r.Passed), r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Endpoint: %s\nModel: %s\n", cfg.LLM.BaseURL, cfg.LLM.Model)
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))
			if !preflight.AllPassed(results) {
				return errors.New("llm check failed")
			}
			return nil
		},
	})
	return llmCmd
}
