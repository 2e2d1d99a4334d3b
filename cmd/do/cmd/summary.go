package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/renanvzd/nlw-pocket/internal/service"
	"github.com/renanvzd/nlw-pocket/internal/week"
)

func SummaryCmd() *cobra.Command {
	var at string

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the week summary as JSON",
		Long: `Print the completed/total counts and per-day completions for a week.

Example:
  do summary
  do summary --at 2024-08-08`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.ParseInLocation(week.DateLayout, at, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --at date %q: %w", at, err)
				}
				now = parsed
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			summaryService := service.NewSummaryService(a.SummaryStore, a.Cfg.WeekStart, func() time.Time { return now })
			summary, err := summaryService.WeekSummary(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	summaryCmd.Flags().StringVar(&at, "at", "", "any date (YYYY-MM-DD) inside the week to report")

	return summaryCmd
}
