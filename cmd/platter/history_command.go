package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"platter/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past rip runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No rip runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.DiscName,
					run.MediaKind,
					run.Device,
					historyStatus(run),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Disc", "Kind", "Device", "Status"},
				rows,
			))
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum runs to show (0 for all)")
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded rip runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded runs\n", removed)
			return nil
		},
	}
}

func historyStatus(run *history.Run) string {
	switch run.Status {
	case history.StatusCompleted:
		return fmt.Sprintf("completed in %s", run.Duration().Round(time.Second))
	case history.StatusFailed:
		msg := run.ErrorMessage
		if len(msg) > 60 {
			msg = msg[:57] + "..."
		}
		return "failed: " + msg
	default:
		return string(run.Status)
	}
}
