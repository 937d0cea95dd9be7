// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/signal-scout/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past search runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		store, err := history.NewStore(loadConfig().History)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(context.Background(), limit)
		if err != nil {
			return err
		}

		if output == "yaml" {
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-20s  %-40s  %-30s  %-7s  %s\n", "When", "Query", "Platforms", "Results", "Top")
		fmt.Println(strings.Repeat("-", 110))
		for _, e := range entries {
			names := make([]string, len(e.Platforms))
			for i, p := range e.Platforms {
				names[i] = string(p)
			}
			query := e.Query
			if len(query) > 40 {
				query = query[:37] + "..."
			}
			fmt.Printf("%-20s  %-40s  %-30s  %-7d  %.1f\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				query, strings.Join(names, ","), e.ResultCount, e.TopScore)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(loadConfig().History)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to show (0 = all kept)")
	historyCmd.Flags().String("output", "table", "output format: table or yaml")
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
