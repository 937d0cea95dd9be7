// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-scout/internal/history"
	"github.com/pdiddy/signal-scout/internal/pipeline"
	"github.com/pdiddy/signal-scout/internal/platform"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search platforms for a research topic",
	Long: `Search queries the selected platforms (reddit, hackernews, devto) for a
topic, ranks the merged results by signal score, and prints recommended
research angles and follow-up prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		platformsFlag, _ := cmd.Flags().GetString("platforms")
		output, _ := cmd.Flags().GetString("output")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		if query == "" && len(args) > 0 {
			query = strings.Join(args, " ")
		}

		var names []string
		for _, name := range strings.Split(platformsFlag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		cfg := loadConfig()
		reg := platform.NewRegistry(cfg.Search)

		payload := map[string]any{"query": query, "platforms": names}
		resp, err := pipeline.Handle(context.Background(), payload, reg, cfg.Search, logger)
		if err != nil {
			return err
		}

		if !noHistory {
			if store, histErr := history.NewStore(cfg.History); histErr == nil {
				if recErr := store.Record(context.Background(), resp); recErr != nil {
					fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", recErr)
				}
				store.Close()
			}
		}

		switch output {
		case "json":
			return pipeline.FormatJSON(resp, os.Stdout)
		case "yaml":
			return pipeline.FormatYAML(resp, os.Stdout)
		default:
			pipeline.FormatTable(resp, os.Stdout)
			return nil
		}
	},
}

func init() {
	searchCmd.Flags().String("query", "", "research topic to search for")
	searchCmd.Flags().String("platforms", "reddit,hackernews,devto", "comma-separated platforms to query")
	searchCmd.Flags().String("output", "table", "output format: table, json, or yaml")
	searchCmd.Flags().Bool("no-history", false, "skip recording this run in the local history")

	rootCmd.AddCommand(searchCmd)
}
