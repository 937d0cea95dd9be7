// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the signal-scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/signal-scout/internal/secrets"
	"github.com/pdiddy/signal-scout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

var logger = logrus.New()

// rootCmd is the base command for the signal-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "signal-scout",
	Short: "Cross-platform research signal aggregator",
	Long: `signal-scout queries the public search surfaces of reddit, Hacker News,
and dev.to for a research topic, normalizes the results into one schema,
scores and ranks them across platforms, and suggests follow-up research
angles and prompts.

Run a one-off search with the search subcommand, or expose the pipeline
over HTTP with serve. Past runs are kept in a small local history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./signal-scout.yaml or ~/.config/signal-scout/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("signal-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "signal-scout"))
		}
	}

	viper.SetEnvPrefix("SIGNAL_SCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
}

// loadConfig resolves the effective configuration: defaults, then the
// viper-loaded file and environment, then secrets for any credential
// still unset.
func loadConfig() types.PipelineConfig {
	cfg := types.DefaultConfig()

	if viper.IsSet("search") || viper.IsSet("server") || viper.IsSet("history") {
		if err := viper.Unmarshal(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not parse config: %v\n", err)
		}
	}

	if cfg.Search.Reddit.AccessToken == "" {
		cfg.Search.Reddit.AccessToken = loadedSecrets[secrets.RedditAccessToken]
	}
	if cfg.Search.Devto.APIKey == "" {
		cfg.Search.Devto.APIKey = loadedSecrets[secrets.DevtoAPIKey]
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
