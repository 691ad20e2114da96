// Package main provides the opportunity_matcher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonathan/opportunity-matcher/internal/config"
)

const app = "opportunity_matcher"

var (
	// Used for flags.
	cfgFile string

	v = viper.New()

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Opportunity Matcher ranks opportunities for learner profiles",
		Long:          "Opportunity Matcher scores internships, scholarships, programs and competitions against a learner profile and explains every match.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolP(config.KeyDebug, "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP(config.KeyJSON, "j", false, "JSON logs and JSON command output")
	rootCmd.PersistentFlags().String(config.KeySQLite, "", "SQLite database file to use instead of DATABASE_URL")

	if err := v.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup(config.KeyDebug)); err != nil {
		panic(fmt.Sprintf("failed to bind debug flag: %v", err))
	}
	if err := v.BindPFlag(config.KeyJSON, rootCmd.PersistentFlags().Lookup(config.KeyJSON)); err != nil {
		panic(fmt.Sprintf("failed to bind json flag: %v", err))
	}
	if err := v.BindPFlag(config.KeySQLite, rootCmd.PersistentFlags().Lookup(config.KeySQLite)); err != nil {
		panic(fmt.Sprintf("failed to bind sqlite flag: %v", err))
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
