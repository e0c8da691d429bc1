package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serviceURL string
	reviewID   string
	ref        string
	repo       string
	owner      string
)

var rootCmd = &cobra.Command{
	Use:   "warden-cli",
	Short: "warden-cli is the command-line interface for page-warden.",
	Long: `A CLI for managing page reviews on a running page-warden service:
listing, creating, and driving reviews through submit, approve, and reject.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serviceURL, "service", "s", "http://localhost:8080", "Base URL of the page-warden service")
	rootCmd.PersistentFlags().StringVar(&reviewID, "review", "default", "Review identifier")
	rootCmd.PersistentFlags().StringVar(&ref, "ref", "main", "Content ref")
	rootCmd.PersistentFlags().StringVar(&repo, "repo", "", "Repository name")
	rootCmd.PersistentFlags().StringVar(&owner, "owner", "", "Repository owner")

	if err := viper.BindPFlag("SERVICE_URL", rootCmd.PersistentFlags().Lookup("service")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("PW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
