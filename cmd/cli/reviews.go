package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/page-warden/internal/core"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var (
	pageFlag        string
	pagesFlag       string
	descriptionFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the reviews for a repository",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireTarget(); err != nil {
			return err
		}
		client := newAPIClient(serviceURL)
		col, err := client.list(cmd.Context())
		if err != nil {
			errorColor.Printf("✗ %v\n", err)
			return err
		}

		titleColor.Printf("Reviews for %s/%s (%s)\n", owner, repo, ref)
		for _, rec := range col {
			marker := successColor
			if rec.Status == core.StatusSubmitted {
				marker = errorColor
			}
			marker.Printf("  %-20s %s\n", rec.ReviewID, rec.Status)
			if rec.Description != "" {
				dimColor.Printf("      %s\n", rec.Description)
			}
			for _, p := range rec.Pages {
				fmt.Printf("      %s\n", p)
			}
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Create or update a review",
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := url.Values{}
		if descriptionFlag != "" {
			params.Set("description", descriptionFlag)
		}
		if pagesFlag != "" {
			params.Set("pages", pagesFlag)
		}
		return runMutation(cmd, "", params)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a review for approval",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMutation(cmd, "submit", nil)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a submitted review",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMutation(cmd, "approve", nil)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject",
	Short: "Reject a submitted review, reopening it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMutation(cmd, "reject", nil)
	},
}

var addPageCmd = &cobra.Command{
	Use:   "add-page",
	Short: "Add a page to a review",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMutation(cmd, "add-page", url.Values{"page": {pageFlag}})
	},
}

var removePageCmd = &cobra.Command{
	Use:   "remove-page",
	Short: "Remove a page from a review",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMutation(cmd, "remove-page", url.Values{"page": {pageFlag}})
	},
}

func runMutation(cmd *cobra.Command, verb string, params url.Values) error {
	if err := requireTarget(); err != nil {
		return err
	}
	client := newAPIClient(serviceURL)
	code, body, err := client.mutate(cmd.Context(), verb, params)
	if err != nil {
		errorColor.Printf("✗ %v\n", err)
		return err
	}
	if code != http.StatusOK {
		errorColor.Printf("✗ %d: %s\n", code, body)
		return fmt.Errorf("operation failed with status %d", code)
	}
	successColor.Printf("✓ %s\n", body)
	return nil
}

func init() { //nolint:gochecknoinits // Cobra command registration
	updateCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Review description")
	updateCmd.Flags().StringVar(&pagesFlag, "pages", "", "Comma-joined page list (replaces the current set)")
	addPageCmd.Flags().StringVarP(&pageFlag, "page", "p", "", "Page path to add")
	_ = addPageCmd.MarkFlagRequired("page")
	removePageCmd.Flags().StringVarP(&pageFlag, "page", "p", "", "Page path to remove")
	_ = removePageCmd.MarkFlagRequired("page")

	rootCmd.AddCommand(listCmd, updateCmd, submitCmd, approveCmd, rejectCmd, addPageCmd, removePageCmd)
}
