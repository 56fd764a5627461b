package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abburizal/royal-wedding-byullysjah/app/audit"
)

var (
	rootDir    string
	jsonOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "audit",
		Short: "Static-asset audits for the Royal Wedding website",
	}
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "public", "directory to audit")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "mobile",
		Short: "Audit mobile responsiveness of the static assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(audit.RunMobile)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "performance",
		Short: "Audit asset sizes and minification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(audit.RunPerformance)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(auditFn func(string) (*audit.Report, error)) error {
	report, err := auditFn(rootDir)
	if err != nil {
		return fmt.Errorf("audit %s: %w", rootDir, err)
	}
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	report.Write(os.Stdout)
	return nil
}
