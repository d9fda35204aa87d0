package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustguard/internal/domain/services"
)

var (
	reportReporter string
	reportChannel  string
	reportSummary  string
	reportOut      string
)

var reportCmd = &cobra.Command{
	Use:          "report",
	SilenceUsage: true,
	Short:        "Render a suspected-scam incident report",
	Long: `Report fills the incident template with the reporter's name, a
contact channel for follow-up, and a summary of what happened. The
result can be pasted into an email to a bank, carrier, or authority.`,
	Example: `  trustguard report --reporter "Mary Jones" --channel "mary@example.com" \
    --summary "A text claiming to be my bank asked for my password."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := services.GenerateReport(reportReporter, reportChannel, reportSummary)

		if reportOut != "" {
			if err := os.WriteFile(reportOut, []byte(report+"\n"), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", reportOut)
			return nil
		}

		if jsonOutput {
			return printJSON(map[string]string{"report": report})
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportReporter, "reporter", "", "reporter name")
	reportCmd.Flags().StringVar(&reportChannel, "channel", "", "contact channel for follow-up")
	reportCmd.Flags().StringVar(&reportSummary, "summary", "", "incident summary")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the report to a file")
	reportCmd.MarkFlagRequired("reporter")
	reportCmd.MarkFlagRequired("summary")
	rootCmd.AddCommand(reportCmd)
}
