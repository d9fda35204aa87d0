package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services"
)

var (
	analyzeFile  string
	analyzeAllow []string
)

var analyzeCmd = &cobra.Command{
	Use:          "analyze [text]",
	SilenceUsage: true,
	Short:        "Score a message for scam signs",
	Long: `Analyze runs the deterministic screening pipeline over a message
given as arguments, via --file, or on stdin, and prints the score,
verdict, and every flag raised.`,
	Example: `  trustguard analyze "URGENT: verify your account now"
  trustguard analyze --file suspicious.txt
  echo "Click https://paypa1.com" | trustguard analyze --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readMessageText(args, analyzeFile)
		if err != nil {
			return err
		}

		analyzer := services.NewAnalyzer(appConfig.Analysis.Brands, log)
		result := analyzer.AnalyzeWith(text, analyzeAllow)

		if jsonOutput {
			return printJSON(result)
		}
		printResult(result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "read the message from a file")
	analyzeCmd.Flags().StringSliceVar(&analyzeAllow, "allow", nil, "extra trusted domains or brands")
	rootCmd.AddCommand(analyzeCmd)
}

func printResult(result models.AnalysisResult) {
	fmt.Printf("Score:   %d/100\n", result.Score)
	fmt.Printf("Verdict: %s (%s)\n", result.Verdict, result.Color)

	if len(result.Flags) == 0 {
		fmt.Println("Flags:   none")
	} else {
		fmt.Println("Flags:")
		for _, f := range result.Flags {
			fmt.Printf("  [%s] %s: %s\n", f.ID, f.Title, f.Explanation)
		}
	}

	if len(result.URLs) > 0 {
		fmt.Println("URLs:")
		for _, u := range result.URLs {
			fmt.Printf("  %s\n", u)
		}
	}
}
