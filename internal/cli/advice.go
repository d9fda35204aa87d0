package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services/ai"
)

var (
	adviceSender string
	adviceAllow  []string
)

var adviceCmd = &cobra.Command{
	Use:          "advice [text]",
	SilenceUsage: true,
	Short:        "Ask the AI advisor for a second opinion",
	Long: `Advice sends the message to the configured language model and
prints its judgment. Requires an API key (OPENAI_API_KEY or
advisory.api_key). When the service fails, a conservative fallback
judgment is shown instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readMessageText(args, "")
		if err != nil {
			return err
		}

		client := ai.NewClient(ai.Config{
			APIKey:      appConfig.Advisory.APIKey,
			BaseURL:     appConfig.Advisory.BaseURL,
			Model:       appConfig.Advisory.Model,
			Temperature: appConfig.Advisory.Temperature,
			Timeout:     appConfig.Advisory.Timeout,
		}, log)

		outcome := client.Assess(cmd.Context(), text, adviceSender, adviceAllow)
		if outcome.Failed() {
			return outcome.Err
		}

		if outcome.Degraded() {
			fmt.Fprintln(os.Stderr, "Warning: advisory service degraded, showing fallback judgment")
		}

		if jsonOutput {
			return printJSON(outcome)
		}
		printJudgment(outcome.Judgment)
		return nil
	},
}

func init() {
	adviceCmd.Flags().StringVar(&adviceSender, "sender", "", "sender domain or name")
	adviceCmd.Flags().StringSliceVar(&adviceAllow, "allow", nil, "user allowlist domains or brands")
	rootCmd.AddCommand(adviceCmd)
}

func printJudgment(j *models.Judgment) {
	fmt.Printf("Score:      %d/100\n", j.Score)
	fmt.Printf("Verdict:    %s\n", j.Verdict)
	fmt.Printf("Confidence: %.2f\n", j.Confidence)

	if len(j.Reasons) > 0 {
		fmt.Println("Reasons:")
		for _, r := range j.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	}
	if len(j.Advice) > 0 {
		fmt.Println("Advice:")
		for _, a := range j.Advice {
			fmt.Printf("  - %s\n", a)
		}
	}
}
