package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trustguard/internal/config"
	"trustguard/pkg/logger"
)

var (
	cfgFile    string
	jsonOutput bool
	appConfig  *config.Config
	log        *logger.Logger

	rootCmd = &cobra.Command{
		Use:          "trustguard",
		SilenceUsage: true,
		Short:        "TrustGuard screens messages for scam and phishing signs",
		Long: `TrustGuard scores suspicious messages with deterministic checks
(keywords, style, link domains, brand lookalikes), optionally asks an
AI advisor for a second opinion, and keeps a list of trusted contacts
with safe words for verifying callers.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., ./config, /etc/trustguard)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// Execute runs the root command
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	var err error
	appConfig, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Results go to stdout; keep logging out of the way
	log = logger.New(logger.Config{Level: "warn", Format: "console"})
}

// readMessageText resolves the message from a file flag, positional
// arguments, or stdin, in that order.
func readMessageText(args []string, file string) (string, error) {
	var text string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		text = string(data)
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no message text given")
	}
	return text, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
