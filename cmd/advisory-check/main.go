package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"trustguard/internal/config"
	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services/ai"
	"trustguard/pkg/logger"
)

func main() {
	log := logger.NewDevelopment()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("===========================================")
	fmt.Println("Advisory Service Connectivity Check")
	fmt.Println("===========================================")
	fmt.Printf("Model: %s\n", cfg.Advisory.Model)
	fmt.Printf("API Key: %s\n", maskKey(cfg.Advisory.APIKey))
	fmt.Println()

	advisor := ai.NewClient(ai.Config{
		APIKey:      cfg.Advisory.APIKey,
		BaseURL:     cfg.Advisory.BaseURL,
		Model:       cfg.Advisory.Model,
		Temperature: cfg.Advisory.Temperature,
		Timeout:     cfg.Advisory.Timeout,
	}, log)

	// Test 1: credentials
	fmt.Println("🔑 Test 1: Checking credentials...")
	fmt.Println("-------------------------------------------")
	if !advisor.Enabled() {
		fmt.Println("❌ No API key configured. Set OPENAI_API_KEY or advisory.api_key.")
		os.Exit(1)
	}
	fmt.Println("✅ API key present")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	// Test 2: benign message
	fmt.Println("💬 Test 2: Assessing a benign message...")
	fmt.Println("-------------------------------------------")
	outcome := advisor.Assess(ctx,
		"Lunch at noon tomorrow? Grandma is coming too.",
		"mary@example.com", nil)
	printOutcome(outcome)
	fmt.Println()

	// Test 3: scam-looking message
	fmt.Println("🚨 Test 3: Assessing a scam-looking message...")
	fmt.Println("-------------------------------------------")
	outcome = advisor.Assess(ctx,
		"URGENT: Your account will be suspended in 24 hours. Verify your password at http://secure-login.top now or face legal action.",
		"alerts@secure-login.top", nil)
	printOutcome(outcome)
	fmt.Println()

	fmt.Println("===========================================")
	fmt.Println("Check completed!")
	fmt.Println("===========================================")
}

func printOutcome(outcome models.AdvisoryOutcome) {
	switch {
	case outcome.Failed():
		fmt.Printf("❌ Not attempted: %v\n", outcome.Err)
		return
	case outcome.Degraded():
		fmt.Printf("⚠️  Degraded (%s): %v\n", outcome.Status, outcome.Err)
	default:
		fmt.Println("✅ Assessment successful!")
	}

	j := outcome.Judgment
	fmt.Printf("   - Score: %d/100\n", j.Score)
	fmt.Printf("   - Verdict: %s\n", j.Verdict)
	fmt.Printf("   - Confidence: %.2f\n", j.Confidence)
	for _, r := range j.Reasons {
		fmt.Printf("   - Reason: %s\n", r)
	}
	for _, a := range j.Advice {
		fmt.Printf("   - Advice: %s\n", a)
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 12 {
		return "(set)"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
