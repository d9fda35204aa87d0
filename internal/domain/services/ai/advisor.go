package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

// ErrMissingAPIKey is returned when advisory checks are requested but
// no API key is configured.
var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY; set it before enabling AI checks")

const systemPrompt = "You are a fraud detection assistant for seniors. " +
	"Assess messages for social-engineering risk: urgency, threats, credential or payment requests, suspicious URLs, impersonation. " +
	"Calibrate to reduce false positives for legitimate notices from major providers (e.g., Google, Microsoft, banks). " +
	"Consider sender domain and any allowlisted brands provided by the user. " +
	"Return ONLY compact JSON with: score (0-100), verdict (High Risk/Caution/Likely Safe), reasons (array of strings), advice (array of strings), confidence (0-1). " +
	"Score reflects risk, NOT annoyance. Legitimate notifications asking NOT to share codes should be lower risk."

// Config holds the advisory model settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client calls a chat-completion endpoint to get a second opinion on a
// message. It never panics on upstream failures: transport and parse
// problems degrade to a conservative judgment instead.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *logger.Logger
}

// NewClient creates an advisory client, filling in defaults for any
// unset config fields.
func NewClient(config Config, log *logger.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1/chat/completions"
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Temperature == 0 {
		config.Temperature = 0.2
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     log.WithComponent("advisor"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.config.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// judgmentPayload mirrors the JSON the model is asked to return.
// Pointer fields distinguish "absent" from zero so defaults apply.
type judgmentPayload struct {
	Score      *int     `json:"score"`
	Verdict    string   `json:"verdict"`
	Reasons    []string `json:"reasons"`
	Advice     []string `json:"advice"`
	Confidence *float64 `json:"confidence"`
}

// Assess asks the model to judge a message. The outcome status tells
// the caller what happened: ok carries the model's judgment,
// service_error and parse_error carry a conservative fallback, and
// config_error means no key is set and nothing was attempted.
func (c *Client) Assess(ctx context.Context, text, sender string, allowlist []string) models.AdvisoryOutcome {
	if c.config.APIKey == "" {
		return models.AdvisoryOutcome{Status: models.AdvisoryConfigError, Err: ErrMissingAPIKey}
	}

	content, err := c.complete(ctx, text, sender, allowlist)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Advisory call failed, returning fallback judgment")
		return models.AdvisoryOutcome{
			Status:   models.AdvisoryServiceError,
			Judgment: serviceErrorJudgment(err),
			Err:      err,
		}
	}

	judgment, err := parseJudgment(content)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Advisory response was not JSON, returning fallback judgment")
		return models.AdvisoryOutcome{
			Status:   models.AdvisoryParseError,
			Judgment: parseErrorJudgment(),
			Err:      err,
		}
	}

	c.logger.Debug().
		Int("score", judgment.Score).
		Str("verdict", string(judgment.Verdict)).
		Float64("confidence", judgment.Confidence).
		Msg("Advisory judgment received")

	return models.AdvisoryOutcome{Status: models.AdvisoryOK, Judgment: judgment}
}

// complete performs the chat-completion request and returns the raw
// content of the first choice.
func (c *Client) complete(ctx context.Context, text, sender string, allowlist []string) (string, error) {
	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(text, sender, allowlist)},
		},
		Temperature: c.config.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func buildUserPrompt(text, sender string, allowlist []string) string {
	if sender == "" {
		sender = "unknown"
	}

	var b strings.Builder
	b.WriteString("Message:\n")
	b.WriteString(text)
	b.WriteString("\n\nSender domain or name: ")
	b.WriteString(sender)
	b.WriteString("\n")
	if len(allowlist) > 0 {
		b.WriteString("User allowlist domains/brands: ")
		b.WriteString(strings.Join(allowlist, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\nAssess risk. If sender is in allowlist and content matches typical legitimate patterns " +
		"(e.g., security alerts advising NOT to share codes), lower the score. " +
		"Respond ONLY with JSON: {\n  \"score\": <0-100>,\n  \"verdict\": \"High Risk\"|\"Caution\"|\"Likely Safe\",\n  \"reasons\": [],\n  \"advice\": [],\n  \"confidence\": <0-1>\n}")
	return b.String()
}

// parseJudgment extracts a judgment from the model's reply, tolerating
// markdown code fences and prose around the JSON object.
func parseJudgment(content string) (*models.Judgment, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload judgmentPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse judgment: %w", err)
	}

	score := 50
	if payload.Score != nil {
		score = models.ClampScore(*payload.Score)
	}
	verdict := models.VerdictCaution
	if payload.Verdict != "" {
		verdict = models.Verdict(payload.Verdict)
	}
	confidence := 0.6
	if payload.Confidence != nil {
		confidence = clampConfidence(*payload.Confidence)
	}
	reasons := payload.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	advice := payload.Advice
	if advice == nil {
		advice = []string{}
	}

	return &models.Judgment{
		Score:      score,
		Verdict:    verdict,
		Reasons:    reasons,
		Advice:     advice,
		Confidence: confidence,
	}, nil
}

func serviceErrorJudgment(err error) *models.Judgment {
	return &models.Judgment{
		Score:   50,
		Verdict: models.VerdictCaution,
		Reasons: []string{fmt.Sprintf("LLM error: %v", err)},
		Advice: []string{
			"Do not share codes or passwords.",
			"Verify via official channels and trusted contacts.",
		},
	}
}

func parseErrorJudgment() *models.Judgment {
	return &models.Judgment{
		Score:   50,
		Verdict: models.VerdictCaution,
		Reasons: []string{"LLM returned non-JSON content."},
		Advice: []string{
			"Avoid urgency traps; verify independently.",
			"Never share OTPs or passwords.",
		},
		Confidence: 0.5,
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
