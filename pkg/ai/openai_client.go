// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrivision/pkg/advisory"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
	log      *zap.Logger
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAI(endpoint, key, model string, log *zap.Logger) Client {
	return &openAI{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: 25 * time.Second},
		log:      log,
	}
}

type chatReq struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAI) SummarizeAdvisory(ctx context.Context, s advisory.SoilSample, r advisory.AdvisoryResult) string {
	content, err := c.complete(ctx, chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are an agronomist who writes concise, actionable soil summaries for farmers in Markdown."},
			{"role": "user", "content": renderSummaryPrompt(s, r)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		c.log.Warn("llm summary failed, using fallback", zap.Error(err))
		return fallbackSummary(s, r)
	}
	return content
}

func (c *openAI) complete(ctx context.Context, body chatReq) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions: status %d", resp.StatusCode)
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat completions: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func renderSummaryPrompt(s advisory.SoilSample, r advisory.AdvisoryResult) string {
	return fmt.Sprintf(`
Summarize this soil advisory in at most 6 Markdown bullet points.
- Keep every classification, score and crop exactly as given; do not add crops.
- Turn the improvement suggestions into concrete next steps.

SOIL SAMPLE:
N=%.1f P=%.1f K=%.1f pH=%.2f temperature=%.1f°C humidity=%.1f%% rainfall=%.1fmm

FERTILITY: pH %s, nitrogen %s, phosphorus %s, potassium %s, overall %s
IRRIGATION: %d/5 (%s)
RECOMMENDED CROPS: %s
IMPROVEMENTS:
- %s
`,
		s.Nitrogen, s.Phosphorus, s.Potassium, s.PH, s.TemperatureC, s.HumidityPct, s.RainfallMM,
		r.Fertility.PH, r.Fertility.Nitrogen, r.Fertility.Phosphorus, r.Fertility.Potassium, r.Fertility.Overall,
		r.Irrigation.Score, r.Irrigation.Description,
		strings.Join(r.RecommendedCrops, ", "),
		strings.Join(r.ImprovementSuggestions, "\n- "),
	)
}

func fallbackSummary(s advisory.SoilSample, r advisory.AdvisoryResult) string {
	return fmt.Sprintf(
		"**Soil summary**\n\n- Overall fertility: %s (pH %.1f is %s)\n- Irrigation: %d/5, %s\n- Suited crops: %s\n- Next step: %s",
		r.Fertility.Overall, s.PH, strings.ToLower(string(r.Fertility.PH)),
		r.Irrigation.Score, r.Irrigation.Description,
		strings.Join(r.RecommendedCrops, ", "),
		first(r.ImprovementSuggestions),
	)
}

func first(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}
