package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// Module: oracle
// Gemini classifies pages through Google's generative language REST API. One
// request carries the technical digest as text plus, when available, the
// screenshot as an inline image part; generation is pinned to JSON output so
// the reply parses into an AIVerdict. Every failure surfaces as an error,
// which the visual scorer treats as "analysis unavailable".
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

// NewGemini creates the classifier. The API key is the only required field;
// the rest of the config falls back to defaults.
func NewGemini(cfg Config, logger interfaces.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle: missing API key")
	}
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

// Gemini wire format. The API mixes camelCase envelope keys with snake_case
// part keys; both spellings are accepted upstream, these match the REST docs.
type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	Temperature      float32 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float32 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Classify sends the page evidence to Gemini and parses the categorical
// verdict out of its JSON reply.
func (g *Gemini) Classify(ctx context.Context, req *model.ClassifyRequest) (*model.AIVerdict, error) {
	parts := []geminiPart{{Text: buildPrompt(req)}}
	if len(req.Screenshot) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(req.Screenshot),
		}})
	}

	body := geminiRequest{
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		GenerationConfig: geminiGenConfig{
			Temperature:      0.1,
			TopK:             40,
			TopP:             0.95,
			MaxOutputTokens:  1024,
			ResponseMIMEType: "application/json",
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API status %d: %s", resp.StatusCode, respBody)
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if gr.Error != nil {
		return nil, fmt.Errorf("gemini API error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini API")
	}

	verdict, err := parseVerdict(gr.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	if g.logger != nil {
		g.logger.Debug("page classified",
			interfaces.Field{Key: "url", Value: req.URL},
			interfaces.Field{Key: "result", Value: verdict.Result},
			interfaces.Field{Key: "took", Value: time.Since(start).String()})
	}

	return verdict, nil
}
