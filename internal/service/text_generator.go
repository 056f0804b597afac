package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tadoku-reader/storygen/internal/config"
	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
)

// TextGenerator はシステムプロンプトとユーザープロンプトから生成テキストを返します。
// 失敗は *model.UpstreamError (または設定不備の model.ErrConfiguration) で返す。再試行はしない。
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// --- OpenAIGenerator ---

// OpenAIGenerator は OpenAI 互換の chat completions API を呼び出します
type OpenAIGenerator struct {
	cfg        *config.LLMConfig
	httpClient *http.Client
}

func NewOpenAIGenerator(cfg *config.LLMConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		cfg: cfg,
		// タイムアウトは呼び出しごとのコンテキストで管理する
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	TopP             float64       `json:"top_p"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("provider", "openai"), slog.String("model", g.cfg.Model))

	if strings.TrimSpace(g.cfg.APIKey) == "" {
		logger.Error("OpenAI API key is missing")
		return "", fmt.Errorf("%w: OpenAI API key is missing", model.ErrConfiguration)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	payload, err := json.Marshal(chatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:      g.cfg.Temperature,
		MaxTokens:        g.cfg.MaxTokens,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
		TopP:             0.95,
	})
	if err != nil {
		return "", &model.UpstreamError{Kind: model.ErrUpstream, Message: "failed to encode request", Err: err}
	}

	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &model.UpstreamError{Kind: model.ErrUpstream, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	logger.Info("Calling text generation API", "prompt_chars", len(prompt))
	start := time.Now()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			logger.Error("Text generation API timed out", "elapsed_ms", time.Since(start).Milliseconds())
			return "", &model.UpstreamError{Kind: model.ErrUpstreamTimeout, Err: err}
		}
		logger.Error("Text generation API request failed", "error", err)
		return "", &model.UpstreamError{Kind: model.ErrUpstream, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", &model.UpstreamError{Kind: model.ErrUpstreamTimeout, Err: err}
		}
		return "", &model.UpstreamError{Kind: model.ErrUpstream, StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	logger.Info("Text generation API responded",
		"status", resp.StatusCode,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"response_bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstreamErr := classifyHTTPStatus(resp.StatusCode, body)
		logger.Error("Text generation API returned an error", "status", resp.StatusCode, "error", upstreamErr)
		return "", upstreamErr
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		logger.Error("Invalid text generation API response body", "error", err)
		return "", &model.UpstreamError{Kind: model.ErrUpstream, StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	if len(completion.Choices) == 0 {
		logger.Error("Text generation API response has no choices")
		return "", &model.UpstreamError{Kind: model.ErrUpstream, StatusCode: resp.StatusCode, Message: "response has no choices"}
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &model.UpstreamError{Kind: model.ErrUpstream, StatusCode: resp.StatusCode, Message: "response content is empty"}
	}
	if completion.Choices[0].FinishReason == "length" {
		// 出力が max_tokens で打ち切られた。セクション欠落はパーサーで検出される。
		logger.Warn("Text generation stopped at max_tokens", "max_tokens", g.cfg.MaxTokens)
	}
	return content, nil
}

// maxUpstreamMessageRunes はエラーに含める上流メッセージの最大文字数です
const maxUpstreamMessageRunes = 300

func classifyHTTPStatus(status int, body []byte) *model.UpstreamError {
	msg := strings.TrimSpace(string(body))
	var errBody openAIErrorBody
	if json.Unmarshal(body, &errBody) == nil && errBody.Error.Message != "" {
		msg = errBody.Error.Message
	}
	if runes := []rune(msg); len(runes) > maxUpstreamMessageRunes {
		msg = string(runes[:maxUpstreamMessageRunes])
	}

	kind := model.ErrUpstream
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = model.ErrUpstreamAuth
	case status == http.StatusTooManyRequests:
		kind = model.ErrRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = model.ErrUpstreamTimeout
	}
	return &model.UpstreamError{Kind: kind, StatusCode: status, Message: msg}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// --- StaticGenerator ---

// StaticGenerator はファイルに保存した応答をそのまま返します。ローカル開発用。
type StaticGenerator struct {
	path string
}

func NewStaticGenerator(path string) *StaticGenerator {
	return &StaticGenerator{path: path}
}

func (g *StaticGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	logger := middleware.GetLogger(ctx)
	if g.path == "" {
		return "", fmt.Errorf("%w: llm.static_response_path is not set", model.ErrConfiguration)
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		logger.Error("Failed to read static response", "path", g.path, "error", err)
		return "", fmt.Errorf("%w: cannot read static response: %v", model.ErrConfiguration, err)
	}
	logger.Info("Returning static text generation response", "path", g.path, "prompt_chars", len(prompt))
	return string(data), nil
}

// --- NewTextGenerator ファクトリ関数 ---
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	logger := slog.Default()
	switch cfg.LLM.Provider {
	case "openai":
		logger.Info("Initializing OpenAI text generator...", "model", cfg.LLM.Model, "base_url", cfg.LLM.BaseURL)
		if cfg.LLM.APIKey == "" {
			// 起動は継続し、生成時に設定エラーとして返す
			logger.Warn("OpenAI API key is not configured; generation requests will fail")
		}
		return NewOpenAIGenerator(&cfg.LLM), nil
	case "bedrock":
		logger.Info("Initializing Bedrock text generator...", "model_id", cfg.Bedrock.ModelID, "region", cfg.Bedrock.Region)
		return NewBedrockGenerator(context.Background(), &cfg.Bedrock, &cfg.LLM)
	case "static":
		logger.Info("Initializing static text generator...", "path", cfg.LLM.StaticResponsePath)
		return NewStaticGenerator(cfg.LLM.StaticResponsePath), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm.provider %q", model.ErrConfiguration, cfg.LLM.Provider)
	}
}
