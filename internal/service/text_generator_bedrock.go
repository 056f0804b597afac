package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/tadoku-reader/storygen/internal/config"
	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
)

// bedrockConverseAPI はテストで差し替えるための Converse 呼び出しの最小インターフェースです
type bedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockGenerator は AWS Bedrock Runtime の Converse API でテキストを生成します
type BedrockGenerator struct {
	client  bedrockConverseAPI
	modelID string
	llm     *config.LLMConfig
}

// NewBedrockGenerator は設定に応じて認証方法を切り替えて Bedrock クライアントを生成します
func NewBedrockGenerator(ctx context.Context, cfg *config.BedrockConfig, llm *config.LLMConfig) (*BedrockGenerator, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: bedrock.model_id is not set", model.ErrConfiguration)
	}

	var awsCfgOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.Region))
	}

	switch cfg.AuthType {
	case "static_credentials":
		slog.Info("Configuring Bedrock with static credentials.")
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("%w: bedrock auth_type is 'static_credentials' but access_key_id or secret_access_key is missing", model.ErrConfiguration)
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))
	case "iam_role":
		// SDK のデフォルト認証チェーン (タスクロール、インスタンスプロファイル等) を使う
		slog.Info("Configuring Bedrock with IAM Role credentials.")
	default:
		slog.Warn("Unknown Bedrock auth_type specified, defaulting to IAM Role.", "type", cfg.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsCfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config for Bedrock: %v", model.ErrConfiguration, err)
	}
	if err := verifyCredentials(ctx, awsCfg.Credentials); err != nil {
		slog.Error("Bedrock credentials are not available", "auth_type", cfg.AuthType, "error", err)
		return nil, err
	}

	return &BedrockGenerator{
		client:  bedrockruntime.NewFromConfig(awsCfg),
		modelID: cfg.ModelID,
		llm:     llm,
	}, nil
}

// credentialCheckTimeout は起動時の認証情報解決 (IMDS 等) の待ち時間の上限です
const credentialCheckTimeout = 10 * time.Second

// verifyCredentials は認証チェーンから実際に認証情報を取得できるかを確認します。
// 取得できなければ生成時ではなく起動時に設定エラーとして返す。
func verifyCredentials(ctx context.Context, provider aws.CredentialsProvider) error {
	if provider == nil {
		return fmt.Errorf("%w: no AWS credentials provider for Bedrock", model.ErrConfiguration)
	}
	ctx, cancel := context.WithTimeout(ctx, credentialCheckTimeout)
	defer cancel()

	creds, err := provider.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve AWS credentials for Bedrock: %v", model.ErrConfiguration, err)
	}
	if !creds.HasKeys() {
		return fmt.Errorf("%w: AWS credentials for Bedrock are empty", model.ErrConfiguration)
	}
	return nil
}

func (g *BedrockGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("provider", "bedrock"), slog.String("model", g.modelID))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.llm.TimeoutSeconds)*time.Second)
	defer cancel()

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		},
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(g.llm.MaxTokens)),
			Temperature: aws.Float32(float32(g.llm.Temperature)),
			TopP:        aws.Float32(0.95),
		},
	}

	logger.Info("Calling text generation API", "prompt_chars", len(prompt))
	start := time.Now()

	out, err := g.client.Converse(ctx, input)
	if err != nil {
		upstreamErr := classifyBedrockError(ctx, err)
		logger.Error("Bedrock Converse failed", "elapsed_ms", time.Since(start).Milliseconds(), "error", upstreamErr)
		return "", upstreamErr
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", &model.UpstreamError{Kind: model.ErrUpstream, Message: "response has no message"}
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	content := b.String()

	logger.Info("Text generation API responded",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"response_bytes", len(content),
		"stop_reason", string(out.StopReason),
	)
	if strings.TrimSpace(content) == "" {
		return "", &model.UpstreamError{Kind: model.ErrUpstream, Message: "response content is empty"}
	}
	if out.StopReason == types.StopReasonMaxTokens {
		logger.Warn("Text generation stopped at max_tokens", "max_tokens", g.llm.MaxTokens)
	}
	return content, nil
}

func classifyBedrockError(ctx context.Context, err error) *model.UpstreamError {
	var (
		throttling   *types.ThrottlingException
		accessDenied *types.AccessDeniedException
		modelTimeout *types.ModelTimeoutException
		apiErr       smithy.APIError
	)
	switch {
	case isTimeout(ctx, err), errors.As(err, &modelTimeout):
		return &model.UpstreamError{Kind: model.ErrUpstreamTimeout, Err: err}
	case errors.As(err, &throttling):
		return &model.UpstreamError{Kind: model.ErrRateLimited, Message: throttling.ErrorMessage(), Err: err}
	case errors.As(err, &accessDenied):
		return &model.UpstreamError{Kind: model.ErrUpstreamAuth, Message: accessDenied.ErrorMessage(), Err: err}
	case errors.As(err, &apiErr):
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "ExpiredTokenException", "InvalidSignatureException":
			return &model.UpstreamError{Kind: model.ErrUpstreamAuth, Message: apiErr.ErrorMessage(), Err: err}
		}
		return &model.UpstreamError{Kind: model.ErrUpstream, Message: apiErr.ErrorCode() + ": " + apiErr.ErrorMessage(), Err: err}
	default:
		return &model.UpstreamError{Kind: model.ErrUpstream, Message: "request failed", Err: err}
	}
}
