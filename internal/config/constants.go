// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "tadoku-storygen"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"

	DefaultLLMProvider       = "openai"
	DefaultLLMBaseURL        = "https://api.openai.com"
	DefaultLLMModel          = "gpt-4o"
	DefaultLLMTimeoutSeconds = 120
	MinLLMTimeoutSeconds     = 60
	DefaultLLMTemperature    = 0.7
	DefaultLLMMaxTokens      = 8000
)
