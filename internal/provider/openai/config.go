package openai

// Config contains OpenAI provider configuration.
// Retries and timeouts are owned by the gateway, so the SDK gets neither.
type Config struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com/v1"`
	Model       string  `env:"OPENAI_MODEL"       envDefault:"gpt-4o-mini"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS"  envDefault:"1200"`
	Temperature float64 `env:"OPENAI_TEMPERATURE" envDefault:"0.4"`
}
