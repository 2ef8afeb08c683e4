package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	tavilyAPIKeyEnv  = "TAVILY_API_KEY"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	resendAPIKeyEnv  = "RESEND_API_KEY"
	fromEmailEnv     = "FROM_EMAIL"
	recipientsEnv    = "RECIPIENT_EMAILS"
	geminiEndpoint   = "GEMINI_ENDPOINT"
	geminiModelEnv   = "GEMINI_MODEL"
	geminiVersionEnv = "GEMINI_API_VERSION"
	interestsEnv     = "AI_INTERESTS"
	audienceEnv      = "TARGET_AUDIENCE"
	newsletterEnv    = "NEWSLETTER_NAME"
)

// EnvConfig содержит ключи API и адреса, читаемые из переменных окружения.
type EnvConfig struct {
	TavilyAPIKey string
	GeminiAPIKey string
	ResendAPIKey string
	FromEmail    string
	ToEmails     []string
}

// LoadEnvConfig читает переменные окружения и возвращает конфигурацию.
// Все отсутствующие обязательные переменные перечисляются в одной ошибке,
// чтобы пользователь исправил окружение за один заход.
func LoadEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		TavilyAPIKey: os.Getenv(tavilyAPIKeyEnv),
		GeminiAPIKey: os.Getenv(geminiAPIKeyEnv),
		ResendAPIKey: os.Getenv(resendAPIKeyEnv),
		FromEmail:    os.Getenv(fromEmailEnv),
		ToEmails:     splitList(os.Getenv(recipientsEnv)),
	}

	var missing []string
	if cfg.TavilyAPIKey == "" {
		missing = append(missing, tavilyAPIKeyEnv)
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, geminiAPIKeyEnv)
	}
	if cfg.ResendAPIKey == "" {
		missing = append(missing, resendAPIKeyEnv)
	}
	if cfg.FromEmail == "" {
		missing = append(missing, fromEmailEnv)
	}
	if len(cfg.ToEmails) == 0 {
		missing = append(missing, recipientsEnv)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// ApplyEnvOverrides накладывает необязательные переменные окружения поверх
// файловой конфигурации. Переменные окружения имеют приоритет.
func (r *Root) ApplyEnvOverrides() {
	if v := os.Getenv(geminiEndpoint); v != "" {
		r.Gemini.Endpoint = v
	}
	if v := os.Getenv(geminiModelEnv); v != "" {
		r.Gemini.Model = v
	}
	if v := os.Getenv(geminiVersionEnv); v != "" {
		r.Gemini.APIVersion = v
	}
	if v := os.Getenv(interestsEnv); v != "" {
		r.Pipeline.Interests = splitList(v)
	}
	if v := os.Getenv(audienceEnv); v != "" {
		r.Pipeline.Audience = v
	}
	if v := os.Getenv(newsletterEnv); v != "" {
		r.Pipeline.NewsletterName = v
	}
}

// splitList разбирает список, разделённый запятыми, отбрасывая пустые элементы.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
