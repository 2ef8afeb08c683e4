package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/calmar/ai_newsletter_bot/internal/config"
)

// GeminiClient определяет интерфейс для работы с Gemini API.
// Это позволяет легко создавать моки для тестирования.
type GeminiClient interface {
	GenerateJSON(ctx context.Context, model string, prompt string) (string, error)
}

// Client инкапсулирует работу с Gemini API через официальный SDK.
type Client struct {
	client *genai.Client
}

// Убеждаемся, что Client реализует интерфейс GeminiClient.
var _ GeminiClient = (*Client)(nil)

// NewClient создаёт новый клиент для работы с Gemini API.
// Нестандартный endpoint и версия API задаются через конфигурацию,
// по умолчанию используется публичный Gemini API.
func NewClient(ctx context.Context, apiKey string, cfg config.Gemini) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey: apiKey,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: cfg.APIVersion,
		},
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client}, nil
}

// GenerateJSON отправляет одиночный запрос к модели и возвращает ответ,
// запрошенный в формате JSON. Запросы не имеют памяти между вызовами.
func (c *Client) GenerateJSON(ctx context.Context, model string, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("get text from result: %w", err)
	}
	return text, nil
}
