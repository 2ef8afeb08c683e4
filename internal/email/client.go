package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// EmailClient определяет интерфейс провайдера доставки писем.
// Это позволяет легко создавать моки для тестирования.
type EmailClient interface {
	Send(ctx context.Context, from string, to []string, subject, html, text string) (string, error)
}

// Client инкапсулирует работу с Resend API через официальный SDK.
type Client struct {
	client *resend.Client
}

// Убеждаемся, что Client реализует интерфейс EmailClient.
var _ EmailClient = (*Client)(nil)

// NewClient создаёт клиента Resend. apiKey обязателен.
func NewClient(apiKey string) *Client {
	return &Client{client: resend.NewClient(apiKey)}
}

// Send отправляет одно письмо и возвращает идентификатор сообщения.
func (c *Client) Send(ctx context.Context, from string, to []string, subject, html, text string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}

	return sent.Id, nil
}
