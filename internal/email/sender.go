package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/formatter"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Sender реализует app.Mailer: рендерит рассылку и отправляет её
// всем получателям одним вызовом провайдера.
type Sender struct {
	client         EmailClient
	renderer       *formatter.Renderer
	from           string
	to             []string
	newsletterName string
	clock          func() time.Time
}

// NewSender создаёт новый экземпляр отправителя. clock по умолчанию — time.Now.
func NewSender(client EmailClient, renderer *formatter.Renderer, from string, to []string, newsletterName string, clock func() time.Time) *Sender {
	if clock == nil {
		clock = time.Now
	}
	return &Sender{
		client:         client,
		renderer:       renderer,
		from:           from,
		to:             to,
		newsletterName: newsletterName,
		clock:          clock,
	}
}

// SendNewsletter реализует app.Mailer.
// Нарушение предусловий (нет отправителя, получателей или историй)
// логируется и возвращается как ошибка без обращения к провайдеру.
func (s *Sender) SendNewsletter(ctx context.Context, content news.NewsletterContent) error {
	if s.from == "" || len(s.to) == 0 {
		log.Println("Sender address or recipient list is not configured")
		return fmt.Errorf("sender address and recipients are required")
	}
	if content.Empty() {
		log.Println("No newsletter content to send")
		return fmt.Errorf("newsletter content has no stories")
	}

	subject := fmt.Sprintf("%s - %s", s.newsletterName, s.clock().Format("January 2, 2006"))
	htmlBody := s.renderer.RenderHTML(content)
	textBody := s.renderer.RenderText(content)

	id, err := s.client.Send(ctx, s.from, s.to, subject, htmlBody, textBody)
	if err != nil {
		log.Printf("Failed to send newsletter: %v", err)
		return fmt.Errorf("send newsletter: %w", err)
	}

	log.Printf("Newsletter sent successfully, message id: %s", id)
	return nil
}
