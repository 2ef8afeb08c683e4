package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Composer реализует app.Composer, превращая отобранные статьи
// в структурированное содержимое рассылки.
type Composer struct {
	client   GeminiClient
	cfg      config.Gemini
	audience string
	clock    func() time.Time
}

// NewComposer создаёт новый экземпляр. clock по умолчанию — time.Now.
func NewComposer(client GeminiClient, geminiCfg config.Gemini, pipelineCfg config.Pipeline, clock func() time.Time) *Composer {
	if clock == nil {
		clock = time.Now
	}
	return &Composer{
		client:   client,
		cfg:      geminiCfg,
		audience: pipelineCfg.Audience,
		clock:    clock,
	}
}

type newsletterResponse struct {
	OpeningHook    string       `json:"opening_hook"`
	TopStories     []news.Story `json:"top_stories"`
	ToolOfTheDay   string       `json:"tool_of_the_day"`
	ClosingThought string       `json:"closing_thought"`
}

// Compose реализует app.Composer.
// Исходные статьи прикрепляются к результату для дальнейшего использования.
func (c *Composer) Compose(ctx context.Context, articles []news.Article) (news.NewsletterContent, error) {
	if len(articles) == 0 {
		return news.NewsletterContent{}, nil
	}

	prompt := c.buildPrompt(articles)

	responseText, err := c.client.GenerateJSON(ctx, c.cfg.Model, prompt)
	if err != nil {
		return news.NewsletterContent{}, fmt.Errorf("generate newsletter: %w", err)
	}

	var parsed newsletterResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		cleaned := extractJSON(responseText)
		if cleaned == "" {
			return news.NewsletterContent{}, fmt.Errorf("unmarshal newsletter: %w (raw: %s)", err, responseText)
		}
		if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
			return news.NewsletterContent{}, fmt.Errorf("unmarshal cleaned newsletter: %w (raw: %s)", err, responseText)
		}
	}

	return news.NewsletterContent{
		OpeningHook:      parsed.OpeningHook,
		TopStories:       parsed.TopStories,
		ToolOfTheDay:     parsed.ToolOfTheDay,
		ClosingThought:   parsed.ClosingThought,
		OriginalArticles: articles,
	}, nil
}

func (c *Composer) buildPrompt(articles []news.Article) string {
	var sb strings.Builder
	for _, article := range articles {
		reason := article.Reason
		if reason == "" {
			reason = "Important AI news"
		}
		fmt.Fprintf(&sb, "Title: %s\nURL: %s\nWhy selected: %s\n\n", article.Title, article.URL, reason)
	}

	return fmt.Sprintf(`You are a world-class newsletter editor for an audience of %s.
Create an engaging AI newsletter for %s.
Use these top %d articles:
%s
Your task is to generate the newsletter in a specific JSON format.
The JSON object must have these exact keys: "opening_hook", "top_stories", "tool_of_the_day", "closing_thought".

- "opening_hook": A compelling 1-2 sentence intro about today's AI landscape.
- "top_stories": A JSON array. For each article, create an object with "headline" (rewritten, engaging), "summary" (2-3 sentences focusing on what and why it matters), and "link" (the original URL).
- "tool_of_the_day": A string recommending one practical AI tool or resource (can be from the articles or general knowledge).
- "closing_thought": A forward-looking insight or question to ponder.

Keep the tone professional yet conversational. Focus on practical implications.`,
		c.audience, c.clock().Format("January 2, 2006"), len(articles), sb.String())
}
