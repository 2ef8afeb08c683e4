package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Scorer реализует app.Scorer, используя Gemini API для оценки статей
// по релевантности и новостной ценности.
type Scorer struct {
	client        GeminiClient
	cfg           config.Gemini
	interests     []string
	audience      string
	contentBudget int
}

// NewScorer создаёт новый экземпляр оценщика.
func NewScorer(client GeminiClient, geminiCfg config.Gemini, pipelineCfg config.Pipeline) *Scorer {
	contentBudget := pipelineCfg.ContentBudget
	if contentBudget <= 0 {
		contentBudget = 4000 // дефолтное значение
	}
	return &Scorer{
		client:        client,
		cfg:           geminiCfg,
		interests:     pipelineCfg.Interests,
		audience:      pipelineCfg.Audience,
		contentBudget: contentBudget,
	}
}

type scoreEntry struct {
	ID     int     `json:"id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type scoresResponse struct {
	Scores []scoreEntry `json:"scores"`
}

// Score реализует app.Scorer.
// Все статьи отправляются одним запросом; оценки переносятся на статьи
// по индексу. Статья, не попавшая в ответ, сохраняет оценку 0.
func (s *Scorer) Score(ctx context.Context, articles []news.Article) ([]news.Article, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	prompt := s.buildPrompt(articles)

	responseText, err := s.client.GenerateJSON(ctx, s.cfg.Model, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate scores: %w", err)
	}

	var parsed scoresResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		cleaned := extractJSON(responseText)
		if cleaned == "" {
			return nil, fmt.Errorf("unmarshal scores: %w (raw: %s)", err, responseText)
		}
		if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal cleaned scores: %w (raw: %s)", err, responseText)
		}
	}

	scored := make([]news.Article, len(articles))
	copy(scored, articles)

	covered := 0
	for _, entry := range parsed.Scores {
		if entry.ID < 0 || entry.ID >= len(scored) {
			continue
		}
		scored[entry.ID].Score = entry.Score
		scored[entry.ID].Reason = entry.Reason
		covered++
	}
	log.Printf("Scored %d/%d articles", covered, len(scored))

	return scored, nil
}

func (s *Scorer) buildPrompt(articles []news.Article) string {
	var sb strings.Builder
	for i, article := range articles {
		fmt.Fprintf(&sb, "ID: %d\nTitle: %s\nContent: %s\n\n", i, article.Title, truncate(article.RawContent, s.contentBudget))
	}

	return fmt.Sprintf(`You are an AI newsletter curator for an audience of %s.
Your task is to score the following articles based on their relevance to these interests: %s.
Consider newsworthiness (breakthroughs > updates), practical value, and source credibility.

Articles to score:
%s
Return a JSON object containing a single key "scores" with a list of objects.
Each object must have "id" (integer), "score" (float 0-10), and "reason" (string, 1 sentence).
Be selective. Only truly noteworthy news should score above 7.
Example: {"scores": [{"id": 0, "score": 8.5, "reason": "Major LLM breakthrough from a credible source."}]}`,
		s.audience, strings.Join(s.interests, ", "), sb.String())
}

// truncate обрезает строку до limit символов (рун), не разрывая UTF-8.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
