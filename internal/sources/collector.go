package sources

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/filter"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Collector собирает свежие статьи по настроенным темам интересов.
type Collector struct {
	client         SearchClient
	interests      []string
	trustedDomains []string
}

// NewCollector создаёт новый экземпляр.
func NewCollector(client SearchClient, cfg config.Pipeline) *Collector {
	return &Collector{
		client:         client,
		interests:      cfg.Interests,
		trustedDomains: cfg.TrustedDomains,
	}
}

// SearchNews реализует app.Collector.
// Все запросы выполняются одновременно; сбой одного запроса не прерывает
// остальные, его результаты просто не попадают в выдачу. Результаты
// объединяются в порядке тем, дедуплицируются по URL и при необходимости
// фильтруются по доверенным доменам.
func (c *Collector) SearchNews(ctx context.Context) ([]news.Article, error) {
	queries := c.buildQueries()
	if len(queries) == 0 {
		return nil, nil
	}

	perQuery := make([][]news.Article, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			articles, err := c.client.Search(gctx, query)
			if err != nil {
				// Ошибка одного запроса не должна остановить остальные
				log.Printf("Error fetching news for query %q: %v", query, err)
				return nil
			}
			log.Printf("Found %d articles for query %q", len(articles), query)
			perQuery[i] = articles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search news: %w", err)
	}

	var merged []news.Article
	for _, articles := range perQuery {
		merged = append(merged, articles...)
	}

	unique := filter.DedupeByURL(merged)
	log.Printf("Deduplicated: %d -> %d articles", len(merged), len(unique))

	if len(c.trustedDomains) == 0 {
		return unique, nil
	}

	trusted := filter.ByTrustedDomains(unique, c.trustedDomains)
	log.Printf("Filtered by trusted domains: %d -> %d articles", len(unique), len(trusted))
	return trusted, nil
}

func (c *Collector) buildQueries() []string {
	queries := make([]string, 0, len(c.interests))
	for _, interest := range c.interests {
		queries = append(queries, fmt.Sprintf("latest news on %s", interest))
	}
	return queries
}
