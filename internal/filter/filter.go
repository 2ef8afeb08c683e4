package filter

import (
	"net/url"
	"strings"

	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// DedupeByURL удаляет дубликаты статей по точному совпадению URL.
// Порядок сохраняется, остаётся первое вхождение каждого URL.
func DedupeByURL(articles []news.Article) []news.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]news.Article, 0, len(articles))

	for _, article := range articles {
		if article.URL == "" {
			continue
		}
		if _, ok := seen[article.URL]; ok {
			continue
		}
		seen[article.URL] = struct{}{}
		unique = append(unique, article)
	}

	return unique
}

// ByTrustedDomains оставляет только статьи с доверенных доменов.
// Пустой список доменов отключает фильтрацию целиком.
func ByTrustedDomains(articles []news.Article, trusted []string) []news.Article {
	if len(trusted) == 0 {
		return articles
	}

	allowed := make(map[string]struct{}, len(trusted))
	for _, domain := range trusted {
		allowed[strings.TrimSpace(domain)] = struct{}{}
	}

	filtered := make([]news.Article, 0, len(articles))
	for _, article := range articles {
		host := hostname(article.URL)
		if host == "" {
			continue
		}
		if _, ok := allowed[host]; ok {
			filtered = append(filtered, article)
		}
	}

	return filtered
}

// hostname извлекает хост из URL и срезает префикс "www.".
func hostname(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	return strings.TrimPrefix(host, "www.")
}
