package ranking

import (
	"sort"

	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Ranker выбирает топ-N статей по оценке модели.
type Ranker struct {
	limit int
}

// New создаёт ранкер с заданным лимитом историй.
func New(limit int) *Ranker {
	if limit < 0 {
		limit = 0
	}
	return &Ranker{limit: limit}
}

// Top сортирует статьи по убыванию оценки и обрезает до лимита.
// Сортировка стабильна: статьи с равной оценкой сохраняют исходный порядок.
// Входной срез не изменяется.
func (r *Ranker) Top(articles []news.Article) []news.Article {
	if len(articles) == 0 || r.limit == 0 {
		return nil
	}

	ranked := make([]news.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > r.limit {
		ranked = ranked[:r.limit]
	}

	return ranked
}
