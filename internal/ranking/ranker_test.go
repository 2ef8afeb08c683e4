package ranking

import (
	"testing"

	"github.com/calmar/ai_newsletter_bot/internal/news"
)

func TestRanker_Top(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		articles   []news.Article
		wantTitles []string
	}{
		{
			name:       "empty input",
			limit:      5,
			articles:   nil,
			wantTitles: []string{},
		},
		{
			name:  "sorted descending by score",
			limit: 5,
			articles: []news.Article{
				{Title: "low", Score: 3},
				{Title: "high", Score: 9},
				{Title: "mid", Score: 5},
			},
			wantTitles: []string{"high", "mid", "low"},
		},
		{
			name:  "equal scores keep original order",
			limit: 5,
			articles: []news.Article{
				{Title: "first-nine", Score: 9},
				{Title: "three", Score: 3},
				{Title: "second-nine", Score: 9},
			},
			wantTitles: []string{"first-nine", "second-nine", "three"},
		},
		{
			name:  "truncates long list to limit",
			limit: 5,
			articles: []news.Article{
				{Title: "a", Score: 8}, {Title: "b", Score: 7}, {Title: "c", Score: 6},
				{Title: "d", Score: 5}, {Title: "e", Score: 4}, {Title: "f", Score: 3},
				{Title: "g", Score: 2}, {Title: "h", Score: 1},
			},
			wantTitles: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:  "short list is returned whole",
			limit: 5,
			articles: []news.Article{
				{Title: "a", Score: 2}, {Title: "b", Score: 1}, {Title: "c", Score: 3},
			},
			wantTitles: []string{"c", "a", "b"},
		},
		{
			name:  "zero limit yields nothing",
			limit: 0,
			articles: []news.Article{
				{Title: "a", Score: 9},
			},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.limit).Top(tt.articles)
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("Top() len = %d, want %d", len(got), len(tt.wantTitles))
			}
			for i, article := range got {
				if article.Title != tt.wantTitles[i] {
					t.Errorf("Top()[%d].Title = %q, want %q", i, article.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestRanker_TopDoesNotMutateInput(t *testing.T) {
	articles := []news.Article{
		{Title: "low", Score: 1},
		{Title: "high", Score: 9},
	}

	New(5).Top(articles)

	if articles[0].Title != "low" || articles[1].Title != "high" {
		t.Errorf("Top() mutated input slice: %v", articles)
	}
}
