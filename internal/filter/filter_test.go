package filter

import (
	"testing"

	"github.com/calmar/ai_newsletter_bot/internal/news"
)

func TestDedupeByURL(t *testing.T) {
	tests := []struct {
		name     string
		articles []news.Article
		wantURLs []string
	}{
		{
			name:     "empty input",
			articles: nil,
			wantURLs: []string{},
		},
		{
			name: "no duplicates",
			articles: []news.Article{
				{URL: "https://a.com/1", Title: "A"},
				{URL: "https://b.com/2", Title: "B"},
			},
			wantURLs: []string{"https://a.com/1", "https://b.com/2"},
		},
		{
			name: "first occurrence wins",
			articles: []news.Article{
				{URL: "https://a.com/1", Title: "first"},
				{URL: "https://b.com/2", Title: "B"},
				{URL: "https://a.com/1", Title: "second"},
			},
			wantURLs: []string{"https://a.com/1", "https://b.com/2"},
		},
		{
			name: "articles without URL are dropped",
			articles: []news.Article{
				{URL: "", Title: "no url"},
				{URL: "https://a.com/1", Title: "A"},
			},
			wantURLs: []string{"https://a.com/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeByURL(tt.articles)
			if len(got) != len(tt.wantURLs) {
				t.Fatalf("DedupeByURL() len = %d, want %d", len(got), len(tt.wantURLs))
			}
			for i, article := range got {
				if article.URL != tt.wantURLs[i] {
					t.Errorf("DedupeByURL()[%d].URL = %q, want %q", i, article.URL, tt.wantURLs[i])
				}
			}
		})
	}
}

func TestDedupeByURL_KeepsFirstTitle(t *testing.T) {
	articles := []news.Article{
		{URL: "https://a.com/1", Title: "first"},
		{URL: "https://a.com/1", Title: "second"},
	}

	got := DedupeByURL(articles)
	if len(got) != 1 {
		t.Fatalf("DedupeByURL() len = %d, want 1", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("DedupeByURL() kept title %q, want %q", got[0].Title, "first")
	}
}

func TestByTrustedDomains(t *testing.T) {
	tests := []struct {
		name     string
		articles []news.Article
		trusted  []string
		wantURLs []string
	}{
		{
			name: "empty trusted set retains everything",
			articles: []news.Article{
				{URL: "https://a.com/1"},
				{URL: "https://b.com/2"},
			},
			trusted:  nil,
			wantURLs: []string{"https://a.com/1", "https://b.com/2"},
		},
		{
			name: "www prefix is stripped before matching",
			articles: []news.Article{
				{URL: "https://www.example.com/x"},
				{URL: "https://other.com/y"},
			},
			trusted:  []string{"example.com"},
			wantURLs: []string{"https://www.example.com/x"},
		},
		{
			name: "untrusted domains are dropped",
			articles: []news.Article{
				{URL: "https://other.com/y"},
			},
			trusted:  []string{"example.com"},
			wantURLs: []string{},
		},
		{
			name: "unparseable URL is dropped",
			articles: []news.Article{
				{URL: "://bad"},
				{URL: "https://example.com/ok"},
			},
			trusted:  []string{"example.com"},
			wantURLs: []string{"https://example.com/ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByTrustedDomains(tt.articles, tt.trusted)
			if len(got) != len(tt.wantURLs) {
				t.Fatalf("ByTrustedDomains() len = %d, want %d", len(got), len(tt.wantURLs))
			}
			for i, article := range got {
				if article.URL != tt.wantURLs[i] {
					t.Errorf("ByTrustedDomains()[%d].URL = %q, want %q", i, article.URL, tt.wantURLs[i])
				}
			}
		})
	}
}
