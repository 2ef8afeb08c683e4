package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Моки стадий для тестирования пайплайна

type mockCollector struct {
	calls      int
	searchFunc func(ctx context.Context) ([]news.Article, error)
}

func (m *mockCollector) SearchNews(ctx context.Context) ([]news.Article, error) {
	m.calls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockScorer struct {
	calls     int
	scoreFunc func(ctx context.Context, articles []news.Article) ([]news.Article, error)
}

func (m *mockScorer) Score(ctx context.Context, articles []news.Article) ([]news.Article, error) {
	m.calls++
	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, articles)
	}
	return articles, nil
}

type mockRanker struct {
	limit int
}

func (m *mockRanker) Top(articles []news.Article) []news.Article {
	if len(articles) > m.limit {
		return articles[:m.limit]
	}
	return articles
}

type mockComposer struct {
	calls       int
	gotArticles []news.Article
	composeFunc func(ctx context.Context, articles []news.Article) (news.NewsletterContent, error)
}

func (m *mockComposer) Compose(ctx context.Context, articles []news.Article) (news.NewsletterContent, error) {
	m.calls++
	m.gotArticles = articles
	if m.composeFunc != nil {
		return m.composeFunc(ctx, articles)
	}
	stories := make([]news.Story, 0, len(articles))
	for _, article := range articles {
		stories = append(stories, news.Story{Headline: article.Title, Link: article.URL})
	}
	return news.NewsletterContent{
		OpeningHook:      "hook",
		TopStories:       stories,
		OriginalArticles: articles,
	}, nil
}

type mockMailer struct {
	calls    int
	got      news.NewsletterContent
	sendFunc func(ctx context.Context, content news.NewsletterContent) error
}

func (m *mockMailer) SendNewsletter(ctx context.Context, content news.NewsletterContent) error {
	m.calls++
	m.got = content
	if m.sendFunc != nil {
		return m.sendFunc(ctx, content)
	}
	return nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func testArticles(n int) []news.Article {
	articles := make([]news.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, news.Article{
			URL:   "https://example.com/" + string(rune('a'+i)),
			Title: "article " + string(rune('a'+i)),
		})
	}
	return articles
}

func newTestPipeline(collector *mockCollector, scorer *mockScorer, composer *mockComposer, mailer *mockMailer, limit int) *Pipeline {
	return NewPipeline(PipelineDeps{
		Collector: collector,
		Scorer:    scorer,
		Ranker:    &mockRanker{limit: limit},
		Composer:  composer,
		Mailer:    mailer,
		Clock:     fixedClock,
		Config:    config.Pipeline{NewsletterName: "AI Daily Brief", TopStoriesLimit: limit},
	})
}

func TestPipeline_RunEndToEnd(t *testing.T) {
	// 5 уникальных статей после сбора, лимит 3 — ровно 3 истории и одна доставка
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return testArticles(5), nil
	}}
	scorer := &mockScorer{}
	composer := &mockComposer{}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, scorer, composer, mailer, 3)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if mailer.calls != 1 {
		t.Errorf("mailer calls = %d, want exactly 1", mailer.calls)
	}
	if len(mailer.got.TopStories) != 3 {
		t.Errorf("delivered stories = %d, want 3", len(mailer.got.TopStories))
	}
}

func TestPipeline_RunEmptyCollectShortCircuits(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return nil, nil
	}}
	scorer := &mockScorer{}
	composer := &mockComposer{}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, scorer, composer, mailer, 5)

	err := p.Run(context.Background())
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("Run() error = %v, want ErrNoArticles", err)
	}
	if scorer.calls != 0 || composer.calls != 0 || mailer.calls != 0 {
		t.Errorf("later stages invoked: scorer=%d composer=%d mailer=%d, want 0/0/0",
			scorer.calls, composer.calls, mailer.calls)
	}
}

func TestPipeline_RunScoringFailureFallsBackToOriginalOrder(t *testing.T) {
	articles := testArticles(3)
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return articles, nil
	}}
	scorer := &mockScorer{scoreFunc: func(ctx context.Context, in []news.Article) ([]news.Article, error) {
		return nil, errors.New("unmarshal scores: invalid character")
	}}
	composer := &mockComposer{}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, scorer, composer, mailer, 5)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(composer.gotArticles) != len(articles) {
		t.Fatalf("composer got %d articles, want %d", len(composer.gotArticles), len(articles))
	}
	for i := range articles {
		if composer.gotArticles[i].Title != articles[i].Title {
			t.Errorf("composer article[%d] = %q, want original order %q",
				i, composer.gotArticles[i].Title, articles[i].Title)
		}
	}
}

func TestPipeline_RunCompositionFailureStopsBeforeSend(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return testArticles(2), nil
	}}
	composer := &mockComposer{composeFunc: func(ctx context.Context, articles []news.Article) (news.NewsletterContent, error) {
		return news.NewsletterContent{}, errors.New("unmarshal newsletter: invalid")
	}}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, &mockScorer{}, composer, mailer, 5)

	err := p.Run(context.Background())
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("Run() error = %v, want ErrNoContent", err)
	}
	if mailer.calls != 0 {
		t.Errorf("mailer calls = %d, want 0", mailer.calls)
	}
}

func TestPipeline_RunEmptyContentStopsBeforeSend(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return testArticles(2), nil
	}}
	composer := &mockComposer{composeFunc: func(ctx context.Context, articles []news.Article) (news.NewsletterContent, error) {
		return news.NewsletterContent{}, nil
	}}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, &mockScorer{}, composer, mailer, 5)

	if err := p.Run(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Fatalf("Run() error = %v, want ErrNoContent", err)
	}
	if mailer.calls != 0 {
		t.Errorf("mailer calls = %d, want 0", mailer.calls)
	}
}

func TestPipeline_RunSendFailureIsReported(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return testArticles(2), nil
	}}
	mailer := &mockMailer{sendFunc: func(ctx context.Context, content news.NewsletterContent) error {
		return errors.New("resend send: status 500")
	}}

	p := newTestPipeline(collector, &mockScorer{}, &mockComposer{}, mailer, 5)

	if err := p.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want send failure")
	}
}

func TestPipeline_RunRecoversFromPanic(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		panic("boom")
	}}

	p := newTestPipeline(collector, &mockScorer{}, &mockComposer{}, &mockMailer{}, 5)

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want recovered panic")
	}
}

func TestPipeline_RunNotConfigured(t *testing.T) {
	p := NewPipeline(PipelineDeps{})

	if err := p.Run(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Run() error = %v, want ErrNotConfigured", err)
	}
}

func TestPipeline_RunPreviewSkipsMailer(t *testing.T) {
	collector := &mockCollector{searchFunc: func(ctx context.Context) ([]news.Article, error) {
		return testArticles(2), nil
	}}
	mailer := &mockMailer{}

	p := newTestPipeline(collector, &mockScorer{}, &mockComposer{}, mailer, 5)

	if err := p.RunPreview(context.Background()); err != nil {
		t.Fatalf("RunPreview() error = %v", err)
	}
	if mailer.calls != 0 {
		t.Errorf("mailer calls = %d, want 0 in preview mode", mailer.calls)
	}
}
