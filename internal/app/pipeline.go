package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// ErrNotConfigured возвращается, когда пайплайн запущен без обязательных зависимостей.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// ErrNoArticles означает, что поиск не дал ни одной статьи. Это не сбой
// провайдера, а штатная остановка запуска.
var ErrNoArticles = errors.New("no articles found")

// ErrNoContent означает, что генерация не дала содержимого рассылки.
var ErrNoContent = errors.New("no newsletter content produced")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// Collector собирает свежие статьи по настроенным темам.
type Collector interface {
	SearchNews(ctx context.Context) ([]news.Article, error)
}

// Scorer оценивает статьи по релевантности и новостной ценности.
type Scorer interface {
	Score(ctx context.Context, articles []news.Article) ([]news.Article, error)
}

// Ranker сортирует статьи по оценке и выбирает топ-N.
type Ranker interface {
	Top(articles []news.Article) []news.Article
}

// Composer превращает отобранные статьи в содержимое рассылки.
type Composer interface {
	Compose(ctx context.Context, articles []news.Article) (news.NewsletterContent, error)
}

// Mailer доставляет готовую рассылку получателям.
type Mailer interface {
	SendNewsletter(ctx context.Context, content news.NewsletterContent) error
}

// PipelineDeps перечисляет зависимости пайплайна.
type PipelineDeps struct {
	Collector Collector
	Scorer    Scorer
	Ranker    Ranker
	Composer  Composer
	Mailer    Mailer
	Clock     Clock
	Config    config.Pipeline
}

// Pipeline инкапсулирует один запуск рассылки: сбор, оценку, генерацию
// и доставку. Между запусками состояние не сохраняется.
type Pipeline struct {
	collector Collector
	scorer    Scorer
	ranker    Ranker
	composer  Composer
	mailer    Mailer
	clock     Clock
	cfg       config.Pipeline
}

// NewPipeline создаёт новый экземпляр пайплайна.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		collector: deps.Collector,
		scorer:    deps.Scorer,
		ranker:    deps.Ranker,
		composer:  deps.Composer,
		mailer:    deps.Mailer,
		clock:     clock,
		cfg:       deps.Config,
	}
}

// Run исполняет полный цикл и отправляет рассылку.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	defer p.recoverPanic(&err)

	if p.mailer == nil {
		return ErrNotConfigured
	}

	content, err := p.produce(ctx)
	if err != nil {
		return err
	}

	log.Println("Step 4: Sending newsletter...")
	if err := p.mailer.SendNewsletter(ctx, content); err != nil {
		return fmt.Errorf("send newsletter: %w", err)
	}

	log.Println("Newsletter pipeline completed successfully")
	return nil
}

// RunPreview исполняет цикл без доставки и печатает превью в stdout.
func (p *Pipeline) RunPreview(ctx context.Context) (err error) {
	defer p.recoverPanic(&err)

	content, err := p.produce(ctx)
	if err != nil {
		return err
	}

	p.printPreview(content)
	return nil
}

// produce выполняет общую часть обоих режимов: сбор, оценку и генерацию.
func (p *Pipeline) produce(ctx context.Context) (news.NewsletterContent, error) {
	if err := p.validateDeps(); err != nil {
		return news.NewsletterContent{}, err
	}

	log.Println("Step 1: Collecting articles...")
	articles, err := p.collector.SearchNews(ctx)
	if err != nil {
		return news.NewsletterContent{}, fmt.Errorf("collect articles: %w", err)
	}
	if len(articles) == 0 {
		log.Println("Warning: no articles found, stopping pipeline")
		return news.NewsletterContent{}, ErrNoArticles
	}
	log.Printf("Collected %d unique articles", len(articles))

	log.Println("Step 2: Scoring and ranking articles...")
	scored, err := p.scorer.Score(ctx, articles)
	if err != nil {
		// Сбой оценки не останавливает запуск: используем исходный порядок
		log.Printf("Error scoring articles, falling back to original order: %v", err)
		scored = articles
	}

	top := p.ranker.Top(scored)
	if len(top) == 0 {
		log.Println("Warning: no articles left after ranking, stopping pipeline")
		return news.NewsletterContent{}, ErrNoContent
	}
	log.Printf("Selected top %d articles", len(top))

	log.Println("Step 3: Composing newsletter content...")
	content, err := p.composer.Compose(ctx, top)
	if err != nil {
		log.Printf("Error composing newsletter content: %v", err)
		return news.NewsletterContent{}, ErrNoContent
	}
	if content.Empty() {
		log.Println("Warning: composition produced no content, stopping pipeline")
		return news.NewsletterContent{}, ErrNoContent
	}

	return content, nil
}

func (p *Pipeline) validateDeps() error {
	switch {
	case p.collector == nil,
		p.scorer == nil,
		p.ranker == nil,
		p.composer == nil,
		p.clock == nil:
		return ErrNotConfigured
	default:
		return nil
	}
}

// recoverPanic перехватывает неожиданную панику на границе пайплайна,
// чтобы процесс завершился чисто, а запуск был отмечен как неудачный.
func (p *Pipeline) recoverPanic(err *error) {
	if r := recover(); r != nil {
		log.Printf("CRITICAL: unexpected panic in pipeline: %v\n%s", r, debug.Stack())
		*err = fmt.Errorf("pipeline panic: %v", r)
	}
}

func (p *Pipeline) printPreview(content news.NewsletterContent) {
	divider := "=================================================="

	fmt.Println()
	fmt.Println(divider)
	fmt.Println("NEWSLETTER PREVIEW")
	fmt.Println(divider)
	fmt.Println()
	fmt.Printf("SUBJECT: %s - %s\n\n", p.cfg.NewsletterName, p.clock().Format("January 2, 2006"))
	fmt.Printf("OPENING: %s\n\n", content.OpeningHook)
	for i, story := range content.TopStories {
		fmt.Printf("--- STORY %d ---\n", i+1)
		fmt.Printf("HEADLINE: %s\n", story.Headline)
		fmt.Printf("SUMMARY: %s\n", story.Summary)
		fmt.Printf("LINK: %s\n\n", story.Link)
	}
	fmt.Println("--- TOOL OF THE DAY ---")
	fmt.Printf("%s\n\n", content.ToolOfTheDay)
	fmt.Println("--- CLOSING THOUGHT ---")
	fmt.Printf("%s\n\n", content.ClosingThought)
	fmt.Println(divider)
	fmt.Println("Preview complete. No email was sent.")
	fmt.Println(divider)
}
