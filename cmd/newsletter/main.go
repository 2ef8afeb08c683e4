package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/app"
	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/email"
	"github.com/calmar/ai_newsletter_bot/internal/formatter"
	"github.com/calmar/ai_newsletter_bot/internal/gemini"
	"github.com/calmar/ai_newsletter_bot/internal/ranking"
	"github.com/calmar/ai_newsletter_bot/internal/sources"
)

const (
	configPath   = "configs/pipeline.yaml"
	templatePath = "templates/newsletter.html"
)

func main() {
	mode := parseMode(os.Args[1:])
	if mode == "" {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	// Загружаем файловую конфигурацию (файл опционален)
	rootCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Загружаем переменные окружения (ключи API и адреса)
	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	rootCfg.ApplyEnvOverrides()

	// Инициализируем модули
	searchClient := sources.NewClient(envCfg.TavilyAPIKey, rootCfg.Search, nil)
	collector := sources.NewCollector(searchClient, rootCfg.Pipeline)

	geminiClient, err := gemini.NewClient(ctx, envCfg.GeminiAPIKey, rootCfg.Gemini)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	scorer := gemini.NewScorer(geminiClient, rootCfg.Gemini, rootCfg.Pipeline)
	composer := gemini.NewComposer(geminiClient, rootCfg.Gemini, rootCfg.Pipeline, time.Now)

	renderer := formatter.NewRenderer(templatePath, rootCfg.Pipeline.NewsletterName, time.Now)
	mailer := email.NewSender(
		email.NewClient(envCfg.ResendAPIKey),
		renderer,
		envCfg.FromEmail,
		envCfg.ToEmails,
		rootCfg.Pipeline.NewsletterName,
		time.Now,
	)

	// Создаём пайплайн
	p := app.NewPipeline(app.PipelineDeps{
		Collector: collector,
		Scorer:    scorer,
		Ranker:    ranking.New(rootCfg.Pipeline.TopStoriesLimit),
		Composer:  composer,
		Mailer:    mailer,
		Clock:     nil, // используем time.Now по умолчанию
		Config:    rootCfg.Pipeline,
	})

	switch mode {
	case "once":
		log.Println("Starting newsletter pipeline...")
		if err := p.Run(ctx); err != nil {
			log.Fatalf("pipeline failed: %v", err)
		}
	case "preview":
		log.Println("Starting newsletter pipeline in preview mode...")
		if err := p.RunPreview(ctx); err != nil {
			log.Fatalf("pipeline failed: %v", err)
		}
	}
}

// parseMode возвращает режим запуска по аргументам командной строки.
func parseMode(args []string) string {
	for _, arg := range args {
		switch arg {
		case "--once":
			return "once"
		case "--preview":
			return "preview"
		}
	}
	return ""
}

func printUsage() {
	fmt.Println("Usage: newsletter [--once | --preview]")
	fmt.Println("  --once:    Run the full newsletter pipeline and send the email.")
	fmt.Println("  --preview: Run the pipeline but print a preview instead of sending an email.")
}
