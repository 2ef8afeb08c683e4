package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Root объединяет все конфигурационные блоки.
	Root struct {
		Pipeline Pipeline `yaml:"pipeline"`
		Search   Search   `yaml:"search"`
		Gemini   Gemini   `yaml:"gemini"`
	}

	// Pipeline описывает параметры главного пайплайна рассылки.
	Pipeline struct {
		Interests       []string `yaml:"interests"`
		TrustedDomains  []string `yaml:"trusted_domains"`
		TopStoriesLimit int      `yaml:"top_stories_limit"`
		ContentBudget   int      `yaml:"content_budget"` // Максимум символов статьи, отправляемых в модель
		NewsletterName  string   `yaml:"newsletter_name"`
		Audience        string   `yaml:"audience"`
	}

	// Search содержит настройки поискового провайдера (Tavily).
	Search struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		MaxResults     int `yaml:"max_results"`
		Days           int `yaml:"days"`
	}

	// Gemini содержит настройки модели и доступа к API.
	Gemini struct {
		Model      string `yaml:"model"`
		Endpoint   string `yaml:"endpoint,omitempty"`
		APIVersion string `yaml:"api_version,omitempty"`
	}
)

// Load читает основной файл конфигурации и накладывает его поверх дефолтов.
// Отсутствующий файл не является ошибкой: применяются значения по умолчанию.
func Load(path string) (Root, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var fileCfg Root
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return mergeConfig(cfg, fileCfg), nil
}

// defaultConfig перечисляет все значения по умолчанию в одном месте.
func defaultConfig() Root {
	return Root{
		Pipeline: Pipeline{
			Interests: []string{
				"Large Language Models",
				"AI agents",
				"AI tools",
				"machine learning breakthroughs",
			},
			TopStoriesLimit: 5,
			ContentBudget:   4000,
			NewsletterName:  "AI Daily Brief",
			Audience:        "tech professionals and AI enthusiasts",
		},
		Search: Search{
			TimeoutSeconds: 30,
			MaxResults:     100,
			Days:           1,
		},
		Gemini: Gemini{
			Model: "gemini-2.5-flash",
		},
	}
}

func mergeConfig(base, override Root) Root {
	if len(override.Pipeline.Interests) > 0 {
		base.Pipeline.Interests = override.Pipeline.Interests
	}
	if len(override.Pipeline.TrustedDomains) > 0 {
		base.Pipeline.TrustedDomains = override.Pipeline.TrustedDomains
	}
	if override.Pipeline.TopStoriesLimit > 0 {
		base.Pipeline.TopStoriesLimit = override.Pipeline.TopStoriesLimit
	}
	if override.Pipeline.ContentBudget > 0 {
		base.Pipeline.ContentBudget = override.Pipeline.ContentBudget
	}
	if override.Pipeline.NewsletterName != "" {
		base.Pipeline.NewsletterName = override.Pipeline.NewsletterName
	}
	if override.Pipeline.Audience != "" {
		base.Pipeline.Audience = override.Pipeline.Audience
	}

	if override.Search.TimeoutSeconds > 0 {
		base.Search.TimeoutSeconds = override.Search.TimeoutSeconds
	}
	if override.Search.MaxResults > 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.Days > 0 {
		base.Search.Days = override.Search.Days
	}

	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.Endpoint != "" {
		base.Gemini.Endpoint = override.Gemini.Endpoint
	}
	if override.Gemini.APIVersion != "" {
		base.Gemini.APIVersion = override.Gemini.APIVersion
	}

	return base
}
