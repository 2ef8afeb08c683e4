package formatter

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/news"
)

// Фразы по умолчанию для необязательных полей: рендеринг никогда
// не должен падать из-за отсутствующего содержимого.
const (
	defaultOpeningHook    = "Here is your daily AI briefing."
	defaultToolOfTheDay   = "Explore new AI tools to boost your productivity."
	defaultClosingThought = "The field of AI continues to evolve at a breathtaking pace. Stay curious!"
	defaultHeadline       = "Untitled"
	defaultSummary        = "No summary available."
	defaultLink           = "#"

	fallbackHTML = "<p>Newsletter template is unavailable. Please check your installation.</p>"
)

// Renderer строит HTML- и текстовое представление рассылки
// из одного и того же NewsletterContent.
type Renderer struct {
	templatePath   string
	newsletterName string
	clock          func() time.Time
}

// NewRenderer создаёт новый рендерер. clock по умолчанию — time.Now.
func NewRenderer(templatePath, newsletterName string, clock func() time.Time) *Renderer {
	if clock == nil {
		clock = time.Now
	}
	return &Renderer{
		templatePath:   templatePath,
		newsletterName: newsletterName,
		clock:          clock,
	}
}

type templateData struct {
	NewsletterName string
	CurrentDate    string
	OpeningHook    string
	Stories        []news.Story
	ToolOfTheDay   string
	ClosingThought string
}

// RenderHTML строит HTML-документ по внешнему шаблону.
// Недоступный или некорректный шаблон деградирует до заглушки,
// но не срывает отправку.
func (r *Renderer) RenderHTML(content news.NewsletterContent) string {
	tmpl, err := template.ParseFiles(r.templatePath)
	if err != nil {
		log.Printf("Error loading newsletter template %s: %v", r.templatePath, err)
		return fallbackHTML
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.buildData(content)); err != nil {
		log.Printf("Error rendering newsletter template: %v", err)
		return fallbackHTML
	}

	return buf.String()
}

// RenderText строит текстовую версию письма с метками секций.
func (r *Renderer) RenderText(content news.NewsletterContent) string {
	data := r.buildData(content)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", data.NewsletterName, r.clock().Format("Monday, January 2, 2006"))
	fmt.Fprintf(&sb, "%s\n\n", data.OpeningHook)
	sb.WriteString("--- TOP STORIES ---\n\n")
	for _, story := range data.Stories {
		fmt.Fprintf(&sb, "Headline: %s\n", story.Headline)
		fmt.Fprintf(&sb, "Summary: %s\n", story.Summary)
		fmt.Fprintf(&sb, "Link: %s\n\n", story.Link)
	}
	fmt.Fprintf(&sb, "--- TOOL OF THE DAY ---\n%s\n\n", data.ToolOfTheDay)
	fmt.Fprintf(&sb, "--- CLOSING THOUGHT ---\n%s\n", data.ClosingThought)

	return sb.String()
}

// buildData подставляет фразы по умолчанию вместо отсутствующих полей.
func (r *Renderer) buildData(content news.NewsletterContent) templateData {
	stories := make([]news.Story, 0, len(content.TopStories))
	for _, story := range content.TopStories {
		stories = append(stories, news.Story{
			Headline: fallback(story.Headline, defaultHeadline),
			Summary:  fallback(story.Summary, defaultSummary),
			Link:     fallback(story.Link, defaultLink),
		})
	}

	return templateData{
		NewsletterName: r.newsletterName,
		CurrentDate:    r.clock().Format("Monday, January 2, 2006"),
		OpeningHook:    fallback(content.OpeningHook, defaultOpeningHook),
		Stories:        stories,
		ToolOfTheDay:   fallback(content.ToolOfTheDay, defaultToolOfTheDay),
		ClosingThought: fallback(content.ClosingThought, defaultClosingThought),
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
