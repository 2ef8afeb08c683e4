package news

// Article описывает статью сразу после получения из поискового провайдера.
// Score и Reason заполняются на этапе оценки и до него остаются нулевыми.
type Article struct {
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// Story — одна история рассылки, переписанная моделью для читателя.
type Story struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Link     string `json:"link"`
}

// NewsletterContent — итоговое содержимое рассылки перед отправкой.
// Создаётся один раз за запуск и после этого не изменяется.
type NewsletterContent struct {
	OpeningHook      string    `json:"opening_hook"`
	TopStories       []Story   `json:"top_stories"`
	ToolOfTheDay     string    `json:"tool_of_the_day"`
	ClosingThought   string    `json:"closing_thought"`
	OriginalArticles []Article `json:"original_articles,omitempty"`
}

// Empty сообщает, что генерация не дала ни одной истории.
func (c NewsletterContent) Empty() bool {
	return len(c.TopStories) == 0
}
