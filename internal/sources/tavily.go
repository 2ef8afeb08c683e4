package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/calmar/ai_newsletter_bot/internal/config"
	"github.com/calmar/ai_newsletter_bot/internal/news"
)

const tavilyBaseURL = "https://api.tavily.com"

// SearchClient определяет интерфейс поискового провайдера.
// Это позволяет легко создавать моки для тестирования.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]news.Article, error)
}

// Client инкапсулирует работу с Tavily Search API.
type Client struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	maxResults int
	days       int
}

// Убеждаемся, что Client реализует интерфейс SearchClient.
var _ SearchClient = (*Client)(nil)

// NewClient создаёт клиента Tavily. apiKey обязателен.
func NewClient(apiKey string, cfg config.Search, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > 100 {
		maxResults = 100
	}

	days := cfg.Days
	if days <= 0 {
		days = 1
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    tavilyBaseURL,
		client:     httpClient,
		maxResults: maxResults,
		days:       days,
	}
}

type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeRawContent bool   `json:"include_raw_content"`
	MaxResults        int    `json:"max_results"`
	Days              int    `json:"days"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	RawContent string `json:"raw_content"`
}

// Search выполняет один поисковый запрос, ограниченный последними сутками,
// и возвращает статьи с полным текстом.
func (c *Client) Search(ctx context.Context, query string) ([]news.Article, error) {
	payload := searchRequest{
		APIKey:            c.apiKey,
		Query:             query,
		SearchDepth:       "advanced",
		IncludeRawContent: true,
		MaxResults:        c.maxResults,
		Days:              c.days,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("tavily api status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	articles := make([]news.Article, 0, len(result.Results))
	for _, item := range result.Results {
		content := item.RawContent
		if content == "" {
			content = item.Content
		}
		articles = append(articles, news.Article{
			URL:        item.URL,
			Title:      item.Title,
			RawContent: content,
		})
	}

	return articles, nil
}
