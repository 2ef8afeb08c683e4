package gemini

import "strings"

// extractJSON извлекает JSON-объект или массив из текста ответа модели.
// Модель иногда оборачивает JSON в markdown code blocks или добавляет
// пояснительный текст вокруг; здесь это вырезается.
func extractJSON(text string) string {
	original := text

	if start := strings.Index(text, "```json"); start != -1 {
		text = text[start+len("```json"):]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	} else if start := strings.Index(text, "```"); start != -1 {
		text = text[start+len("```"):]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = original
	}

	// Ищем первый JSON-объект или массив и возвращаем его целиком
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return ""
	}

	open := text[start]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}

	return ""
}
