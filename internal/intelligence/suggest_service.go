// Package intelligence wraps the generative-text client in the three
// drafting helpers the application offers. Every call is advisory:
// failures are returned to the caller, which degrades to fallback text
// and never blocks the primary workflow.
package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/llm"
)

// FallbackSummary is shown when the summary call fails.
const FallbackSummary = "No s'ha pogut generar l'introducció."

// ChapterSuggestion is one proposed chapter for a project structure.
type ChapterSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestService produces drafting assistance for a project.
type SuggestService interface {
	// SuggestPlaceholderValues proposes a value for each given key based
	// on the project name and description. The returned mapping may be
	// applied with Project.ApplySuggestions; keys outside the request
	// are never returned.
	SuggestPlaceholderValues(ctx context.Context, name, description string, keys []string) (map[string]string, error)

	// SuggestChapters proposes a chapter structure from a project
	// description.
	SuggestChapters(ctx context.Context, description string) ([]ChapterSuggestion, error)

	// Summarize produces an introduction text for the project's final
	// document from its name, placeholders and chapter titles.
	Summarize(ctx context.Context, project *domain.Project) (string, error)
}

type suggestService struct {
	client   llm.Client
	observer llm.Observer
}

// NewSuggestService creates a SuggestService backed by a generative client.
func NewSuggestService(client llm.Client, observer llm.Observer) SuggestService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &suggestService{client: client, observer: observer}
}

func (s *suggestService) SuggestPlaceholderValues(ctx context.Context, name, description string, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	prompt := fmt.Sprintf("Projecte: %q.\nDescripció: %q.\nClaus de dades: %s.",
		name, description, strings.Join(keys, ", "))

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggestValues,
		SystemPrompt: suggestValuesSystemPrompt,
		UserPrompt:   prompt,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("suggesting placeholder values: %w", err)
	}

	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	suggestions, err := llm.ExtractJSON[map[string]string](resp.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing value suggestions: %w", err)
	}

	// Keep only requested keys so the later merge stays pure.
	for k := range suggestions {
		if !wanted[k] {
			delete(suggestions, k)
		}
	}
	return suggestions, nil
}

func (s *suggestService) SuggestChapters(ctx context.Context, description string) ([]ChapterSuggestion, error) {
	prompt := fmt.Sprintf("Descripció del projecte: %q.", description)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggestChapters,
		SystemPrompt: suggestChaptersSystemPrompt,
		UserPrompt:   prompt,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("suggesting chapters: %w", err)
	}

	chapters, err := llm.ExtractJSON(resp.Text, func(cs []ChapterSuggestion) error {
		for _, c := range cs {
			if strings.TrimSpace(c.Title) == "" {
				return fmt.Errorf("chapter suggestion without title")
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing chapter suggestions: %w", err)
	}
	return chapters, nil
}

func (s *suggestService) Summarize(ctx context.Context, project *domain.Project) (string, error) {
	var pairs []string
	for _, ph := range project.Placeholders {
		pairs = append(pairs, ph.Key+": "+ph.Value)
	}
	var titles []string
	for i := range project.Chapters {
		titles = append(titles, project.Chapters[i].Title)
	}

	prompt := fmt.Sprintf("Projecte: %s.\nDades clau: %s.\nCapítols inclosos: %s.",
		project.Name, strings.Join(pairs, ", "), strings.Join(titles, ", "))

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty summary", llm.ErrInvalidOutput)
	}
	return text, nil
}
