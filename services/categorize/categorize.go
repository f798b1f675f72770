package categorize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// DefaultCategory is used whenever no better suggestion is available.
const DefaultCategory = "General"

// knownCategories is the vocabulary the model is asked to choose from.
var knownCategories = []string{
	"Electrical", "Plumbing", "Carpentry", "Cleaning", "Internet", "Furniture", "General",
}

// Service suggests a complaint category from its title and description using
// the Gemini API. It degrades to DefaultCategory when no API key is set or
// the call fails.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Suggest returns a category for the complaint text. It never returns an
// empty string.
func (s *Service) Suggest(ctx context.Context, title, description string) string {
	category, err := s.suggest(ctx, title, description)
	if err != nil {
		return DefaultCategory
	}
	return category
}

func (s *Service) suggest(ctx context.Context, title, description string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := fmt.Sprintf(`Classify this dorm maintenance complaint into exactly one of these categories: %s.
Reply with the category name only, nothing else.

Title: %s
Description: %s`, strings.Join(knownCategories, ", "), title, description)

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	answer := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	for _, c := range knownCategories {
		if strings.EqualFold(answer, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unrecognized category suggestion: %q", answer)
}
