package categorize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestFallsBackWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	s := NewService()
	category := s.Suggest(context.Background(), "Leaky tap", "Water everywhere")
	assert.Equal(t, DefaultCategory, category)
}

func TestKnownCategoriesIncludeDefault(t *testing.T) {
	assert.Contains(t, knownCategories, DefaultCategory)
}
