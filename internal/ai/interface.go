package ai

import (
	"context"

	"github.com/1234620/Travel-Based-Chatbot/internal/maps"
)

// LLMProvider turns a fully assembled prompt into free text.
// Implementations: GeminiProvider; tests use stubs.
type LLMProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AttractionFinder supplies grounding context for a destination.
type AttractionFinder interface {
	FindAttractions(ctx context.Context, destination string, limit int) ([]maps.Place, error)
}
