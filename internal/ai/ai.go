package ai

import "context"

// Generator is a single-prompt text generation backend.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
