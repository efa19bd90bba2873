package domain

import "context"

// TextGenerator is the contract between the generative engine and a model provider.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
	// Name is the model identifier recorded as llm_model.
	Name() string
}

// GenerationRequest is a single prompt plus sampling settings.
type GenerationRequest struct {
	Prompt          string
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
	// JSONResponse asks the provider for a JSON MIME type when it supports one.
	JSONResponse bool
}

// GenerationResult carries the raw reply and token usage through the decorator chain.
type GenerationResult struct {
	Text         string
	PromptTokens int
	TotalTokens  int
}
