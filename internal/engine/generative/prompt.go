package generative

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt/enrich.md
var enrichPrompt string

var enrichTmpl = template.Must(template.New("enrich").Parse(enrichPrompt))

type promptInput struct {
	Content       string
	PreviousError string
	Schema        string
}

// buildPrompt renders the enrichment prompt. previousError is empty on the first attempt.
func buildPrompt(content, schema, previousError string) (string, error) {
	var b strings.Builder
	err := enrichTmpl.Execute(&b, promptInput{
		Content:       content,
		PreviousError: previousError,
		Schema:        schema,
	})
	if err != nil {
		return "", fmt.Errorf("render enrich prompt: %w", err)
	}
	return b.String(), nil
}
