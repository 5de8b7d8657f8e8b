package openrouter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forPelevin/keysubs/internal/types"
)

var spanSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"entities": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":  map[string]any{"type": "string"},
					"label": map[string]any{"type": "string"},
				},
				"required": []string{"text", "label"},
			},
		},
	},
	"required": []string{"entities"},
}

var tokenSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"tokens": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{"type": "string"},
					"pos":  map[string]any{"type": "string"},
				},
				"required": []string{"text", "pos"},
			},
		},
	},
	"required": []string{"tokens"},
}

// Entities asks the model for OntoNotes-style entity mentions in order.
func (a *Adapter) Entities(ctx context.Context, text string) ([]types.Span, error) {
	content, err := a.complete(ctx, entitiesPrompt(text), "keysubs_entities", spanSchema)
	if err != nil {
		return nil, fmt.Errorf("openrouter entities: %w", err)
	}
	var out struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("openrouter entities: decode: %w", err)
	}
	spans := make([]types.Span, 0, len(out.Entities))
	for _, e := range out.Entities {
		if e.Text == "" {
			continue
		}
		spans = append(spans, types.Span{Text: e.Text, Label: types.ParseLabel(e.Label)})
	}
	return spans, nil
}

// Tokens asks the model for a Universal POS tagging of every token.
func (a *Adapter) Tokens(ctx context.Context, text string) ([]types.Token, error) {
	content, err := a.complete(ctx, tokensPrompt(text), "keysubs_tokens", tokenSchema)
	if err != nil {
		return nil, fmt.Errorf("openrouter tokens: %w", err)
	}
	var out struct {
		Tokens []types.Token `json:"tokens"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("openrouter tokens: decode: %w", err)
	}
	return out.Tokens, nil
}

func entitiesPrompt(text string) string {
	return "List every named entity mention in the text below, in the order they appear, " +
		"with repeated mentions listed again. Label each with one OntoNotes tag " +
		"(ORG, PERSON, GPE, PRODUCT, EVENT, DATE, NORP, LOC, ...). " +
		"Copy the mention text exactly. Return strictly valid JSON matching the provided schema." +
		"\n\nText:\n" + text
}

func tokensPrompt(text string) string {
	return "Split the text below into tokens the way spaCy's English tokenizer would and tag each " +
		"with its Universal Dependencies part of speech (NOUN, PROPN, VERB, DET, ADJ, ...). " +
		"Keep document order. Return strictly valid JSON matching the provided schema." +
		"\n\nText:\n" + text
}
