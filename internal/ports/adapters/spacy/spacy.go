package spacy

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/forPelevin/keysubs/internal/types"
)

const DefaultModel = "en_core_web_sm"

// script prints either the document's entities or its tokens as a JSON
// array. argv: mode, model, text.
const script = `import json, sys
import spacy
mode, model, text = sys.argv[1], sys.argv[2], sys.argv[3]
doc = spacy.load(model)(text)
if mode == "ents":
    out = [{"text": e.text, "label": e.label_} for e in doc.ents]
else:
    out = [{"text": t.text, "pos": t.pos_} for t in doc]
print(json.dumps(out))
`

type Adapter struct {
	python string
	model  string
}

func New(pythonPath, model string) *Adapter {
	if pythonPath == "" {
		pythonPath = "python3"
	}
	if model == "" {
		model = DefaultModel
	}
	return &Adapter{python: pythonPath, model: model}
}

func (a *Adapter) Entities(ctx context.Context, text string) ([]types.Span, error) {
	b, err := a.run(ctx, "ents", text)
	if err != nil {
		return nil, err
	}
	return parseSpans(b)
}

func (a *Adapter) Tokens(ctx context.Context, text string) ([]types.Token, error) {
	b, err := a.run(ctx, "tokens", text)
	if err != nil {
		return nil, err
	}
	return parseTokens(b)
}

func (a *Adapter) run(ctx context.Context, mode, text string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.python, "-c", script, mode, a.model, text)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("spacy %s: %w\n%s", mode, err, stderr.String())
	}
	return out, nil
}

func parseSpans(b []byte) ([]types.Span, error) {
	var raw []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(lastLine(b), &raw); err != nil {
		return nil, fmt.Errorf("decode spacy entities: %w", err)
	}
	out := make([]types.Span, 0, len(raw))
	for _, r := range raw {
		out = append(out, types.Span{Text: r.Text, Label: types.ParseLabel(r.Label)})
	}
	return out, nil
}

func parseTokens(b []byte) ([]types.Token, error) {
	var out []types.Token
	if err := json.Unmarshal(lastLine(b), &out); err != nil {
		return nil, fmt.Errorf("decode spacy tokens: %w", err)
	}
	return out, nil
}

// lastLine skips anything a model package prints on load.
func lastLine(b []byte) []byte {
	s := strings.TrimSpace(string(b))
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return []byte(s)
}
