// Package jsonfile serves pre-computed model output from disk, so the
// entity and caption steps can run without the models installed.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/forPelevin/keysubs/internal/types"
)

// Document is an NER backend reading a types.Document JSON file.
type Document struct {
	path string
}

func NewDocument(path string) *Document { return &Document{path: path} }

func (d *Document) Entities(_ context.Context, _ string) ([]types.Span, error) {
	doc, err := d.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Spans {
		doc.Spans[i].Label = types.ParseLabel(string(doc.Spans[i].Label))
	}
	return doc.Spans, nil
}

func (d *Document) Tokens(_ context.Context, _ string) ([]types.Token, error) {
	doc, err := d.load()
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

func (d *Document) load() (types.Document, error) {
	var doc types.Document
	if err := readJSON(d.path, &doc); err != nil {
		return types.Document{}, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Transcript is an ASR backend reading a types.Transcript JSON file.
type Transcript struct {
	path string
}

func NewTranscript(path string) *Transcript { return &Transcript{path: path} }

func (t *Transcript) Transcribe(_ context.Context, _, _ string) (types.Transcript, error) {
	var tr types.Transcript
	if err := readJSON(t.path, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("load transcript: %w", err)
	}
	return tr, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
