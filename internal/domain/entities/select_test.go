package entities

import (
	"errors"
	"reflect"
	"testing"

	"github.com/forPelevin/keysubs/internal/types"
)

func mustNotCall(t *testing.T) TokenSource {
	t.Helper()
	return func() ([]types.Token, error) {
		t.Fatalf("token fallback must not run when a span qualifies")
		return nil, nil
	}
}

func TestSelect_FiltersSpansInOrder(t *testing.T) {
	spans := []types.Span{
		{Text: "Apple", Label: types.LabelOrg},
		{Text: "Tuesday", Label: types.Label("DATE")},
		{Text: "Tim Cook", Label: types.LabelPerson},
		{Text: "Paris", Label: types.LabelGPE},
		{Text: "three", Label: types.LabelOther},
		{Text: "iPhone", Label: types.LabelProduct},
		{Text: "Apple", Label: types.LabelOrg},
		{Text: "WWDC", Label: types.LabelEvent},
	}
	got, err := Select(spans, mustNotCall(t))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Apple", "Tim Cook", "Paris", "iPhone", "Apple", "WWDC"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select = %v, want %v", got, want)
	}
}

func TestSelect_NounFallback(t *testing.T) {
	toks := []types.Token{
		{Text: "The", POS: types.POSDet},
		{Text: "cats", POS: types.POSNoun},
		{Text: "cats", POS: types.POSNoun},
		{Text: "dog", POS: types.POSNoun},
	}
	got, err := Select(nil, Tokens(toks))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"cats"}) {
		t.Fatalf("Select = %v, want [cats]", got)
	}
}

func TestSelect_FallbackOnlyWhenNoAllowedSpan(t *testing.T) {
	spans := []types.Span{{Text: "1999", Label: types.LabelOther}}
	called := 0
	src := func() ([]types.Token, error) {
		called++
		return []types.Token{{Text: "Budget", POS: types.POSNoun}}, nil
	}
	got, err := Select(spans, src)
	if err != nil {
		t.Fatal(err)
	}
	if called != 1 {
		t.Fatalf("expected one fallback call, got %d", called)
	}
	if !reflect.DeepEqual(got, []string{"budget"}) {
		t.Fatalf("Select = %v, want [budget]", got)
	}
}

func TestSelect_Empty(t *testing.T) {
	tests := []struct {
		name string
		toks []types.Token
	}{
		{"no tokens", nil},
		{"only short nouns", []types.Token{{Text: "dog", POS: types.POSNoun}, {Text: "cat", POS: types.POSNoun}}},
		{"no nouns", []types.Token{{Text: "running", POS: types.POSVerb}, {Text: "Berlin", POS: types.POSPropn}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(nil, Tokens(tt.toks))
			if err != nil {
				t.Fatal(err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("Select = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestSelect_TieGoesToFirstSeen(t *testing.T) {
	toks := []types.Token{
		{Text: "Apples", POS: types.POSNoun},
		{Text: "pears", POS: types.POSNoun},
		{Text: "pears", POS: types.POSNoun},
		{Text: "apples", POS: types.POSNoun},
		{Text: "plums", POS: types.POSNoun},
	}
	got, err := Select(nil, Tokens(toks))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"apples"}) {
		t.Fatalf("Select = %v, want [apples]", got)
	}
}

func TestSelect_LengthCountsRunes(t *testing.T) {
	toks := []types.Token{
		{Text: "café", POS: types.POSNoun},
		{Text: "tea", POS: types.POSNoun},
		{Text: "tea", POS: types.POSNoun},
	}
	got, err := Select(nil, Tokens(toks))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"café"}) {
		t.Fatalf("Select = %v, want [café]", got)
	}
}

func TestSelect_TokenSourceError(t *testing.T) {
	boom := errors.New("tagger down")
	_, err := Select(nil, func() ([]types.Token, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected tagger error, got %v", err)
	}
}

func TestPolicy_Custom(t *testing.T) {
	p := Policy{Labels: []types.Label{types.LabelPerson}, MinNounLength: 3}
	spans := []types.Span{{Text: "Acme", Label: types.LabelOrg}}
	toks := []types.Token{{Text: "dog", POS: types.POSNoun}}
	got, err := p.Select(spans, Tokens(toks))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"dog"}) {
		t.Fatalf("Select = %v, want [dog]", got)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	toks := []types.Token{
		{Text: "river", POS: types.POSNoun},
		{Text: "stone", POS: types.POSNoun},
		{Text: "Stone", POS: types.POSNoun},
		{Text: "River", POS: types.POSNoun},
	}
	first, err := Select(nil, Tokens(toks))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := Select(nil, Tokens(toks))
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d: %v != %v", i, again, first)
		}
	}
	if !reflect.DeepEqual(first, []string{"river"}) {
		t.Fatalf("Select = %v, want [river]", first)
	}
}
