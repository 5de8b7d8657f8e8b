package entities

import (
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/keysubs/internal/types"
)

// DefaultMinNounLength is the shortest fallback noun, in runes.
const DefaultMinNounLength = 4

// DefaultLabels are the span labels reported as entities.
var DefaultLabels = []types.Label{
	types.LabelOrg,
	types.LabelPerson,
	types.LabelGPE,
	types.LabelProduct,
	types.LabelEvent,
}

// TokenSource produces the POS-tagged token stream on demand. It is called
// at most once, and only when no span qualifies.
type TokenSource func() ([]types.Token, error)

// Tokens wraps an already available token slice.
func Tokens(toks []types.Token) TokenSource {
	return func() ([]types.Token, error) { return toks, nil }
}

type Policy struct {
	Labels        []types.Label
	MinNounLength int
}

func DefaultPolicy() Policy {
	return Policy{
		Labels:        append([]types.Label(nil), DefaultLabels...),
		MinNounLength: DefaultMinNounLength,
	}
}

// Select returns the texts of spans with an allowed label, in source order
// and with duplicates kept. When none qualify it falls back to the most
// frequent lower-cased noun from tokens. An empty result is not an error;
// the only error is one returned by tokens.
func (p Policy) Select(spans []types.Span, tokens TokenSource) ([]string, error) {
	allowed := make(map[types.Label]struct{}, len(p.Labels))
	for _, l := range p.Labels {
		allowed[l] = struct{}{}
	}

	out := []string{}
	for _, s := range spans {
		if _, ok := allowed[s.Label]; ok {
			out = append(out, s.Text)
		}
	}
	if len(out) > 0 || tokens == nil {
		return out, nil
	}

	toks, err := tokens()
	if err != nil {
		return nil, err
	}
	if noun, ok := topNoun(toks, p.MinNounLength); ok {
		out = append(out, noun)
	}
	return out, nil
}

// Select applies DefaultPolicy.
func Select(spans []types.Span, tokens TokenSource) ([]string, error) {
	return DefaultPolicy().Select(spans, tokens)
}

// topNoun counts nouns in first-seen order and returns the highest count.
// Equal counts go to the noun seen earliest.
func topNoun(toks []types.Token, minLen int) (string, bool) {
	var order []string
	counts := make(map[string]int)
	for _, t := range toks {
		if t.POS != types.POSNoun || utf8.RuneCountInString(t.Text) < minLen {
			continue
		}
		w := strings.ToLower(t.Text)
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	best, bestN := "", 0
	for _, w := range order {
		if counts[w] > bestN {
			best, bestN = w, counts[w]
		}
	}
	return best, bestN > 0
}
