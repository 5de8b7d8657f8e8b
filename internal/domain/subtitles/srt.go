package subtitles

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/forPelevin/keysubs/internal/types"
)

// BuildCues flattens the transcript into one cue per word. Numbering runs
// across segments; a segment without words consumes no index.
func BuildCues(tr types.Transcript) []types.Cue {
	var out []types.Cue
	idx := 1
	for _, s := range tr.Segments {
		for _, w := range s.Words {
			// Empty words are kept so cue numbering matches the word stream.
			out = append(out, types.Cue{
				Index: idx,
				Start: w.Start,
				End:   w.End,
				Text:  strings.TrimSpace(w.Word),
			})
			idx++
		}
	}
	return out
}

// EncodeSRT renders the transcript as SubRip text. The result is built in
// full before returning, so an error never leaves a partial document.
func EncodeSRT(tr types.Transcript) (string, error) {
	var b strings.Builder
	for _, c := range BuildCues(tr) {
		if err := writeCue(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// WriteSRT encodes tr and writes it to w in a single call.
func WriteSRT(w io.Writer, tr types.Transcript) error {
	s, err := EncodeSRT(tr)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func writeCue(b *strings.Builder, c types.Cue) error {
	start, err := FormatClock(c.Start)
	if err != nil {
		return fmt.Errorf("cue %d start: %w", c.Index, err)
	}
	end, err := FormatClock(c.End)
	if err != nil {
		return fmt.Errorf("cue %d end: %w", c.Index, err)
	}
	b.WriteString(strconv.Itoa(c.Index))
	b.WriteString("\n")
	b.WriteString(start)
	b.WriteString(" --> ")
	b.WriteString(end)
	b.WriteString("\n")
	b.WriteString(c.Text)
	b.WriteString("\n\n")
	return nil
}
