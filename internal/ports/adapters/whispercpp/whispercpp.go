package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/keysubs/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-ojf",
		"-of", outPrefix,
		"-np",
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}
	return Parse(jb)
}

// output mirrors the fields of whisper.cpp's --output-json-full we use.
type output struct {
	Transcription []struct {
		Offsets offsets `json:"offsets"`
		Text    string  `json:"text"`
		Tokens  []struct {
			Text    string  `json:"text"`
			Offsets offsets `json:"offsets"`
		} `json:"tokens"`
	} `json:"transcription"`

	// Some wrappers emit the segment/word layout directly.
	Segments []types.Segment `json:"segments"`
}

type offsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Parse decodes whisper JSON into a transcript. Tokens are merged into
// words on leading whitespace; special tokens such as [_BEG_] are dropped.
func Parse(b []byte) (types.Transcript, error) {
	var raw output
	if err := json.Unmarshal(b, &raw); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper json: %w", err)
	}
	if len(raw.Transcription) == 0 {
		tr := types.Transcript{Segments: raw.Segments}
		for i := range tr.Segments {
			tr.Segments[i].Text = strings.TrimSpace(tr.Segments[i].Text)
		}
		return tr, nil
	}

	tr := types.Transcript{Segments: make([]types.Segment, 0, len(raw.Transcription))}
	for _, seg := range raw.Transcription {
		s := types.Segment{
			Start: ms(seg.Offsets.From),
			End:   ms(seg.Offsets.To),
			Text:  strings.TrimSpace(seg.Text),
		}
		for _, tok := range seg.Tokens {
			if isSpecial(tok.Text) {
				continue
			}
			startsWord := strings.HasPrefix(tok.Text, " ") || len(s.Words) == 0
			if startsWord {
				s.Words = append(s.Words, types.Word{
					Start: ms(tok.Offsets.From),
					End:   ms(tok.Offsets.To),
					Word:  tok.Text,
				})
				continue
			}
			w := &s.Words[len(s.Words)-1]
			w.Word += tok.Text
			w.End = ms(tok.Offsets.To)
		}
		tr.Segments = append(tr.Segments, s)
	}
	return tr, nil
}

func isSpecial(tok string) bool {
	t := strings.TrimSpace(tok)
	return strings.HasPrefix(t, "[_") && strings.HasSuffix(t, "]")
}

func ms(v int64) float64 { return float64(v) / 1000 }
