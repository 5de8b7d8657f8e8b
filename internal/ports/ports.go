package ports

import (
	"context"

	"github.com/forPelevin/keysubs/internal/types"
)

type AudioTool interface {
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}

// NER exposes recognition and tagging as separate calls so callers only pay
// for tagging when they need it.
type NER interface {
	Entities(ctx context.Context, text string) ([]types.Span, error)
	Tokens(ctx context.Context, text string) ([]types.Token, error)
}
