package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/forPelevin/keysubs/internal/domain/entities"
	"github.com/forPelevin/keysubs/internal/domain/subtitles"
	"github.com/forPelevin/keysubs/internal/logging"
	"github.com/forPelevin/keysubs/internal/ports"
	"github.com/forPelevin/keysubs/internal/types"
)

type Deps struct {
	// Audio may be nil when the ASR backend does not read audio.
	Audio ports.AudioTool
	ASR   ports.ASR
	NER   ports.NER
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type EntitiesInput struct {
	Text   string
	Policy entities.Policy
	Log    logrus.FieldLogger
}

// Entities runs NER on the text and applies the selection policy. Tagging
// is requested from the backend only if no span qualifies.
func (u Usecase) Entities(ctx context.Context, in EntitiesInput) ([]string, error) {
	log := fieldLogger(in.Log)

	spans, err := u.d.NER.Entities(ctx, in.Text)
	if err != nil {
		return nil, err
	}
	log.WithField("spans", len(spans)).Debug("entities recognized")

	tokens := func() ([]types.Token, error) {
		log.Info("no qualifying entity, falling back to noun frequency")
		return u.d.NER.Tokens(ctx, in.Text)
	}
	out, err := in.Policy.Select(spans, tokens)
	if err != nil {
		return nil, err
	}
	log.WithField("selected", len(out)).Debug("entities selected")
	return out, nil
}

type SubtitlesInput struct {
	AudioPath string
	CacheDir  string
	Log       logrus.FieldLogger
}

type SubtitlesResult struct {
	SRT  string
	Cues int
}

func (u Usecase) Subtitles(ctx context.Context, in SubtitlesInput) (SubtitlesResult, error) {
	log := fieldLogger(in.Log)

	src := in.AudioPath
	if u.d.Audio != nil {
		wav := filepath.Join(in.CacheDir, "audio.wav")
		log.WithField("wav", wav).Debug("extracting audio")
		if err := u.d.Audio.ExtractAudioMono16k(ctx, in.AudioPath, wav); err != nil {
			return SubtitlesResult{}, err
		}
		src = wav
	}

	tr, err := u.d.ASR.Transcribe(ctx, src, in.CacheDir)
	if err != nil {
		return SubtitlesResult{}, err
	}
	log.WithField("segments", len(tr.Segments)).Debug("transcribed")

	cues := subtitles.BuildCues(tr)
	srt, err := subtitles.EncodeSRT(tr)
	if err != nil {
		return SubtitlesResult{}, fmt.Errorf("encode srt: %w", err)
	}
	return SubtitlesResult{SRT: srt, Cues: len(cues)}, nil
}

func fieldLogger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logging.Discard()
	}
	return l
}
