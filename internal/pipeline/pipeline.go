package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forPelevin/keysubs/internal/config"
	"github.com/forPelevin/keysubs/internal/logging"
	"github.com/forPelevin/keysubs/internal/ports"
	"github.com/forPelevin/keysubs/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/keysubs/internal/ports/adapters/jsonfile"
	"github.com/forPelevin/keysubs/internal/ports/adapters/openrouter"
	"github.com/forPelevin/keysubs/internal/ports/adapters/spacy"
	"github.com/forPelevin/keysubs/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/keysubs/internal/usecase"
)

type EntitiesConfig struct {
	App  config.Config
	Text string
	// DocPath, when set, replaces the NER backend with a pre-analyzed document.
	DocPath string
	Log     logrus.FieldLogger
}

func (c EntitiesConfig) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if c.DocPath != "" {
		if _, err := os.Stat(c.DocPath); err != nil {
			return fmt.Errorf("stat doc: %w", err)
		}
		return nil
	}
	if strings.TrimSpace(c.Text) == "" {
		return errors.New("text is empty")
	}
	if c.App.NER.Backend == config.BackendOpenRouter {
		if c.App.OpenRouter.APIKey == "" {
			return errors.New("OPENROUTER_API_KEY is required for the openrouter backend (set it in .env)")
		}
		return openrouter.ValidateBaseURL(c.App.OpenRouter.BaseURL, c.App.OpenRouter.AllowedHosts)
	}
	return nil
}

type SubtitlesConfig struct {
	App        config.Config
	InputAudio string
	// TranscriptPath, when set, replaces ffmpeg and whisper.cpp with a
	// transcript read from disk.
	TranscriptPath string
	Log            logrus.FieldLogger
}

func (c SubtitlesConfig) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if c.InputAudio == "" {
		return errors.New("input is empty")
	}
	if c.TranscriptPath != "" {
		if _, err := os.Stat(c.TranscriptPath); err != nil {
			return fmt.Errorf("stat transcript: %w", err)
		}
		return nil
	}
	if _, err := os.Stat(c.InputAudio); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.App.ASR.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	return nil
}

// RunEntities returns the selected entities as a single-line JSON array.
func RunEntities(ctx context.Context, cfg EntitiesConfig) ([]byte, error) {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}

	uc := usecase.New(usecase.Deps{NER: newNER(cfg)})
	ents, err := uc.Entities(ctx, usecase.EntitiesInput{
		Text:   cfg.Text,
		Policy: cfg.App.EntityPolicy(),
		Log:    log,
	})
	if err != nil {
		return nil, err
	}
	return encodeEntities(ents)
}

func newNER(cfg EntitiesConfig) ports.NER {
	if cfg.DocPath != "" {
		return jsonfile.NewDocument(cfg.DocPath)
	}
	switch cfg.App.NER.Backend {
	case config.BackendOpenRouter:
		or := cfg.App.OpenRouter
		return openrouter.New(or.APIKey, or.Model, or.BaseURL)
	default:
		return spacy.New(cfg.App.NER.PythonPath, cfg.App.NER.SpacyModel)
	}
}

func encodeEntities(ents []string) ([]byte, error) {
	if ents == nil {
		ents = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ents); err != nil {
		return nil, fmt.Errorf("marshal entities: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// RunSubtitles transcribes the input, writes <output_dir>/<stem>.srt and
// returns its absolute path.
func RunSubtitles(ctx context.Context, cfg SubtitlesConfig) (string, error) {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}

	deps := usecase.Deps{}
	if cfg.TranscriptPath != "" {
		deps.ASR = jsonfile.NewTranscript(cfg.TranscriptPath)
	} else {
		deps.Audio = ffmpeg.New(cfg.App.ASR.FFmpegPath)
		deps.ASR = whispercpp.New(cfg.App.ASR.WhisperBin, cfg.App.ASR.WhisperModel)
	}

	absIn, err := filepath.Abs(cfg.InputAudio)
	if err != nil {
		return "", err
	}
	cacheDir := filepath.Join(cfg.App.Paths.CacheDir, "runs", hash(absIn))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", err
	}
	log.WithField("cache", cacheDir).Debug("workspace ready")

	res, err := usecase.New(deps).Subtitles(ctx, usecase.SubtitlesInput{
		AudioPath: cfg.InputAudio,
		CacheDir:  cacheDir,
		Log:       log,
	})
	if err != nil {
		return "", err
	}

	outPath, err := filepath.Abs(srtPath(cfg.App.Paths.OutputDir, cfg.InputAudio))
	if err != nil {
		return "", err
	}
	lockPath := filepath.Join(cfg.App.Paths.CacheDir, "locks", hash(outPath)+".lock")
	if err := writeFileLocked(ctx, outPath, lockPath, []byte(res.SRT)); err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{"cues": res.Cues, "path": outPath}).Info("subtitles written")
	return outPath, nil
}

// srtPath places <stem>.srt in outDir. Leading dots mark a hidden file,
// not an extension.
func srtPath(outDir, input string) string {
	base := filepath.Base(input)
	stem := base
	if i := strings.LastIndex(base, "."); i > 0 && strings.TrimLeft(base[:i], ".") != "" {
		stem = base[:i]
	}
	return filepath.Join(outDir, stem+".srt")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.AudioTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.ASR = (*jsonfile.Transcript)(nil)
var _ ports.NER = (*spacy.Adapter)(nil)
var _ ports.NER = (*openrouter.Adapter)(nil)
var _ ports.NER = (*jsonfile.Document)(nil)
