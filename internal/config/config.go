// Package config resolves keysubs settings from built-in defaults, an
// optional TOML file and the environment, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/forPelevin/keysubs/internal/domain/entities"
	"github.com/forPelevin/keysubs/internal/types"
)

// DefaultPath is read when no explicit config file is given and it exists.
const DefaultPath = "keysubs.toml"

type Paths struct {
	OutputDir string `toml:"output_dir"`
	CacheDir  string `toml:"cache_dir"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ASR struct {
	FFmpegPath   string `toml:"ffmpeg_path"`
	WhisperBin   string `toml:"whisper_bin"`
	WhisperModel string `toml:"whisper_model"`
}

type NER struct {
	Backend    string `toml:"backend"`
	PythonPath string `toml:"python_path"`
	SpacyModel string `toml:"spacy_model"`
}

// OpenRouter holds non-secret settings; the API key only comes from the
// environment.
type OpenRouter struct {
	APIKey       string   `toml:"-"`
	Model        string   `toml:"model"`
	BaseURL      string   `toml:"base_url"`
	AllowedHosts []string `toml:"allowed_hosts"`
}

type Entities struct {
	Labels        []string `toml:"labels"`
	MinNounLength int      `toml:"min_noun_length"`
}

type Config struct {
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	ASR        ASR        `toml:"asr"`
	NER        NER        `toml:"ner"`
	OpenRouter OpenRouter `toml:"openrouter"`
	Entities   Entities   `toml:"entities"`
}

func Default() Config {
	labels := make([]string, 0, len(entities.DefaultLabels))
	for _, l := range entities.DefaultLabels {
		labels = append(labels, string(l))
	}
	return Config{
		Paths: Paths{
			OutputDir: "subtitles",
			CacheDir:  ".cache",
		},
		Logging: Logging{Level: "info", Format: "text"},
		ASR: ASR{
			FFmpegPath:   "ffmpeg",
			WhisperBin:   ".cache/bin/whisper.cpp",
			WhisperModel: ".cache/models/ggml-base.bin",
		},
		NER: NER{
			Backend:    BackendSpacy,
			PythonPath: "python3",
			SpacyModel: "en_core_web_sm",
		},
		OpenRouter: OpenRouter{
			Model:   "anthropic/claude-3.5-sonnet",
			BaseURL: "https://openrouter.ai",
		},
		Entities: Entities{
			Labels:        labels,
			MinNounLength: entities.DefaultMinNounLength,
		},
	}
}

// Load applies the file at path (DefaultPath when empty and present) and
// then the environment on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg, os.LookupEnv)
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("KEYSUBS_OUTPUT_DIR", &cfg.Paths.OutputDir)
	set("KEYSUBS_CACHE_DIR", &cfg.Paths.CacheDir)
	set("KEYSUBS_LOG_LEVEL", &cfg.Logging.Level)
	set("KEYSUBS_LOG_FORMAT", &cfg.Logging.Format)
	set("KEYSUBS_NER_BACKEND", &cfg.NER.Backend)
	set("FFMPEG_PATH", &cfg.ASR.FFmpegPath)
	set("WHISPER_BIN", &cfg.ASR.WhisperBin)
	set("WHISPER_MODEL", &cfg.ASR.WhisperModel)
	set("OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey)
	set("OPENROUTER_MODEL", &cfg.OpenRouter.Model)
	set("OPENROUTER_BASE_URL", &cfg.OpenRouter.BaseURL)
	if v, ok := lookup("OPENROUTER_ALLOWED_HOSTS"); ok && strings.TrimSpace(v) != "" {
		cfg.OpenRouter.AllowedHosts = strings.Split(v, ",")
	}
}

// EntityPolicy converts the [entities] section into a selection policy.
func (c Config) EntityPolicy() entities.Policy {
	labels := make([]types.Label, 0, len(c.Entities.Labels))
	for _, l := range c.Entities.Labels {
		labels = append(labels, types.Label(strings.ToUpper(strings.TrimSpace(l))))
	}
	return entities.Policy{Labels: labels, MinNounLength: c.Entities.MinNounLength}
}
