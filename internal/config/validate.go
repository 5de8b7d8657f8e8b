package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forPelevin/keysubs/internal/types"
)

const (
	BackendSpacy      = "spacy"
	BackendOpenRouter = "openrouter"
)

func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("paths.output_dir is empty")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.NER.Backend {
	case BackendSpacy, BackendOpenRouter:
	default:
		return fmt.Errorf("ner.backend: unsupported value %q", c.NER.Backend)
	}
	if c.Entities.MinNounLength <= 0 {
		return fmt.Errorf("entities.min_noun_length must be > 0")
	}
	if len(c.Entities.Labels) == 0 {
		return fmt.Errorf("entities.labels is empty")
	}
	for _, l := range c.Entities.Labels {
		if types.ParseLabel(l) == types.LabelOther {
			return fmt.Errorf("entities.labels: unknown label %q", l)
		}
	}
	return nil
}
