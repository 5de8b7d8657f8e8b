package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forPelevin/keysubs/internal/config"
	"github.com/forPelevin/keysubs/internal/logging"
	"github.com/forPelevin/keysubs/internal/pipeline"
)

const (
	entitiesTimeout  = 10 * time.Minute
	subtitlesTimeout = 3 * time.Hour
)

func runEntities(cmd *cobra.Command, text string) error {
	app, log, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if ner, _ := cmd.Flags().GetString("ner"); ner != "" {
		app.NER.Backend = ner
	}
	docPath, _ := cmd.Flags().GetString("doc")

	cfg := pipeline.EntitiesConfig{App: app, Text: text, DocPath: docPath, Log: log}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), entitiesTimeout)
	defer cancel()

	out, err := pipeline.RunEntities(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func runSubtitles(cmd *cobra.Command, input string) error {
	app, log, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		app.Paths.OutputDir = out
	}
	transcript, _ := cmd.Flags().GetString("transcript")

	cfg := pipeline.SubtitlesConfig{App: app, InputAudio: input, TranscriptPath: transcript, Log: log}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), subtitlesTimeout)
	defer cancel()

	path, err := pipeline.RunSubtitles(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// loadApp resolves config (defaults, file, env, then flags) and builds a
// logger tagged with a fresh run id.
func loadApp(cmd *cobra.Command) (config.Config, logrus.FieldLogger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("KEYSUBS_CONFIG")
	}
	app, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		app.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		app.Logging.Format = v
	}

	logger, err := logging.New(logging.Options{
		Level:  app.Logging.Level,
		Format: app.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	return app, logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"cmd":    cmd.Name(),
	}), nil
}
