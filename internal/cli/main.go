package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keysubs",
		Short:         "Pick key entities from text and build word-level SRT subtitles from audio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Config file (default keysubs.toml if present, or $KEYSUBS_CONFIG)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "Log format: text or json")

	root.AddCommand(newEntitiesCmd(), newSubtitlesCmd())
	return root
}

func newEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities [text]",
		Short: "Print the salient entities of a text as a JSON array",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return runEntities(cmd, text)
		},
	}
	cmd.Flags().String("doc", "", "Pre-analyzed document JSON (spans and tokens) instead of running NER")
	cmd.Flags().String("ner", "", "NER backend: spacy or openrouter")
	return cmd
}

func newSubtitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtitles <audio>",
		Short: "Transcribe audio into a word-level SRT file and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubtitles(cmd, args[0])
		},
	}
	cmd.Flags().String("out", "", "Output directory (default subtitles)")
	cmd.Flags().String("transcript", "", "Transcript JSON to use instead of running ffmpeg and whisper.cpp")
	return cmd
}
