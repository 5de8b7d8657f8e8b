package ffmpeg

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractArgs(t *testing.T) {
	args := extractArgs("in.mp3", "out.wav")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-i in.mp3", "-ac 1", "-ar 16000", "-f wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args: %v", want, args)
		}
	}
	if args[len(args)-1] != "out.wav" {
		t.Fatalf("output must be last arg, got %v", args)
	}
}

func TestExtractAudio_MissingBinary(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	err := a.ExtractAudioMono16k(context.Background(), "in.mp3", "out.wav")
	if err == nil || !strings.Contains(err.Error(), "ffmpeg extract audio:") {
		t.Fatalf("expected wrapped ffmpeg error, got %v", err)
	}
}
