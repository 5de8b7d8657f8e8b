package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/forPelevin/keysubs/internal/types"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestDocument(t *testing.T) {
	p := writeFixture(t, "doc.json", `{
	  "text": "Acme hired Ann in March.",
	  "spans": [{"text":"Acme","label":"org"},{"text":"March","label":"DATE"}],
	  "tokens": [{"text":"Acme","pos":"PROPN"},{"text":"hired","pos":"VERB"}]
	}`)
	d := NewDocument(p)

	spans, err := d.Entities(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 || spans[0].Label != types.LabelOrg || spans[1].Label != types.LabelOther {
		t.Fatalf("unexpected spans: %+v", spans)
	}

	toks, err := d.Tokens(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[1].POS != types.POSVerb {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestTranscript(t *testing.T) {
	p := writeFixture(t, "tr.json", `{"segments":[{"start":0,"end":1,"words":[{"start":0,"end":0.5,"word":"hi"}]}]}`)
	tr, err := NewTranscript(p).Transcribe(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Segments) != 1 || tr.Segments[0].Words[0].Word != "hi" {
		t.Fatalf("unexpected transcript: %+v", tr)
	}
}

func TestMissingAndMalformed(t *testing.T) {
	if _, err := NewDocument(filepath.Join(t.TempDir(), "nope.json")).Entities(context.Background(), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
	p := writeFixture(t, "bad.json", "{")
	if _, err := NewTranscript(p).Transcribe(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}
