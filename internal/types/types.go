package types

import "strings"

// Transcript is the whisper-style ASR output: utterances, each holding
// word-level timings.
type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Cue is one numbered caption record of a SubRip file.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

type Label string

const (
	LabelOrg     Label = "ORG"
	LabelPerson  Label = "PERSON"
	LabelGPE     Label = "GPE"
	LabelProduct Label = "PRODUCT"
	LabelEvent   Label = "EVENT"
	LabelOther   Label = "OTHER"
)

// ParseLabel maps a backend label onto the known set. Anything unknown
// (DATE, CARDINAL, NORP, ...) becomes LabelOther.
func ParseLabel(s string) Label {
	switch l := Label(strings.ToUpper(strings.TrimSpace(s))); l {
	case LabelOrg, LabelPerson, LabelGPE, LabelProduct, LabelEvent:
		return l
	default:
		return LabelOther
	}
}

// POS is a Universal Dependencies part-of-speech tag.
type POS string

const (
	POSNoun  POS = "NOUN"
	POSPropn POS = "PROPN"
	POSVerb  POS = "VERB"
	POSDet   POS = "DET"
)

type Span struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

type Token struct {
	Text string `json:"text"`
	POS  POS    `json:"pos"`
}

// Document is a text already run through NER, in document order.
type Document struct {
	Text   string  `json:"text,omitempty"`
	Spans  []Span  `json:"spans"`
	Tokens []Token `json:"tokens"`
}
