package enum

import "strings"

// Tone is the reply style requested by the caller. Only the constants below
// are recognized; any other label is kept verbatim.
type Tone string

const (
	ToneNeutral  Tone = ""
	ToneFormal   Tone = "formal"
	ToneFriendly Tone = "friendly"
	ToneConcise  Tone = "concise"
	ToneOther    Tone = "other"
)

func (t Tone) String() string {
	return string(t)
}

// ParseTone matches a raw label case-insensitively. Blank input maps to
// ToneNeutral and unknown labels to ToneOther. The label is not trimmed.
func ParseTone(raw string) Tone {
	if strings.TrimSpace(raw) == "" {
		return ToneNeutral
	}
	switch Tone(strings.ToLower(raw)) {
	case ToneFormal:
		return ToneFormal
	case ToneFriendly:
		return ToneFriendly
	case ToneConcise:
		return ToneConcise
	default:
		return ToneOther
	}
}
