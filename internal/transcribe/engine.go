package transcribe

import (
	"context"
	"encoding/json"
)

// Request is the full set of inputs for one engine invocation.
type Request struct {
	AudioPath   string
	Model       string
	Language    *string
	Diarize     bool
	MinSpeakers *int
	MaxSpeakers *int
	ChunkSize   int
	VADOnset    float64
	VADOffset   float64
}

// Segment is a single span of transcribed speech.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker *string `json:"speaker,omitempty"`
}

// RawResult is the engine's response before normalization. Some engine
// versions wrap the segment list in an extra object, so Segments is kept
// raw until the adapter flattens it.
type RawResult struct {
	Text     string          `json:"text"`
	Language string          `json:"language"`
	Duration float64         `json:"duration"`
	Segments json.RawMessage `json:"segments"`
}

// Engine is the external transcription collaborator. Implementations make
// exactly one attempt per call; retry policy belongs to the caller.
type Engine interface {
	Transcribe(ctx context.Context, req Request) (*RawResult, error)
}
