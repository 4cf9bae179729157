package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/models"
)

// Result is the normalized outcome of one transcription invocation.
type Result struct {
	Text     string
	Language string
	Segments []Segment
	Duration float64
}

// Adapter translates a claimed job into exactly one engine call and
// normalizes the response shape.
type Adapter struct {
	engine Engine
}

func NewAdapter(engine Engine) *Adapter {
	return &Adapter{engine: engine}
}

// Transcribe runs the engine against the job's audio artifact. It verifies
// the artifact is readable first, so a missing or unreadable file surfaces
// as an ArtifactError rather than an opaque engine failure.
func (a *Adapter) Transcribe(ctx context.Context, job *models.TranscriptionJob) (*Result, error) {
	if _, err := os.Stat(job.AudioPath); err != nil {
		return nil, &common.ArtifactError{Path: job.AudioPath, Err: err}
	}

	raw, err := a.engine.Transcribe(ctx, Request{
		AudioPath:   job.AudioPath,
		Model:       job.Model,
		Language:    job.Language,
		Diarize:     job.Diarize,
		MinSpeakers: job.MinSpeakers,
		MaxSpeakers: job.MaxSpeakers,
		ChunkSize:   job.ChunkSize,
		VADOnset:    job.VADOnset,
		VADOffset:   job.VADOffset,
	})
	if err != nil {
		return nil, &common.TranscriptionError{Err: err}
	}

	segments, err := normalizeSegments(raw.Segments)
	if err != nil {
		return nil, &common.TranscriptionError{Err: err}
	}

	return &Result{
		Text:     raw.Text,
		Language: raw.Language,
		Segments: segments,
		Duration: raw.Duration,
	}, nil
}

// normalizeSegments accepts either a flat segment list or the list nested
// one level deeper under a "segments" key, and returns the flat form.
func normalizeSegments(raw json.RawMessage) ([]Segment, error) {
	if len(raw) == 0 {
		return []Segment{}, nil
	}

	var flat []Segment
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var nested struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("unrecognized segments shape: %w", err)
	}
	if nested.Segments == nil {
		nested.Segments = []Segment{}
	}
	return nested.Segments, nil
}
