package dto

import (
	"time"
)

// JobCreateDTO carries the multipart form fields that accompany an uploaded
// audio file. The file itself is read by the handler.
type JobCreateDTO struct {
	Model       string   `form:"model"`
	Language    *string  `form:"language"`
	Diarize     bool     `form:"diarize"`
	MinSpeakers *int     `form:"min_speakers" validate:"omitempty,gte=1"`
	MaxSpeakers *int     `form:"max_speakers" validate:"omitempty,gte=1"`
	ChunkSize   int      `form:"chunk_size" validate:"omitempty,gte=1,lte=60"`
	VADOnset    *float64 `form:"vad_onset" validate:"omitempty,gte=0,lte=1"`
	VADOffset   *float64 `form:"vad_offset" validate:"omitempty,gte=0,lte=1"`
}

// TranscriptSegment is a single span of transcribed speech.
type TranscriptSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker *string `json:"speaker,omitempty"`
}

// JobResponseDTO is the wire shape for a job. The stored transcript JSON is
// flattened into text, segments and detected_language.
type JobResponseDTO struct {
	ID               string  `json:"id"`
	Status           string  `json:"status"`
	OriginalFilename string  `json:"original_filename,omitempty"`
	Model            string  `json:"model"`
	Language         *string `json:"language,omitempty"`
	Diarize          bool    `json:"diarize"`
	MinSpeakers      *int    `json:"min_speakers,omitempty"`
	MaxSpeakers      *int    `json:"max_speakers,omitempty"`
	ChunkSize        int     `json:"chunk_size"`

	Text             *string             `json:"text,omitempty"`
	Segments         []TranscriptSegment `json:"segments,omitempty"`
	DetectedLanguage *string             `json:"detected_language,omitempty"`

	Duration       *float64 `json:"duration,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
	ErrorMessage   *string  `json:"error_message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JobListResponseDTO is the paginated listing envelope.
type JobListResponseDTO struct {
	Jobs  []JobResponseDTO `json:"jobs"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// WorkerStatusDTO reports the background worker state for health checks.
type WorkerStatusDTO struct {
	Status string `json:"status"`
}
