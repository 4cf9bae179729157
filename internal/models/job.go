package models

import (
	"time"

	"gorm.io/datatypes"
)

// TranscriptionJob is one transcription request plus its configuration,
// outcome, and lifecycle metadata. Exactly one row is persisted per
// submitted audio file.
type TranscriptionJob struct {
	ID     string `gorm:"type:varchar(36);primaryKey"`
	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Input artifact, owned by this job until a terminal state is reached.
	AudioPath        string `gorm:"type:text;not null"`
	OriginalFilename string `gorm:"type:text"`

	// Configuration, immutable after creation.
	Model       string  `gorm:"type:varchar(50);not null;default:'small'"`
	Language    *string `gorm:"type:varchar(10)"`
	Diarize     bool    `gorm:"not null;default:false"`
	MinSpeakers *int
	MaxSpeakers *int
	ChunkSize   int     `gorm:"not null;default:15"`
	VADOnset    float64 `gorm:"column:vad_onset;not null;default:0.5"`
	VADOffset   float64 `gorm:"column:vad_offset;not null;default:0.363"`

	// Outcome. Transcript is set only on completed, ErrorMessage only on failed.
	Transcript   datatypes.JSON `gorm:"type:jsonb"`
	ErrorMessage string         `gorm:"type:text"`

	// Metadata populated on completion.
	Duration       *float64
	ProcessingTime *float64

	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	CompletedAt *time.Time
}

func (TranscriptionJob) TableName() string {
	return "transcription_jobs"
}
