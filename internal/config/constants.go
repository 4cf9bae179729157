package config

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

var AllowedStatuses = []string{
	string(JobStatusPending),
	string(JobStatusProcessing),
	string(JobStatusCompleted),
	string(JobStatusFailed),
}

// Transcription request defaults, matching the whisperx server defaults.
const (
	DefaultModel     = "small"
	DefaultChunkSize = 15
	DefaultVADOnset  = 0.5
	DefaultVADOffset = 0.363
)

// Listing defaults and bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)
