package job

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/nyralei/scribeq/internal/dto"
	"github.com/nyralei/scribeq/internal/models"
	"github.com/nyralei/scribeq/internal/transcribe"
)

// JobRepoInterface defines the contract for job repository operations.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.TranscriptionJob) error
	// ClaimNextPending atomically transitions the oldest pending job to
	// processing and returns it. Returns nil when no pending job exists.
	ClaimNextPending(ctx context.Context) (*models.TranscriptionJob, error)
	Update(ctx context.Context, job *models.TranscriptionJob) error
	Get(ctx context.Context, id string) (*models.TranscriptionJob, error)
	List(ctx context.Context, page, limit int, status string) ([]models.TranscriptionJob, int64, error)
	Delete(ctx context.Context, id string) error
}

// ArtifactStoreInterface owns the uploaded audio files referenced by jobs.
type ArtifactStoreInterface interface {
	SaveUpload(jobID, originalFilename string, contents []byte) (string, error)
	Delete(path string)
}

// TranscriberInterface is the boundary the worker invokes once per claimed job.
type TranscriberInterface interface {
	Transcribe(ctx context.Context, job *models.TranscriptionJob) (*transcribe.Result, error)
}

// WorkerStatusInterface exposes the background worker state for health reporting.
type WorkerStatusInterface interface {
	Status() string
}

// JobServiceInterface defines the contract for job business logic operations.
type JobServiceInterface interface {
	CreateJob(ctx context.Context, req *dto.JobCreateDTO, filename string, contents []byte) (*dto.JobResponseDTO, error)
	GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error)
	ListJobs(ctx context.Context, page, limit int, status string) (*dto.JobListResponseDTO, error)
	DeleteJob(ctx context.Context, id string) error
}

// JobHandlerInterface defines the contract for HTTP request handlers.
type JobHandlerInterface interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Delete(c *gin.Context)
	WorkerStatus(c *gin.Context)
}
