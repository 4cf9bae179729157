package job

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/config"
	"github.com/nyralei/scribeq/internal/dto"
	"github.com/nyralei/scribeq/internal/models"
)

type JobService struct {
	repo  JobRepoInterface
	files ArtifactStoreInterface
}

func NewJobService(repo JobRepoInterface, files ArtifactStoreInterface) *JobService {
	return &JobService{repo: repo, files: files}
}

var _ JobServiceInterface = (*JobService)(nil)

// CreateJob persists the uploaded audio bytes to a fresh artifact path and
// inserts a pending job record carrying the transcription configuration.
// The record id and artifact name share one generated uuid.
func (s *JobService) CreateJob(
	ctx context.Context,
	req *dto.JobCreateDTO,
	filename string,
	contents []byte,
) (*dto.JobResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request canceled or timed out")
	}

	if len(contents) == 0 {
		return nil, common.Errf(http.StatusBadRequest, "audio file is empty")
	}

	if req.MinSpeakers != nil && req.MaxSpeakers != nil && *req.MinSpeakers > *req.MaxSpeakers {
		return nil, common.NewAPIError(
			http.StatusBadRequest,
			"min_speakers must not exceed max_speakers",
			map[string]any{
				"min_speakers": *req.MinSpeakers,
				"max_speakers": *req.MaxSpeakers,
			},
		)
	}

	id := uuid.NewString()

	audioPath, err := s.files.SaveUpload(id, filename, contents)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to save audio file")
	}

	model := req.Model
	if model == "" {
		model = config.DefaultModel
	}
	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = config.DefaultChunkSize
	}
	vadOnset := config.DefaultVADOnset
	if req.VADOnset != nil {
		vadOnset = *req.VADOnset
	}
	vadOffset := config.DefaultVADOffset
	if req.VADOffset != nil {
		vadOffset = *req.VADOffset
	}

	job := models.TranscriptionJob{
		ID:               id,
		Status:           string(config.JobStatusPending),
		AudioPath:        audioPath,
		OriginalFilename: filename,
		Model:            model,
		Language:         req.Language,
		Diarize:          req.Diarize,
		MinSpeakers:      req.MinSpeakers,
		MaxSpeakers:      req.MaxSpeakers,
		ChunkSize:        chunkSize,
		VADOnset:         vadOnset,
		VADOffset:        vadOffset,
	}

	if err := s.repo.Create(ctx, &job); err != nil {
		// The record never existed, so the artifact has no owner.
		s.files.Delete(audioPath)

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, common.Errf(http.StatusRequestTimeout, "request was canceled")
		default:
			return nil, common.Errf(http.StatusInternalServerError, "failed to add job to database")
		}
	}

	log.Printf("[jobs] Created job: %s", job.ID)
	resp := toResponse(&job)
	return &resp, nil
}

// GetJobByID retrieves a job by its id and maps repository errors to API
// errors (not found, timeout, or internal failure).
func (s *JobService) GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errf(http.StatusNotFound, "job not found: %s", id)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to get job")
	}

	resp := toResponse(job)
	return &resp, nil
}

// ListJobs returns one page of jobs ordered by creation time descending.
// Page and limit are clamped here, not in the repository.
func (s *JobService) ListJobs(ctx context.Context, page, limit int, status string) (*dto.JobListResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if status != "" && !slices.Contains(config.AllowedStatuses, status) {
		return nil, common.NewAPIError(
			http.StatusBadRequest,
			"invalid status filter",
			map[string]any{
				"provided": status,
				"allowed":  config.AllowedStatuses,
			},
		)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultPageLimit
	}
	if limit > config.MaxPageLimit {
		limit = config.MaxPageLimit
	}

	jobs, total, err := s.repo.List(ctx, page, limit, status)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to list jobs")
	}

	resp := dto.JobListResponseDTO{
		Jobs:  make([]dto.JobResponseDTO, len(jobs)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range jobs {
		resp.Jobs[i] = toResponse(&jobs[i])
	}

	return &resp, nil
}

// DeleteJob removes the record and, if still present, its audio artifact.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errf(http.StatusNotFound, "job not found: %s", id)
		}
		return common.Errf(http.StatusInternalServerError, "failed to get job")
	}

	s.files.Delete(job.AudioPath)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errf(http.StatusNotFound, "job not found: %s", id)
		}
		return common.Errf(http.StatusInternalServerError, "failed to delete job")
	}

	log.Printf("[jobs] Deleted job: %s", id)
	return nil
}

// toResponse flattens the stored transcript JSON into the wire shape.
func toResponse(job *models.TranscriptionJob) dto.JobResponseDTO {
	resp := dto.JobResponseDTO{
		ID:               job.ID,
		Status:           job.Status,
		OriginalFilename: job.OriginalFilename,
		Model:            job.Model,
		Language:         job.Language,
		Diarize:          job.Diarize,
		MinSpeakers:      job.MinSpeakers,
		MaxSpeakers:      job.MaxSpeakers,
		ChunkSize:        job.ChunkSize,
		Duration:         job.Duration,
		ProcessingTime:   job.ProcessingTime,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
		CompletedAt:      job.CompletedAt,
	}

	if job.ErrorMessage != "" {
		msg := job.ErrorMessage
		resp.ErrorMessage = &msg
	}

	if len(job.Transcript) > 0 {
		var payload struct {
			Text     string                  `json:"text"`
			Segments []dto.TranscriptSegment `json:"segments"`
			Language string                  `json:"language"`
		}
		if err := json.Unmarshal(job.Transcript, &payload); err != nil {
			log.Printf("[jobs][WARN] Failed to parse transcript JSON for job %s: %v", job.ID, err)
		} else {
			resp.Text = &payload.Text
			resp.DetectedLanguage = &payload.Language
			resp.Segments = payload.Segments
		}
	}

	return resp
}
