package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/config"
	"github.com/nyralei/scribeq/internal/job"
	"github.com/nyralei/scribeq/internal/models"
	"github.com/nyralei/scribeq/internal/transcribe"
	"gorm.io/datatypes"
)

// Worker is the single background loop that claims pending transcription
// jobs, runs them through the transcriber, and writes back the outcome.
// Jobs are processed strictly serially; at most one is in flight at any
// instant.
type Worker struct {
	repo         job.JobRepoInterface
	transcriber  job.TranscriberInterface
	files        job.ArtifactStoreInterface
	pollInterval time.Duration

	mu        sync.Mutex
	running   bool
	currentID string
	quit      chan struct{}
	done      chan struct{}
}

func NewWorker(
	repo job.JobRepoInterface,
	transcriber job.TranscriberInterface,
	files job.ArtifactStoreInterface,
	pollInterval time.Duration,
) *Worker {
	return &Worker{
		repo:         repo,
		transcriber:  transcriber,
		files:        files,
		pollInterval: pollInterval,
	}
}

var _ job.WorkerStatusInterface = (*Worker)(nil)

// Start launches the worker loop on its own goroutine. Calling Start while
// the loop is already running is a logged no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		log.Println("[worker][WARN] Worker is already running")
		return
	}

	w.running = true
	w.quit = make(chan struct{})
	w.done = make(chan struct{})
	go w.run(w.quit, w.done)

	log.Println("[worker] Transcription worker started")
}

// Stop signals the loop to exit and waits up to timeout for the current
// iteration to finish. On timeout the in-flight job is abandoned and stays
// in processing; the loop goroutine still drains once the iteration ends.
// Returns false when the timeout elapsed first.
func (w *Worker) Stop(timeout time.Duration) bool {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return true
	}
	w.running = false
	close(w.quit)
	done := w.done
	w.mu.Unlock()

	select {
	case <-done:
		log.Println("[worker] Transcription worker stopped")
		return true
	case <-time.After(timeout):
		log.Println("[worker][WARN] Worker did not stop in time; abandoning in-flight job")
		return false
	}
}

// Status reports one of: stopped, idle, processing:<job id>.
func (w *Worker) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return "stopped"
	}
	if w.currentID != "" {
		return "processing:" + w.currentID
	}
	return "idle"
}

func (w *Worker) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	log.Println("[worker] Worker loop started")

	ctx := context.Background()
	for {
		select {
		case <-quit:
			log.Println("[worker] Worker loop ended")
			return
		default:
		}

		if w.iterate(ctx) {
			// A job was claimed and finished; check for the next one
			// immediately instead of sleeping.
			continue
		}

		select {
		case <-time.After(w.pollInterval):
		case <-quit:
			log.Println("[worker] Worker loop ended")
			return
		}
	}
}

// iterate performs one poll cycle and reports whether a job was claimed.
// No error or panic escapes it: one bad iteration must never take down
// the loop.
func (w *Worker) iterate(ctx context.Context) (claimed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[worker][ERROR] Recovered from panic: %v", r)
		}
	}()

	next, err := w.repo.ClaimNextPending(ctx)
	if err != nil {
		// Transient store failure; retry on the next poll.
		log.Printf("[worker][ERROR] Failed to claim next job: %v", err)
		return false
	}
	if next == nil {
		return false
	}

	w.process(ctx, next)
	return true
}

type transcriptPayload struct {
	Text     string               `json:"text"`
	Segments []transcribe.Segment `json:"segments"`
	Language string               `json:"language"`
}

func (w *Worker) process(ctx context.Context, j *models.TranscriptionJob) {
	w.setCurrent(j.ID)
	defer w.setCurrent("")

	log.Printf("[worker] Processing job %s", j.ID)
	started := time.Now()

	result, err := w.transcriber.Transcribe(ctx, j)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		w.markFailed(ctx, j.ID, j.AudioPath, err, elapsed)
		return
	}

	payload, err := json.Marshal(transcriptPayload{
		Text:     result.Text,
		Segments: result.Segments,
		Language: result.Language,
	})
	if err != nil {
		w.markFailed(ctx, j.ID, j.AudioPath, fmt.Errorf("encode transcript: %w", err), elapsed)
		return
	}

	now := time.Now().UTC()
	j.Status = string(config.JobStatusCompleted)
	j.Transcript = datatypes.JSON(payload)
	j.Duration = &result.Duration
	j.ProcessingTime = &elapsed
	j.CompletedAt = &now

	if err := w.repo.Update(ctx, j); err != nil {
		w.markFailed(ctx, j.ID, j.AudioPath, fmt.Errorf("write result: %w", err), elapsed)
		return
	}

	log.Printf("[worker] Job %s completed in %.2fs", j.ID, elapsed)
	w.files.Delete(j.AudioPath)
}

// markFailed transitions a job to failed with the captured error message.
// The record is re-fetched first: it may have been deleted externally while
// the transcription ran. The artifact is released regardless of what the
// store says.
func (w *Worker) markFailed(ctx context.Context, id, audioPath string, cause error, elapsed float64) {
	log.Printf("[worker][ERROR] Job %s failed: %v", id, cause)

	defer w.files.Delete(audioPath)

	j, err := w.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("[worker][WARN] Job %s was deleted while processing", id)
		} else {
			log.Printf("[worker][ERROR] Failed to load job %s for failure update: %v", id, err)
		}
		return
	}

	now := time.Now().UTC()
	j.Status = string(config.JobStatusFailed)
	j.ErrorMessage = cause.Error()
	j.ProcessingTime = &elapsed
	j.CompletedAt = &now

	if err := w.repo.Update(ctx, j); err != nil {
		log.Printf("[worker][ERROR] Failed to mark job %s as failed: %v", id, err)
	}
}

func (w *Worker) setCurrent(id string) {
	w.mu.Lock()
	w.currentID = id
	w.mu.Unlock()
}
