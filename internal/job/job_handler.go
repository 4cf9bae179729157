package job

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/config"
	"github.com/nyralei/scribeq/internal/dto"
	"github.com/nyralei/scribeq/middleware"
)

type JobHandler struct {
	service JobServiceInterface
	worker  WorkerStatusInterface
}

func NewJobHandler(s JobServiceInterface, w WorkerStatusInterface) *JobHandler {
	return &JobHandler{service: s, worker: w}
}

var _ JobHandlerInterface = (*JobHandler)(nil)

// Create handles multipart job submissions: the audio file plus form-encoded
// transcription options. Returns HTTP 201 with the pending job record.
func (h *JobHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "audio file is required"))
		c.Abort()
		return
	}

	var req dto.JobCreateDTO
	if !middleware.BindForm(c, &req) {
		c.Abort()
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "failed to open uploaded file"))
		c.Abort()
		return
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "failed to read uploaded file"))
		c.Abort()
		return
	}

	resp, err := h.service.CreateJob(c.Request.Context(), &req, fileHeader.Filename, contents)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles HTTP requests to fetch a job by its id.
func (h *JobHandler) Get(c *gin.Context) {
	resp, err := h.service.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles paginated job listing with an optional status filter.
func (h *JobHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "page must be a number"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.DefaultPageLimit)))
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "limit must be a number"))
		return
	}

	resp, err := h.service.ListJobs(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes a job and its residual artifact.
func (h *JobHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job " + id + " deleted"})
}

// WorkerStatus reports the background worker state for health checks.
func (h *JobHandler) WorkerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.WorkerStatusDTO{Status: h.worker.Status()})
}
