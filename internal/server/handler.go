package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/lessonforge/internal/job"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
	"github.com/at-ishikawa/lessonforge/internal/pipeline"
)

const (
	defaultJobLimit = 20
	maxJobLimit     = 100
)

// Generator starts generation jobs and reports their state.
type Generator interface {
	StartGeneration(ctx context.Context, req pipeline.Request) (string, error)
	GetStatus(ctx context.Context, jobID string) (job.Job, error)
	ListJobs(ctx context.Context, limit int) ([]job.Job, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type generateResponse struct {
	JobID string `json:"job_id"`
}

type jobResponse struct {
	JobID        string     `json:"job_id"`
	Status       job.Status `json:"status"`
	Progress     int        `json:"progress"`
	CurrentStep  string     `json:"current_step"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ResultID     string     `json:"result_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func newJobResponse(j job.Job) jobResponse {
	return jobResponse{
		JobID:        j.ID,
		Status:       j.Status,
		Progress:     j.Progress,
		CurrentStep:  j.CurrentStep,
		ErrorMessage: j.ErrorMessage,
		ResultID:     j.ResultID,
		CreatedAt:    j.CreatedAt,
		CompletedAt:  j.CompletedAt,
	}
}

type lessonResponse struct {
	lesson.Lesson
	TotalPoints int  `json:"total_points"`
	HighQuality bool `json:"high_quality"`
}

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidRequest), errors.Is(err, job.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, job.ErrNotFound), errors.Is(err, lesson.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type JobHandler struct {
	generator Generator
}

func NewJobHandler(generator Generator) *JobHandler {
	return &JobHandler{generator: generator}
}

func (h *JobHandler) Get(c echo.Context) error {
	j, err := h.generator.GetStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, newJobResponse(j))
}

func (h *JobHandler) List(c echo.Context) error {
	limit := defaultJobLimit
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			return errorJSON(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
		}
		limit = min(parsed, maxJobLimit)
	}

	jobs, err := h.generator.ListJobs(c.Request().Context(), limit)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	res := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, newJobResponse(j))
	}
	return c.JSON(http.StatusOK, res)
}

type LessonHandler struct {
	generator Generator
	lessons   lesson.Repository
}

func NewLessonHandler(generator Generator, lessons lesson.Repository) *LessonHandler {
	return &LessonHandler{generator: generator, lessons: lessons}
}

// Generate accepts the request and answers 202 with the job id; the lesson is built in the background.
func (h *LessonHandler) Generate(c echo.Context) error {
	var req pipeline.Request
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	jobID, err := h.generator.StartGeneration(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusAccepted, generateResponse{JobID: jobID})
}

func (h *LessonHandler) Get(c echo.Context) error {
	l, err := h.lessons.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, lessonResponse{
		Lesson:      l,
		TotalPoints: l.TotalPoints(),
		HighQuality: l.IsHighQuality(),
	})
}
