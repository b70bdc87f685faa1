package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/riaz37/job-finder-sub001/internal/service"
)

type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// Create godoc
// @Summary Add a job to the catalog
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateJobRequest true "Job posting"
// @Success 201 {object} model.Job
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req model.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	job, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Get godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// List godoc
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param title query string false "Title filter (substring)"
// @Param location query string false "Location filter (substring)"
// @Param remote query bool false "Remote only"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Job
// @Router /api/v1/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := model.JobFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
	}
	if raw := c.Query("remote"); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid remote filter"})
			return
		}
		filter.Remote = &remote
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	jobs, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
