package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/riaz37/job-finder-sub001/internal/service"
)

type ResumeHandler struct {
	svc *service.ResumeService
}

func NewResumeHandler(svc *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// Create godoc
// @Summary Add a resume
// @Tags resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateResumeRequest true "Resume metadata"
// @Success 201 {object} model.Resume
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/resumes [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	var req model.CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	resume, err := h.svc.Create(c.Request.Context(), GetAuthUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// List godoc
// @Summary List own resumes
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Resume
// @Router /api/v1/resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.svc.List(c.Request.Context(), GetAuthUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// Get godoc
// @Summary Get a resume
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} model.Resume
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, err := h.svc.Get(c.Request.Context(), GetAuthUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// Update godoc
// @Summary Update a resume
// @Tags resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Param request body model.UpdateResumeRequest true "Fields to update"
// @Success 200 {object} model.Resume
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/resumes/{id} [put]
func (h *ResumeHandler) Update(c *gin.Context) {
	var req model.UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	resume, err := h.svc.Update(c.Request.Context(), GetAuthUserID(c), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// Delete godoc
// @Summary Delete a resume
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} model.StatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetAuthUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}

// MatchJobs godoc
// @Summary Match catalog jobs against a resume
// @Description Ranks jobs by embedding similarity to the resume.
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Param limit query int false "Max matches"
// @Success 200 {array} model.JobMatch
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/resumes/{id}/matches [get]
func (h *ResumeHandler) MatchJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	matches, err := h.svc.MatchJobs(c.Request.Context(), GetAuthUserID(c), c.Param("id"), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}
