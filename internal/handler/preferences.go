package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/riaz37/job-finder-sub001/internal/service"
)

type PreferencesHandler struct {
	svc        *service.PreferencesService
	automation *service.AutomationService
}

func NewPreferencesHandler(svc *service.PreferencesService, automation *service.AutomationService) *PreferencesHandler {
	return &PreferencesHandler{svc: svc, automation: automation}
}

// Get godoc
// @Summary Get preferences
// @Description Returns defaults when the user never saved preferences.
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserPreferences
// @Router /api/v1/preferences [get]
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), GetAuthUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// Update godoc
// @Summary Replace preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdatePreferencesRequest true "Full preference document"
// @Success 200 {object} model.UserPreferences
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/preferences [put]
func (h *PreferencesHandler) Update(c *gin.Context) {
	var req model.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	prefs, validation, err := h.svc.Update(c.Request.Context(), GetAuthUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs, "validation": validation})
}

// ValidateSettings godoc
// @Summary Validate automation settings without saving
// @Tags automation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AutomationSettings true "Settings to check"
// @Success 200 {object} model.SettingsValidation
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/automation/validate [post]
func (h *PreferencesHandler) ValidateSettings(c *gin.Context) {
	var settings model.AutomationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}
	c.JSON(http.StatusOK, h.automation.ValidateSettings(settings))
}

// Schedule godoc
// @Summary Projected application schedule
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ScheduleEstimate
// @Router /api/v1/automation/schedule [get]
func (h *PreferencesHandler) Schedule(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), GetAuthUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.automation.Schedule(prefs.AutomationSettings, time.Now().UTC()))
}

// Summary godoc
// @Summary Automation overview
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AutomationSummary
// @Router /api/v1/automation/summary [get]
func (h *PreferencesHandler) Summary(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), GetAuthUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.automation.Summary(*prefs))
}

// Recommendations godoc
// @Summary Tuning suggestions for the current preferences
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]string
// @Router /api/v1/automation/recommendations [get]
func (h *PreferencesHandler) Recommendations(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), GetAuthUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	recs := h.automation.Recommendations(*prefs)
	if recs == nil {
		recs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
