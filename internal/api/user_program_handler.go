package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserProgramHandler lists and bookmarks the caller's programs.
type UserProgramHandler struct {
	tracker service.ProgramTracker
	log     *logger.Logger
}

func NewUserProgramHandler(tracker service.ProgramTracker, log *logger.Logger) *UserProgramHandler {
	return &UserProgramHandler{tracker: tracker, log: log}
}

// ListMyPrograms godoc
// @Summary My programs
// @Description Started, saved and completed programs, most recent interaction first.
// @Tags MyPrograms
// @Produce json
// @Security BearerAuth
// @Param status query string false "started, saved or completed"
// @Success 200 {array} service.MyProgram
// @Failure 400 {object} gin.H "Unknown status"
// @Router /my-programs [get]
func (h *UserProgramHandler) ListMyPrograms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var status *domain.ProgramStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.ProgramStatus(raw)
		status = &s
	}

	programs, err := h.tracker.ListMyPrograms(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// ToggleSaved godoc
// @Summary Save or unsave a program
// @Description Not idempotent: calling it twice on a fresh bookmark removes it again.
// @Tags MyPrograms
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Success 200 {object} service.SaveToggleResult
// @Failure 404 {object} gin.H "Program not found"
// @Router /my-programs/save/{programId} [post]
func (h *UserProgramHandler) ToggleSaved(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	result, err := h.tracker.ToggleSaved(c.Request.Context(), userID, c.Param("programId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
