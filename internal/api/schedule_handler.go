package api

import (
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the active program and the workout log.
type ScheduleHandler struct {
	tracker service.ProgramTracker
	log     *logger.Logger
}

func NewScheduleHandler(tracker service.ProgramTracker, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{tracker: tracker, log: log}
}

// LogWorkoutRequest is validated by the tracker so that field errors are
// reported the same way for every client.
type LogWorkoutRequest struct {
	ProgramID       string     `json:"programId"`
	DayNumber       int        `json:"dayNumber"`
	CompletedAt     *time.Time `json:"completedAt"` // RFC 3339, defaults to now
	DurationMinutes *int       `json:"durationMinutes"`
	Notes           *string    `json:"notes"`
}

type historyQuery struct {
	ProgramID string `form:"programId"`
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
}

// StartProgram godoc
// @Summary Start a program
// @Description Makes the program the caller's single active program.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Success 200 {object} domain.Enrollment
// @Failure 404 {object} gin.H "Program not found"
// @Failure 409 {object} gin.H "Concurrent update, retryable"
// @Router /schedule/start/{programId} [post]
func (h *ScheduleHandler) StartProgram(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	enrollment, err := h.tracker.StartProgram(c.Request.Context(), userID, c.Param("programId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

// GetActiveProgram godoc
// @Summary Active program
// @Description The full definition of the active program, or null.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Program
// @Router /schedule/active [get]
func (h *ScheduleHandler) GetActiveProgram(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	program, err := h.tracker.GetActiveProgram(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// GetScheduleStatus godoc
// @Summary Progress on the active program
// @Description Week, weekday and completed workouts, or null without an active program.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ScheduleStatus
// @Router /schedule/status [get]
func (h *ScheduleHandler) GetScheduleStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	status, err := h.tracker.GetScheduleStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// LogWorkout godoc
// @Summary Log a workout
// @Description Records a workout; a second log on the same calendar day updates the first.
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body LogWorkoutRequest true "Workout"
// @Success 200 {object} domain.WorkoutLogEntry
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 409 {object} gin.H "Concurrent update, retryable"
// @Router /schedule/log [post]
func (h *ScheduleHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.tracker.LogWorkout(c.Request.Context(), userID, service.LogWorkoutInput{
		ProgramID:       req.ProgramID,
		DayNumber:       req.DayNumber,
		CompletedAt:     req.CompletedAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetWorkoutHistory godoc
// @Summary Workout history
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param programId query string false "Only this program"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.WorkoutLogEntry
// @Router /schedule/history [get]
func (h *ScheduleHandler) GetWorkoutHistory(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	history, err := h.tracker.GetWorkoutHistory(c.Request.Context(), userID, service.HistoryQuery{
		ProgramID: q.ProgramID,
		Skip:      q.Skip,
		Limit:     q.Limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CompleteProgram godoc
// @Summary Complete a started program
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Success 200 {object} domain.Enrollment
// @Failure 404 {object} gin.H "Never started"
// @Failure 409 {object} gin.H "Program is not started"
// @Router /schedule/complete/{programId} [post]
func (h *ScheduleHandler) CompleteProgram(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	enrollment, err := h.tracker.CompleteProgram(c.Request.Context(), userID, c.Param("programId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

// requireUserID aborts with 401 when the token carried no user.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", false
	}
	return userID, true
}
