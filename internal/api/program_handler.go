package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves the program catalog.
type ProgramHandler struct {
	programService service.ProgramService
	log            *logger.Logger
}

func NewProgramHandler(programService service.ProgramService, log *logger.Logger) *ProgramHandler {
	return &ProgramHandler{programService: programService, log: log}
}

// --- DTOs ---

// ProgramDetailRequest is one exercise of a program day.
type ProgramDetailRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	DayNumber  int    `json:"dayNumber" binding:"required,min=1"`
	Sets       int    `json:"sets" binding:"required,min=1"`
	Reps       int    `json:"reps" binding:"required,min=1"`
	RestTime   *int   `json:"restTime" binding:"omitempty,min=0"` // seconds
	Order      int    `json:"order"`
	Notes      string `json:"notes"`
}

// CreateProgramRequest defines the expected JSON for creating a program.
type CreateProgramRequest struct {
	Title              string                 `json:"title" binding:"required"`
	Description        string                 `json:"description"`
	IsPublic           bool                   `json:"isPublic"`
	Difficulty         string                 `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	TargetMuscleGroups string                 `json:"targetMuscleGroups"`
	DurationWeeks      *int                   `json:"durationWeeks" binding:"omitempty,min=1"`
	ImageURL           string                 `json:"imageUrl" binding:"omitempty,url"`
	Details            []ProgramDetailRequest `json:"details" binding:"dive"`
}

// UpdateProgramRequest is a partial edit; omitted fields are left unchanged.
type UpdateProgramRequest struct {
	Title              *string                `json:"title" binding:"omitempty,min=1"`
	Description        *string                `json:"description"`
	IsPublic           *bool                  `json:"isPublic"`
	Difficulty         *string                `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	TargetMuscleGroups *string                `json:"targetMuscleGroups"`
	DurationWeeks      *int                   `json:"durationWeeks" binding:"omitempty,min=1"`
	ImageURL           *string                `json:"imageUrl" binding:"omitempty,url"`
	Details            []ProgramDetailRequest `json:"details" binding:"omitempty,dive"`
}

type listProgramsQuery struct {
	Difficulty  string `form:"difficulty"`
	MuscleGroup string `form:"muscleGroup"`
	Skip        int    `form:"skip"`
	Limit       int    `form:"limit"`
}

type CoverUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func toProgramDetails(in []ProgramDetailRequest) []domain.ProgramDetail {
	if in == nil {
		return nil
	}
	details := make([]domain.ProgramDetail, len(in))
	for i, d := range in {
		details[i] = domain.ProgramDetail{
			ExerciseID: d.ExerciseID,
			DayNumber:  d.DayNumber,
			Sets:       d.Sets,
			Reps:       d.Reps,
			RestTime:   d.RestTime,
			Order:      d.Order,
			Notes:      d.Notes,
		}
	}
	return details
}

func (r UpdateProgramRequest) toInput() service.UpdateProgramInput {
	return service.UpdateProgramInput{
		Title:              r.Title,
		Description:        r.Description,
		IsPublic:           r.IsPublic,
		Difficulty:         r.Difficulty,
		TargetMuscleGroups: r.TargetMuscleGroups,
		DurationWeeks:      r.DurationWeeks,
		ImageURL:           r.ImageURL,
		Details:            toProgramDetails(r.Details),
	}
}

func (r CreateProgramRequest) toInput() service.CreateProgramInput {
	details := toProgramDetails(r.Details)
	if details == nil {
		details = []domain.ProgramDetail{}
	}
	return service.CreateProgramInput{
		Title:              r.Title,
		Description:        r.Description,
		IsPublic:           r.IsPublic,
		Difficulty:         r.Difficulty,
		TargetMuscleGroups: r.TargetMuscleGroups,
		DurationWeeks:      r.DurationWeeks,
		ImageURL:           r.ImageURL,
		Details:            details,
	}
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a training program
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program definition"
// @Success 201 {object} domain.Program
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), viewer, req.toInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// ListPrograms godoc
// @Summary List programs
// @Description Public programs plus the caller's own, newest first.
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Param muscleGroup query string false "Muscle group substring"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Program
// @Router /programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	var q listProgramsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), viewer, service.ProgramQuery{
		Difficulty:  q.Difficulty,
		MuscleGroup: q.MuscleGroup,
		Skip:        q.Skip,
		Limit:       q.Limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// ListAuthoredPrograms godoc
// @Summary List the caller's own programs
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Program
// @Router /programs/authored [get]
func (h *ProgramHandler) ListAuthoredPrograms(c *gin.Context) {
	var q listProgramsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	programs, err := h.programService.ListAuthoredPrograms(c.Request.Context(), viewer, service.ProgramQuery{
		Difficulty:  q.Difficulty,
		MuscleGroup: q.MuscleGroup,
		Skip:        q.Skip,
		Limit:       q.Limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// UpdateProgram godoc
// @Summary Edit a program
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Param program body UpdateProgramRequest true "Fields to change"
// @Success 200 {object} domain.Program
// @Failure 403 {object} gin.H "Not the author or an admin"
// @Failure 404 {object} gin.H "Program not found"
// @Router /programs/{programId} [patch]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), viewer, c.Param("programId"), req.toInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// DeleteProgram godoc
// @Summary Delete a program
// @Description Enrollments and workout history that reference the program are kept.
// @Tags Programs
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Success 204
// @Failure 403 {object} gin.H "Not the author or an admin"
// @Failure 404 {object} gin.H "Program not found"
// @Router /programs/{programId} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), viewer, c.Param("programId")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProgram godoc
// @Summary Get a program
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Success 200 {object} domain.Program
// @Failure 404 {object} gin.H "Program not found"
// @Router /programs/{programId} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), viewer, c.Param("programId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// RequestCoverUpload godoc
// @Summary Presigned cover image upload
// @Description Returns a URL the client PUTs the image to, with the same Content-Type.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Param request body CoverUploadRequest true "Image content type"
// @Success 200 {object} service.CoverUpload
// @Failure 503 {object} gin.H "Object storage disabled"
// @Router /programs/{programId}/cover-upload-url [post]
func (h *ProgramHandler) RequestCoverUpload(c *gin.Context) {
	var req CoverUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	viewer, err := viewerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	upload, err := h.programService.RequestCoverUpload(c.Request.Context(), viewer, c.Param("programId"), req.ContentType)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
