package handler

import (
	"net/http"

	"woodtrack/internal/apierror"
	"woodtrack/internal/dto"
	"woodtrack/internal/repository"
	"woodtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type StagesHandler struct{ repo repository.StageRepository }

func NewStagesHandler(repo repository.StageRepository) *StagesHandler {
	return &StagesHandler{repo: repo}
}

// List returns the active stage catalog in canonical order, for the
// customer-facing "how your furniture is made" page.
func (h *StagesHandler) List(c *gin.Context) {
	stages, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list stages"))
		return
	}

	resp := make([]dto.StageResponse, 0, len(stages))
	for _, s := range stages {
		resp = append(resp, dto.StageResponse{
			Name:              s.Name,
			Description:       s.Description,
			OrderSequence:     s.OrderSequence,
			DurationHours:     s.DurationHours,
			EstimatedDuration: service.FormatDuration(float64(s.DurationHours) * 60),
		})
	}
	c.JSON(http.StatusOK, resp)
}
