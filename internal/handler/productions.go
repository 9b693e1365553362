package handler

import (
	"net/http"
	"time"

	"woodtrack/internal/apierror"
	"woodtrack/internal/dto"
	"woodtrack/internal/infra"
	"woodtrack/internal/model"
	"woodtrack/internal/repository"
	"woodtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductionsHandler struct {
	repo        repository.ProductionRepository
	reportsPath string
}

func NewProductionsHandler(repo repository.ProductionRepository, reportsPath string) *ProductionsHandler {
	return &ProductionsHandler{repo: repo, reportsPath: reportsPath}
}

// List returns a filtered, paginated production listing for the admin
// dashboard, with live progress per record.
func (h *ProductionsHandler) List(c *gin.Context) {
	var filter dto.ProductionFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	productions, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list productions"))
		return
	}

	resp := dto.ProductionListResponse{
		Productions: make([]dto.ProductionResponse, 0, len(productions)),
		Total:       total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	for i := range productions {
		resp.Productions = append(resp.Productions, productionToResponse(&productions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Progress returns the live percent complete without touching storage,
// for dashboards that want a number without a full sync.
func (h *ProductionsHandler) Progress(c *gin.Context) {
	p, ok := h.loadProduction(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ProgressResponse{
		ProductionID: p.ID.String(),
		Progress:     service.CalculateProgress(p).InexactFloat64(),
	})
}

// ETA returns the predicted completion date without mutating storage.
func (h *ProductionsHandler) ETA(c *gin.Context) {
	p, ok := h.loadProduction(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ETAResponse{
		ProductionID: p.ID.String(),
		ETA:          service.PredictETA(p, time.Now()),
	})
}

// Report renders a PDF production status report and serves it.
func (h *ProductionsHandler) Report(c *gin.Context) {
	p, ok := h.loadProduction(c)
	if !ok {
		return
	}

	now := time.Now()
	path, err := infra.GenerateProductionReport(infra.ProductionReport{
		Production: p,
		Progress:   service.CalculateProgress(p).InexactFloat64(),
		ETA:        service.PredictETA(p, now),
		Timeline:   service.BuildTimeline(p, now),
	}, h.reportsPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate report"))
		return
	}
	c.FileAttachment(path, "production_report_"+p.ID.String()+".pdf")
}

func (h *ProductionsHandler) loadProduction(c *gin.Context) (*model.Production, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid production id"))
		return nil, false
	}
	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("production not found"))
		return nil, false
	}
	return p, true
}

func productionToResponse(p *model.Production) dto.ProductionResponse {
	return dto.ProductionResponse{
		ID:                      p.ID.String(),
		OrderID:                 p.OrderID.String(),
		ProductID:               p.ProductID.String(),
		ProductName:             p.ProductName,
		ProductType:             p.ProductType,
		CurrentStage:            p.CurrentStage,
		Status:                  p.Status,
		Quantity:                p.Quantity,
		Priority:                p.Priority,
		RequiresTracking:        p.RequiresTracking,
		Progress:                service.CalculateProgress(p).InexactFloat64(),
		ProductionStartedAt:     p.ProductionStartedAt,
		EstimatedCompletionDate: p.EstimatedCompletionDate,
		ActualCompletionDate:    p.ActualCompletionDate,
	}
}
