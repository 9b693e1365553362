package handler

import (
	"net/http"

	"woodtrack/internal/apierror"
	"woodtrack/internal/dto"
	"woodtrack/internal/service"
	"woodtrack/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackingHandler struct {
	svc        service.TrackingService
	syncSvc    service.TrackingSyncService
	dispatcher *worker.Dispatcher
}

func NewTrackingHandler(svc service.TrackingService, syncSvc service.TrackingSyncService, dispatcher *worker.Dispatcher) *TrackingHandler {
	return &TrackingHandler{svc: svc, syncSvc: syncSvc, dispatcher: dispatcher}
}

// GetOrderTracking returns the stored tracking snapshots of an order.
func (h *TrackingHandler) GetOrderTracking(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	resp, err := h.svc.GetOrderTracking(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load tracking"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCustomerTracking returns the live customer view of an order.
func (h *TrackingHandler) GetCustomerTracking(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	resp, err := h.svc.GetCustomerTracking(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load tracking"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats returns tracking counts by status for the admin dashboard.
func (h *TrackingHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load tracking stats"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SyncOrder runs the tracking sync synchronously and reports per-record
// results. Per-record failures come back in the results, not as a 5xx.
func (h *TrackingHandler) SyncOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}
	results, err := h.syncSvc.Sync(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New("sync failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, syncToResponse(orderID, results))
}

// SyncOrderAsyncRequest optionally labels what triggered the sync.
type SyncOrderAsyncRequest struct {
	Trigger string `json:"trigger" validate:"omitempty,oneof=order_accepted stage_completed manual"`
}

// SyncOrderAsync enqueues a sync job instead of running it inline.
func (h *TrackingHandler) SyncOrderAsync(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}

	req := SyncOrderAsyncRequest{Trigger: "manual"}
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
		if req.Trigger == "" {
			req.Trigger = "manual"
		}
	}

	if err := h.dispatcher.EnqueueTrackingSync(c.Request.Context(), orderID, req.Trigger); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to enqueue sync"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"order_id": orderID.String(), "enqueued": true})
}

func syncToResponse(orderID uuid.UUID, results []service.SyncResult) dto.SyncResponse {
	resp := dto.SyncResponse{OrderID: orderID.String()}
	for _, res := range results {
		r := dto.SyncResultResponse{
			ProductionID: res.ProductionID.String(),
			ProductID:    res.ProductID.String(),
			Created:      res.Created,
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		} else {
			r.TrackingID = res.TrackingID.String()
			r.CurrentStage = res.CurrentStage
			r.Status = res.Status
			r.Progress = res.Progress.InexactFloat64()
		}
		resp.Results = append(resp.Results, r)
	}
	return resp
}
