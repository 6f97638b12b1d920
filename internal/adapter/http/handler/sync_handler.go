package handler

import (
	"strconv"
	"time"

	"dealer-catalog-sync/internal/adapter/http/dto"
	"dealer-catalog-sync/internal/core/domain"
	"dealer-catalog-sync/internal/core/ports"
	"dealer-catalog-sync/pkg/apperror"
	"dealer-catalog-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// SyncHandler handles synchronization endpoints.
type SyncHandler struct {
	syncSvc ports.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncSvc ports.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// TriggerSync handles POST /api/v1/sync/:processType.
// 202 when a run was started, 200 with already_running when another run
// holds the lock.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	processType := c.Param("processType")

	var req dto.TriggerSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	run, started, err := h.syncSvc.RequestSync(c.Request.Context(), processType, req.LoadID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toSyncRunResponse(run)
	if !started {
		resp.AlreadyRunning = true
		response.OK(c, resp)
		return
	}
	response.Accepted(c, resp)
}

// GetRun handles GET /api/v1/sync/runs/:id.
func (h *SyncHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("run id must be an integer"))
		return
	}

	run, err := h.syncSvc.GetRun(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSyncRunResponse(run))
}

// GetLockStatus handles GET /api/v1/sync/locks/:processType.
func (h *SyncHandler) GetLockStatus(c *gin.Context) {
	processType := c.Param("processType")

	active, err := h.syncSvc.IsLockActive(c.Request.Context(), processType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.LockStatusResponse{ProcessType: processType, Active: active})
}

// toSyncRunResponse converts domain.SyncRun to DTO.
func toSyncRunResponse(run *domain.SyncRun) dto.SyncRunResponse {
	resp := dto.SyncRunResponse{
		ID:                run.ID,
		ProcessType:       run.ProcessType,
		LoadID:            run.LoadID,
		LoadDate:          run.LoadDate.Format("2006-01-02"),
		JobHandleID:       run.JobHandleID,
		Status:            string(run.Status),
		WebhooksTotal:     run.WebhooksTotal,
		WebhooksProcessed: run.WebhooksProcessed,
		WebhooksFailed:    run.WebhooksFailed,
		WebhooksSkipped:   run.WebhooksSkipped,
		ErrorMessage:      run.ErrorMessage,
	}
	if run.StartedAt != nil {
		s := run.StartedAt.UTC().Format(time.RFC3339)
		resp.StartedAt = &s
	}
	if run.FinishedAt != nil {
		s := run.FinishedAt.UTC().Format(time.RFC3339)
		resp.FinishedAt = &s
	}
	return resp
}
