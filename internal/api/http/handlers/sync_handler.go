package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/analytics-service/internal/service"
	apperrors "github.com/support-kit/analytics-service/pkg/util"
)

// SyncHandler exposes the last sync run status.
type SyncHandler struct {
	status      service.SyncStatusStore
	syncService *service.SyncService
}

// NewSyncHandler constructs handler.
func NewSyncHandler(status service.SyncStatusStore, syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{status: status, syncService: syncService}
}

// Status GET /sync/status.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	last, err := h.status.Last(c.UserContext())
	if errors.Is(err, service.ErrNoSyncStatus) {
		return apperrors.NewNotFound("sync run", nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"running":  h.syncService.Running(),
		"last_run": last,
	})
}
