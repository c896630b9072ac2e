package delete_slot

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
)

const msgInvalidSlotID = "некорректный ID слота"

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(handlers.ActorContext(r), slotID); err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%d, request_id=%s, error=%v", slotID, handlers.RequestID(r), err)
		} else {
			h.logger.Warn("DELETE /slots/{id} - slot_id=%d: %v", slotID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted: slot_id=%d", slotID)
	handlers.RespondNoContent(w)
}
