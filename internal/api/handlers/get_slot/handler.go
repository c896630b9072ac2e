package get_slot

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

// Handle GET /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("GET /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.Get(r.Context(), slotID)
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("GET /slots/{id} - Failed to get slot: slot_id=%d, request_id=%s, error=%v", slotID, handlers.RequestID(r), err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSlot(slot))
}
