package cancel_slot

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
)

const msgInvalidSlotID = "некорректный ID слота"

type Handler struct {
	coordinator SlotCanceller
	logger      Logger
}

func NewHandler(coordinator SlotCanceller, logger Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/cancel
// 409, если у слота есть бронирования или он завершён
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/cancel - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.coordinator.Cancel(handlers.ActorContext(r), slotID)
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("POST /slots/{id}/cancel - Failed: slot_id=%d, request_id=%s, error=%v", slotID, handlers.RequestID(r), err)
		} else {
			h.logger.Warn("POST /slots/{id}/cancel - slot_id=%d: %v", slotID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /slots/{id}/cancel - slot_id=%d, bookings=%d/%d, status=%s",
		slotID, slot.CurrentBookings, slot.MaxCapacity, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSlot(slot))
}
