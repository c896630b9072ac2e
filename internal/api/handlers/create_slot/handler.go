package create_slot

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректная дата или окно, ожидается YYYY-MM-DD и HH:MM"
)

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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	in, err := req.ToServiceInput()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	slot, err := h.service.Create(handlers.ActorContext(r), in)
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("POST /slots - Failed to create slot: company_id=%d, request_id=%s, error=%v", req.CompanyID, handlers.RequestID(r), err)
		} else {
			h.logger.Warn("POST /slots - company_id=%d: %v", req.CompanyID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /slots - Slot created: id=%d, company_id=%d", slot.ID, slot.Scope.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainSlot(slot))
}
