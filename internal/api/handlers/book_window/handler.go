package book_window

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректная дата или окно"
)

type Handler struct {
	useCase BookWindowUseCase
	logger  Logger
}

func NewHandler(useCase BookWindowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /companies/{id}/book - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req BookWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(companyID)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/book - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(handlers.ActorContext(r), useCaseReq)
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("POST /companies/{id}/book - Failed: company_id=%d, window=%s, request_id=%s, error=%v",
				companyID, useCaseReq.Window, handlers.RequestID(r), err)
		} else {
			h.logger.Warn("POST /companies/{id}/book - company_id=%d, window=%s: %v",
				companyID, useCaseReq.Window, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /companies/{id}/book - company_id=%d, window=%s, slot_id=%d",
		companyID, useCaseReq.Window, result.Slot.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSlot(result.Slot))
}
