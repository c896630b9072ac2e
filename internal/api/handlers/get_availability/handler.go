package get_availability

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	getAvailability "github.com/m04kA/interview-slots/internal/usecase/get_availability"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidJobID     = "некорректный ID вакансии"
	msgInvalidDate      = "дата обязательна в формате YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/availability
// Query params: date (required, YYYY-MM-DD), jobId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	jobID, err := handlers.QueryInt64(r, "jobId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Date:      date,
		CompanyID: companyID,
		JobID:     jobID,
	})
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("GET /companies/{id}/availability - Failed: company_id=%d, request_id=%s, error=%v", companyID, handlers.RequestID(r), err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
