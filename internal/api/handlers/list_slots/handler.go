package list_slots

import (
	"net/http"
	"strings"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/service/slots/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidJobID     = "некорректный ID вакансии"
	msgInvalidDate      = "дата обязательна в формате YYYY-MM-DD"
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

// ListResponse список слотов
type ListResponse struct {
	Date  string                   `json:"date"`
	Slots []*handlers.SlotResponse `json:"slots"`
}

// Handle GET /api/v1/companies/{companyId}/slots
// Query params: date (required), jobId, status (comma separated), interviewType
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	jobID, err := handlers.QueryInt64(r, "jobId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slots - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	in := models.ListSlotsInput{
		Date:  date,
		Scope: domain.Scope{CompanyID: companyID, JobID: jobID},
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			in.Statuses = append(in.Statuses, domain.SlotStatus(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	if raw := r.URL.Query().Get("interviewType"); raw != "" {
		it := domain.InterviewType(raw)
		in.InterviewType = &it
	}

	slots, err := h.service.List(r.Context(), in)
	if err != nil {
		status, message, known := handlers.SlotErrorStatus(err)
		if !known {
			h.logger.Error("GET /companies/{id}/slots - Failed to list slots: company_id=%d, request_id=%s, error=%v", companyID, handlers.RequestID(r), err)
		} else {
			h.logger.Warn("GET /companies/{id}/slots - company_id=%d: %v", companyID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("GET /companies/{id}/slots - company_id=%d, date=%s, count=%d",
		companyID, date.Format(domain.DateFormat), len(slots))
	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Date:  date.Format(domain.DateFormat),
		Slots: handlers.FromDomainSlots(slots),
	})
}
