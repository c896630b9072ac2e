package create_slot

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/service/slots/models"
	"github.com/m04kA/interview-slots/pkg/types"
)

// CreateSlotRequest HTTP модель создания слота
type CreateSlotRequest struct {
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	InterviewType string          `json:"interviewType"`
	MaxCapacity   int             `json:"maxCapacity"`
	CompanyID     int64           `json:"companyId"`
	JobID         *int64          `json:"jobId,omitempty"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
}

// ToServiceInput разбирает дату и окно
func (r CreateSlotRequest) ToServiceInput() (models.CreateSlotInput, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return models.CreateSlotInput{}, err
	}

	window, err := types.NewWindow(r.StartTime, r.EndTime)
	if err != nil {
		return models.CreateSlotInput{}, fmt.Errorf("%w: window: %v", handlers.ErrInvalidParam, err)
	}

	return models.CreateSlotInput{
		Date:          date,
		Window:        window,
		InterviewType: domain.InterviewType(r.InterviewType),
		MaxCapacity:   r.MaxCapacity,
		Scope:         domain.Scope{CompanyID: r.CompanyID, JobID: r.JobID},
		Configuration: r.Configuration,
	}, nil
}
