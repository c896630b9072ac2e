package get_availability

import (
	"fmt"

	"github.com/m04kA/interview-slots/internal/domain"
)

func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", domain.ErrValidation)
	}
	if req.JobID != nil && *req.JobID <= 0 {
		return fmt.Errorf("%w: jobID must be positive", domain.ErrValidation)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
