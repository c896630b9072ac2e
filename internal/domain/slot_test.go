package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/interview-slots/pkg/ptr"
	"github.com/m04kA/interview-slots/pkg/types"
)

func TestScope_Covers(t *testing.T) {
	tests := []struct {
		name      string
		slot      Scope
		requested Scope
		want      bool
	}{
		{"company wide slot, any job", Scope{CompanyID: 1}, Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}, true},
		{"company wide slot, no job", Scope{CompanyID: 1}, Scope{CompanyID: 1}, true},
		{"job slot, same job", Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}, Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}, true},
		{"job slot, other job", Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}, Scope{CompanyID: 1, JobID: ptr.Ptr[int64](8)}, false},
		{"job slot, no job requested", Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}, Scope{CompanyID: 1}, true},
		{"other company", Scope{CompanyID: 2}, Scope{CompanyID: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Covers(tt.requested))
		})
	}
}

func TestScope_Equal(t *testing.T) {
	job7 := Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}

	assert.True(t, job7.Equal(Scope{CompanyID: 1, JobID: ptr.Ptr[int64](7)}))
	assert.True(t, Scope{CompanyID: 1}.Equal(Scope{CompanyID: 1}))
	assert.False(t, job7.Equal(Scope{CompanyID: 1}))
	assert.False(t, Scope{CompanyID: 1}.Equal(job7))
	assert.False(t, job7.Equal(Scope{CompanyID: 2, JobID: ptr.Ptr[int64](7)}))
}

func TestSlot_CloneIsDeep(t *testing.T) {
	s := &Slot{
		ID:            1,
		Scope:         Scope{CompanyID: 1, JobID: ptr.Ptr[int64](3)},
		Configuration: json.RawMessage(`{"difficulty":"hard"}`),
	}

	c := s.Clone()
	*c.Scope.JobID = 99
	c.Configuration[2] = 'X'

	assert.Equal(t, int64(3), *s.Scope.JobID)
	assert.JSONEq(t, `{"difficulty":"hard"}`, string(s.Configuration))
}

func TestSlotStatus_IsTerminal(t *testing.T) {
	assert.False(t, SlotStatusAvailable.IsTerminal())
	assert.False(t, SlotStatusBooked.IsTerminal())
	assert.True(t, SlotStatusCancelled.IsTerminal())
	assert.True(t, SlotStatusCompleted.IsTerminal())
}

func TestErrorHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrNotAvailable, ErrBookingFailed)
	assert.ErrorIs(t, ErrVersionConflict, ErrConflict)
	assert.ErrorIs(t, ErrSlotHasBookings, ErrConflict)
	assert.ErrorIs(t, ErrTerminalState, ErrConflict)
	assert.NotErrorIs(t, ErrBookingFailed, ErrNotAvailable)
	assert.NotErrorIs(t, ErrOutcomeUnknown, ErrBookingFailed)
}

func TestValidateWindow(t *testing.T) {
	hours := types.Window{Start: "08:00", End: "22:00"}

	tests := []struct {
		name    string
		window  types.Window
		wantErr bool
	}{
		{"inside", types.Window{Start: "09:00", End: "09:10"}, false},
		{"whole day of business", types.Window{Start: "08:00", End: "22:00"}, false},
		{"before open", types.Window{Start: "07:50", End: "08:00"}, true},
		{"after close", types.Window{Start: "21:50", End: "22:10"}, true},
		{"inverted", types.Window{Start: "10:00", End: "09:00"}, true},
		{"empty", types.Window{Start: "10:00", End: "10:00"}, true},
		{"not aligned", types.Window{Start: "09:05", End: "09:15"}, true},
		{"malformed", types.Window{Start: "9am", End: "10:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.window, hours)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateCapacityAndType(t *testing.T) {
	assert.NoError(t, ValidateCapacity(1))
	assert.NoError(t, ValidateCapacity(MaxCapacity))
	assert.ErrorIs(t, ValidateCapacity(0), ErrValidation)
	assert.ErrorIs(t, ValidateCapacity(MaxCapacity+1), ErrValidation)

	assert.NoError(t, ValidateInterviewType(InterviewTypeSystemDesign))
	assert.ErrorIs(t, ValidateInterviewType("lunch"), ErrValidation)
}

func TestValidateConfiguration(t *testing.T) {
	assert.NoError(t, ValidateConfiguration(nil))
	assert.NoError(t, ValidateConfiguration(json.RawMessage(`{"topics":["go","sql"],"questions":5}`)))
	assert.ErrorIs(t, ValidateConfiguration(json.RawMessage(`{"topics":`)), ErrValidation)
	assert.ErrorIs(t, ValidateConfiguration(json.RawMessage(`[1,2]`)), ErrValidation)
}
