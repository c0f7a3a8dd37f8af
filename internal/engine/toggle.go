package engine

import (
	"sort"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/google/uuid"
)

// ToggleInput is the slice of state one toggle depends on.
type ToggleInput struct {
	Session   *models.Session
	TraineeID string
	// Trainee is nil when TraineeID does not resolve to a user.
	Trainee *models.User
	// Records holds every attendance record of Session.
	Records []models.Attendance
	Actor   models.Role
	Now     time.Time
}

// Decision lists the mutations a toggle requires. They must be applied
// together: the record change, the promotions and the wallet delta.
type Decision struct {
	Result    Result
	TraineeID string
	Created   *models.Attendance
	Removed   *models.Attendance
	Promoted  []models.Attendance
	Delta     int
}

// Toggle books the trainee into the session when they hold no record for it and
// withdraws them when they do.
func (p Policy) Toggle(in ToggleInput) (Decision, error) {
	if in.Session == nil {
		return Decision{}, ErrNotFound
	}
	if rec := findRecord(in.Records, in.TraineeID); rec != nil {
		return p.withdraw(in, *rec)
	}
	return p.register(in)
}

func (p Policy) withdraw(in ToggleInput, rec models.Attendance) (Decision, error) {
	if err := p.CheckCancellable(in.Session, in.Now); err != nil {
		return Decision{}, err
	}

	d := Decision{TraineeID: in.TraineeID, Removed: &rec}
	if in.Trainee.IsTrainee() {
		d.Delta = BookingCost
	}
	if rec.Status.HoldsSeat() {
		d.Promoted = Promotions(in.Session, withoutRecord(in.Records, rec.ID))
	}

	msg := "Attendance removed."
	if d.Delta > 0 {
		msg = "Booking cancelled. 1 credit refunded."
	}
	d.Result = Result{Success: true, Outcome: OutcomeCancelled, Message: msg}
	return d, nil
}

func (p Policy) register(in ToggleInput) (Decision, error) {
	if !in.Trainee.IsTrainee() {
		return Decision{}, ErrInvalidUser
	}
	if in.Trainee.Credits < BookingCost {
		return Decision{}, ErrInsufficientCredits
	}

	status := models.StatusBooked
	if in.Session.Bounded() && SeatsTaken(in.Records) >= in.Session.MaxCapacity {
		status = models.StatusWaitlisted
	}
	method := models.MethodApp
	if in.Actor.IsStaff() {
		method = models.MethodManual
	}

	rec := models.Attendance{
		ID:        uuid.NewString(),
		SessionID: in.Session.ID,
		TraineeID: in.TraineeID,
		Timestamp: in.Now,
		Method:    method,
		Status:    status,
	}

	d := Decision{TraineeID: in.TraineeID, Created: &rec, Delta: -BookingCost}
	if status == models.StatusWaitlisted {
		d.Result = Result{Success: true, Outcome: OutcomeWaitlisted, Message: "Session is full. Joined waitlist, 1 credit deducted."}
	} else {
		d.Result = Result{Success: true, Outcome: OutcomeBooked, Message: "Checked in. 1 credit deducted."}
	}
	return d, nil
}

// SeatsTaken counts records that hold a seat.
func SeatsTaken(records []models.Attendance) int {
	n := 0
	for i := range records {
		if records[i].Status.HoldsSeat() {
			n++
		}
	}
	return n
}

// Promotions returns the waitlisted records that fit into the session's free
// seats, earliest first, with their status already switched to BOOKED.
func Promotions(s *models.Session, records []models.Attendance) []models.Attendance {
	if !s.Bounded() {
		return nil
	}
	free := s.MaxCapacity - SeatsTaken(records)
	if free <= 0 {
		return nil
	}

	waiting := Waitlist(records)
	if len(waiting) > free {
		waiting = waiting[:free]
	}
	for i := range waiting {
		waiting[i].Status = models.StatusBooked
	}
	return waiting
}

// Waitlist returns copies of the waitlisted records ordered by booking time.
func Waitlist(records []models.Attendance) []models.Attendance {
	var out []models.Attendance
	for _, r := range records {
		if r.Status == models.StatusWaitlisted {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// CheckIn marks the trainee's registration as attended. Waitlisted trainees
// have no seat to check into.
func CheckIn(records []models.Attendance, traineeID string) (models.Attendance, error) {
	rec := findRecord(records, traineeID)
	if rec == nil {
		return models.Attendance{}, newError(CodeNotFound, "Trainee is not registered for this session.")
	}
	if rec.Status == models.StatusWaitlisted {
		return models.Attendance{}, newError(CodeInvalidInput, "Trainee is on the waitlist and cannot be checked in.")
	}
	out := *rec
	out.Status = models.StatusAttended
	return out, nil
}

func findRecord(records []models.Attendance, traineeID string) *models.Attendance {
	for i := range records {
		if records[i].TraineeID == traineeID {
			return &records[i]
		}
	}
	return nil
}

func withoutRecord(records []models.Attendance, id string) []models.Attendance {
	out := make([]models.Attendance, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
