package engine

import (
	"fmt"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
)

// State is a whole snapshot of the studio. Its methods apply the engine's
// decisions to the snapshot in place; a failed call leaves it unchanged.
// State is not safe for concurrent use.
type State struct {
	Users      []models.User          `json:"users"`
	Sessions   []models.Session       `json:"classes"`
	Attendance []models.Attendance    `json:"attendance"`
	Payments   []models.Payment       `json:"payments"`
	Packages   []models.CreditPackage `json:"packages"`
}

func (s *State) User(id string) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s *State) Session(id string) *models.Session {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			return &s.Sessions[i]
		}
	}
	return nil
}

// SessionRecords returns copies of the attendance records of one session.
func (s *State) SessionRecords(sessionID string) []models.Attendance {
	var out []models.Attendance
	for _, a := range s.Attendance {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out
}

// ToggleAttendance runs one toggle against the snapshot.
func (s *State) ToggleAttendance(p Policy, sessionID, traineeID string, actor models.Role, now time.Time) (Result, error) {
	sess := s.Session(sessionID)
	if sess == nil {
		return Failure(ErrNotFound), ErrNotFound
	}
	d, err := p.Toggle(ToggleInput{
		Session:   sess,
		TraineeID: traineeID,
		Trainee:   s.User(traineeID),
		Records:   s.SessionRecords(sessionID),
		Actor:     actor,
		Now:       now,
	})
	if err != nil {
		return Failure(err), err
	}
	if err := s.Apply(d); err != nil {
		return Failure(err), err
	}
	return d.Result, nil
}

// Apply commits a toggle decision. The wallet is settled first so a refused
// balance change leaves the attendance list untouched.
func (s *State) Apply(d Decision) error {
	if d.Delta != 0 {
		if u := s.User(d.TraineeID); u != nil {
			if _, err := Adjust(u, d.Delta); err != nil {
				return err
			}
		}
	}
	if d.Removed != nil {
		s.removeRecord(d.Removed.ID)
	}
	if d.Created != nil {
		s.Attendance = append([]models.Attendance{*d.Created}, s.Attendance...)
	}
	s.promote(d.Promoted)
	return nil
}

func (s *State) promote(promoted []models.Attendance) {
	for _, p := range promoted {
		for i := range s.Attendance {
			if s.Attendance[i].ID == p.ID {
				s.Attendance[i].Status = p.Status
			}
		}
	}
}

func (s *State) removeRecord(id string) {
	out := s.Attendance[:0]
	for _, a := range s.Attendance {
		if a.ID != id {
			out = append(out, a)
		}
	}
	s.Attendance = out
}

// CreateSession validates sess and puts it at the front of the schedule.
func (s *State) CreateSession(sess models.Session) error {
	if err := ValidateSession(&sess); err != nil {
		return err
	}
	if err := CheckUnique(&sess, s.Sessions); err != nil {
		return err
	}
	s.Sessions = append([]models.Session{sess}, s.Sessions...)
	return nil
}

// UpdateSession replaces the session with the same id. Extra capacity is
// filled from the waitlist; the promoted records are returned.
func (s *State) UpdateSession(sess models.Session) ([]models.Attendance, error) {
	cur := s.Session(sess.ID)
	if cur == nil {
		return nil, ErrNotFound
	}
	if err := ValidateSession(&sess); err != nil {
		return nil, err
	}
	if err := CheckUnique(&sess, s.Sessions); err != nil {
		return nil, err
	}
	*cur = sess
	promoted := Promotions(cur, s.SessionRecords(sess.ID))
	s.promote(promoted)
	return promoted, nil
}

// DeleteSession removes the session and every attendance record that
// references it. The removed records are returned; no credit is refunded.
func (s *State) DeleteSession(id string) ([]models.Attendance, error) {
	if s.Session(id) == nil {
		return nil, ErrNotFound
	}
	sessions := s.Sessions[:0]
	for _, sess := range s.Sessions {
		if sess.ID != id {
			sessions = append(sessions, sess)
		}
	}
	s.Sessions = sessions

	removed := s.SessionRecords(id)
	kept := s.Attendance[:0]
	for _, a := range s.Attendance {
		if a.SessionID != id {
			kept = append(kept, a)
		}
	}
	s.Attendance = kept
	return removed, nil
}

// Purchase appends a successful payment for pkg and credits the trainee.
func (s *State) Purchase(traineeID string, pkg models.CreditPackage, now time.Time) (models.Payment, error) {
	u := s.User(traineeID)
	if !u.IsTrainee() {
		return models.Payment{}, ErrInvalidUser
	}
	payment := NewPayment(traineeID, pkg, now)
	if _, err := Credit(u, pkg.Credits); err != nil {
		return models.Payment{}, err
	}
	s.Payments = append(s.Payments, payment)
	return payment, nil
}

// FindUserByCredentials matches email case-insensitively and the password exactly.
func (s *State) FindUserByCredentials(email, password string) *models.User {
	email = models.NormalizeEmail(email)
	for i := range s.Users {
		if models.NormalizeEmail(s.Users[i].Email) == email && s.Users[i].Password == password {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByEmailAndPhone is the recovery lookup used for password resets.
func (s *State) FindUserByEmailAndPhone(email, phone string) *models.User {
	email = models.NormalizeEmail(email)
	for i := range s.Users {
		if models.NormalizeEmail(s.Users[i].Email) == email && s.Users[i].PhoneNumber == phone {
			return &s.Users[i]
		}
	}
	return nil
}

// Validate checks the invariants a snapshot must hold before it is accepted.
// Session dates and times are rewritten in canonical form.
func (s *State) Validate() error {
	users := make(map[string]*models.User, len(s.Users))
	emails := make(map[string]bool, len(s.Users))
	for i := range s.Users {
		u := &s.Users[i]
		if u.ID == "" || users[u.ID] != nil {
			return newError(CodeInvalidInput, "User id %q is missing or repeated.", u.ID)
		}
		if !u.Role.Valid() {
			return newError(CodeInvalidInput, "User %s has unknown role %q.", u.ID, u.Role)
		}
		if u.Credits < 0 {
			return newError(CodeInvalidInput, "User %s has a negative balance.", u.ID)
		}
		email := models.NormalizeEmail(u.Email)
		if emails[email] {
			return newError(CodeInvalidInput, "Email %q is used by more than one user.", email)
		}
		users[u.ID] = u
		emails[email] = true
	}

	sessions := make(map[string]bool, len(s.Sessions))
	keys := make(map[string]bool, len(s.Sessions))
	for i := range s.Sessions {
		sess := &s.Sessions[i]
		if sess.ID == "" || sessions[sess.ID] {
			return newError(CodeInvalidInput, "Session id %q is missing or repeated.", sess.ID)
		}
		if err := ValidateSession(sess); err != nil {
			return newError(CodeInvalidInput, "Session %s: %s", sess.ID, err.Error())
		}
		if keys[keyOf(sess)] {
			return ErrDuplicateSession
		}
		sessions[sess.ID] = true
		keys[keyOf(sess)] = true
	}

	pairs := make(map[string]bool, len(s.Attendance))
	for _, a := range s.Attendance {
		if !sessions[a.SessionID] {
			return newError(CodeInvalidInput, "Attendance %s references unknown session %q.", a.ID, a.SessionID)
		}
		if !users[a.TraineeID].IsTrainee() {
			return newError(CodeInvalidInput, "Attendance %s references %q, which is not a trainee.", a.ID, a.TraineeID)
		}
		pair := fmt.Sprintf("%s|%s", a.SessionID, a.TraineeID)
		if pairs[pair] {
			return newError(CodeInvalidInput, "Trainee %s holds more than one record for session %s.", a.TraineeID, a.SessionID)
		}
		pairs[pair] = true
	}

	for _, p := range s.Payments {
		if !users[p.TraineeID].IsTrainee() {
			return newError(CodeInvalidInput, "Payment %s references %q, which is not a trainee.", p.ID, p.TraineeID)
		}
	}
	return nil
}
