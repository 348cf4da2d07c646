package domain

import (
	"errors"
	"fmt"
	"time"
)

// LoanPeriod is how long a borrowed book may be kept.
const LoanPeriod = 30 * 24 * time.Hour

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
)

// ErrLoanReturned is returned when a loan that already ended is returned again.
var ErrLoanReturned = errors.New("loan already returned")

// Loan records one borrow. Book is a snapshot taken at borrow time, not a live reference.
//
// Invariant: ReturnedAt is set if and only if Status is LoanReturned.
// Transitions: active -> returned, active -> overdue (derived from DueAt), overdue -> returned.
// Returned is terminal.
type Loan struct {
	ID         string     `json:"_id"`
	UserID     string     `json:"userId,omitempty"`
	Book       Book       `json:"book"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Status     LoanStatus `json:"status"`
}

// NewLoan starts an active loan due LoanPeriod after now.
func NewLoan(id, userID string, book Book, now time.Time) *Loan {
	return &Loan{
		ID:         id,
		UserID:     userID,
		Book:       book,
		BorrowedAt: now,
		DueAt:      now.Add(LoanPeriod),
		Status:     LoanActive,
	}
}

// IsOpen reports whether the book is still out.
func (l *Loan) IsOpen() bool {
	return l.Status != LoanReturned
}

// Refresh marks an active loan overdue once now is past its due date.
// Returns true when the status changed.
func (l *Loan) Refresh(now time.Time) bool {
	if l.Status == LoanActive && now.After(l.DueAt) {
		l.Status = LoanOverdue
		return true
	}
	return false
}

// Return ends the loan at now.
func (l *Loan) Return(now time.Time) error {
	if !l.IsOpen() {
		return ErrLoanReturned
	}
	returned := now
	l.ReturnedAt = &returned
	l.Status = LoanReturned
	return nil
}

// Validate checks the status / return-time invariant.
func (l *Loan) Validate() error {
	switch l.Status {
	case LoanActive, LoanOverdue:
		if l.ReturnedAt != nil {
			return fmt.Errorf("loan %s is %s but has a return time", l.ID, l.Status)
		}
	case LoanReturned:
		if l.ReturnedAt == nil {
			return fmt.Errorf("loan %s is returned but has no return time", l.ID)
		}
	default:
		return fmt.Errorf("loan %s has unknown status %q", l.ID, l.Status)
	}
	if l.DueAt.Before(l.BorrowedAt) {
		return fmt.Errorf("loan %s is due before it was borrowed", l.ID)
	}
	return nil
}
