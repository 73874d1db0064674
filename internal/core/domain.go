package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Weekly   Frequency = "WEEKLY"
	BiWeekly Frequency = "BI_WEEKLY"
	Monthly  Frequency = "MONTHLY"
)

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCash         Method = "CASH"
	MethodMobileMoney  Method = "MOBILE_MONEY"
	MethodCheck        Method = "CHECK"
)

// UnknownCity is the bucket used for payments whose meeting reference no
// longer resolves. Such payments keep contributing to amount totals.
const UnknownCity = "Unknown"

type (
	Frequency string
	Status    string
	Method    string

	Date struct {
		time.Time
	}

	// Money is a whole-franc FCFA amount. The currency has no subunit,
	// so no cents field is carried.
	Money struct {
		Francs int64
	}

	// Meeting is a recurring contribution-collecting event. The engine
	// only ever reads meetings; mutation is full-record replacement
	// through the store.
	Meeting struct {
		ID                 string
		Title              string
		Category           string
		Location           string
		Frequency          Frequency
		ContributionAmount Money
		Attendees          []string
		NextDate           Date
		ColorTag           string
		Specifications     string
	}

	// Payment is one recorded contribution instance, tied to a meeting by
	// a non-owning reference. Amount is attributed to Date for every
	// date-bucketed aggregate, never to record-creation time.
	Payment struct {
		ID            string
		MeetingID     string
		Amount        Money
		Status        Status
		Date          Date
		PayerName     string
		Method        Method
		ReceiptNumber string
		ApprovedBy    string
	}

	User struct {
		ID           string
		Name         string
		Email        string
		Username     string
		PasswordHash string
		Role         string
		Permissions  []string
		Avatar       string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyLocation    = errors.New("empty location")
	ErrEmptyPayerName   = errors.New("empty payer name")
	ErrEmptyMeetingID   = errors.New("empty meeting id")
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrUnknownStatus    = errors.New("unknown status")
	ErrUnknownMethod    = errors.New("unknown method")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date in 2006-01-02 form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// SameDay reports calendar-date equality, ignoring time of day.
func (d Date) SameDay(other Date) bool {
	return d.ISO() == other.ISO()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Francs < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Francs: m.Francs + other.Francs}
}

// Mul returns the amount scaled by an integer factor.
func (m Money) Mul(factor int64) Money {
	return Money{Francs: m.Francs * factor}
}

func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCash, MethodMobileMoney, MethodCheck:
		return true
	}
	return false
}

// Validate enforces the record-creation contract. The aggregation engine
// itself never validates; partially invalid persisted data is tolerated
// there by exclusion, not by error.
func (m Meeting) Validate() error {
	if len(strings.TrimSpace(m.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(m.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if len(strings.TrimSpace(m.Location)) == 0 {
		return ErrEmptyLocation
	}
	if !m.Frequency.Valid() {
		return ErrUnknownFrequency
	}
	if err := m.ContributionAmount.Validate(); err != nil {
		return err
	}
	if err := m.NextDate.Validate(); err != nil {
		return err
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.MeetingID) == "" {
		return ErrEmptyMeetingID
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return ErrUnknownStatus
	}
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(p.PayerName)) == 0 {
		return ErrEmptyPayerName
	}
	if !p.Method.Valid() {
		return ErrUnknownMethod
	}
	return nil
}
