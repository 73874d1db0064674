package http

import (
	"nexcrm/internal/core"
)

// Wire representations use the camelCase field names the frontend expects.
// Amounts travel as whole francs, dates as ISO calendar days.

type meetingDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Category           string   `json:"category,omitempty"`
	Location           string   `json:"location"`
	Frequency          string   `json:"frequency"`
	ContributionAmount int64    `json:"contributionAmount"`
	Attendees          []string `json:"attendees"`
	NextDate           string   `json:"nextDate"`
	ColorTag           string   `json:"colorTag,omitempty"`
	Specifications     string   `json:"specifications,omitempty"`
}

func toMeetingDTO(m core.Meeting) meetingDTO {
	attendees := m.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return meetingDTO{
		ID:                 m.ID,
		Title:              m.Title,
		Category:           m.Category,
		Location:           m.Location,
		Frequency:          string(m.Frequency),
		ContributionAmount: m.ContributionAmount.Francs,
		Attendees:          attendees,
		NextDate:           m.NextDate.ISO(),
		ColorTag:           m.ColorTag,
		Specifications:     m.Specifications,
	}
}

func (d meetingDTO) toCore() (core.Meeting, error) {
	nextDate, err := core.ParseDate(d.NextDate)
	if err != nil {
		return core.Meeting{}, err
	}
	return core.Meeting{
		ID:                 d.ID,
		Title:              d.Title,
		Category:           d.Category,
		Location:           d.Location,
		Frequency:          core.Frequency(d.Frequency),
		ContributionAmount: core.Money{Francs: d.ContributionAmount},
		Attendees:          d.Attendees,
		NextDate:           nextDate,
		ColorTag:           d.ColorTag,
		Specifications:     d.Specifications,
	}, nil
}

type paymentDTO struct {
	ID            string `json:"id"`
	MeetingID     string `json:"meetingId"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	PayerName     string `json:"payerName"`
	Method        string `json:"method"`
	ReceiptNumber string `json:"receiptNumber,omitempty"`
	ApprovedBy    string `json:"approvedBy,omitempty"`
}

func toPaymentDTO(p core.Payment) paymentDTO {
	return paymentDTO{
		ID:            p.ID,
		MeetingID:     p.MeetingID,
		Amount:        p.Amount.Francs,
		Status:        string(p.Status),
		Date:          p.Date.ISO(),
		PayerName:     p.PayerName,
		Method:        string(p.Method),
		ReceiptNumber: p.ReceiptNumber,
		ApprovedBy:    p.ApprovedBy,
	}
}

func (d paymentDTO) toCore() (core.Payment, error) {
	date, err := core.ParseDate(d.Date)
	if err != nil {
		return core.Payment{}, err
	}
	return core.Payment{
		ID:            d.ID,
		MeetingID:     d.MeetingID,
		Amount:        core.Money{Francs: d.Amount},
		Status:        core.Status(d.Status),
		Date:          date,
		PayerName:     d.PayerName,
		Method:        core.Method(d.Method),
		ReceiptNumber: d.ReceiptNumber,
		ApprovedBy:    d.ApprovedBy,
	}, nil
}

func toPaymentDTOs(payments []core.Payment) []paymentDTO {
	out := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentDTO(p))
	}
	return out
}

// userDTO never carries the password hash.
type userDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Avatar      string   `json:"avatar,omitempty"`
}

func toUserDTO(u core.User) userDTO {
	permissions := u.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return userDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: permissions,
		Avatar:      u.Avatar,
	}
}

type summaryDTO struct {
	TotalPaid              int64 `json:"totalPaid"`
	PendingCount           int   `json:"pendingCount"`
	MeetingCount           int   `json:"meetingCount"`
	ProjectedMonthlyIncome int64 `json:"projectedMonthlyIncome"`
}

type cityAmountDTO struct {
	City   string `json:"city"`
	Amount int64  `json:"amount"`
}

type daySummaryDTO struct {
	Date    string       `json:"date"`
	Total   int64        `json:"total"`
	Paid    int64        `json:"paid"`
	Pending int64        `json:"pending"`
	Items   []paymentDTO `json:"items"`
}
