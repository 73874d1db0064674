package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"nexcrm/internal/core"
	"nexcrm/internal/storage"
)

// PaymentPublisher notifies the export worker about recorded payments.
// Satisfied by the AMQP client, may be nil when messaging is disabled.
type PaymentPublisher interface {
	PublishPaymentRecorded(ctx context.Context, id string, version int64) error
}

// PaymentService orchestrates payment operations across SQLite and AMQP.
type PaymentService struct {
	storage   *storage.SQLiteRepository
	publisher PaymentPublisher
}

func NewPaymentService(storage *storage.SQLiteRepository, publisher PaymentPublisher) *PaymentService {
	return &PaymentService{
		storage:   storage,
		publisher: publisher,
	}
}

// RecordPayment validates and saves a payment, assigns its receipt number
// and publishes an export message. Publish failures do not fail the call,
// the catch-up scan picks those payments up later.
func (s *PaymentService) RecordPayment(ctx context.Context, p core.Payment) (*core.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = core.StatusPending
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.CreatePayment(ctx, &p); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	if err := s.publish(ctx, p.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish payment recorded message",
			"id", p.ID, "error", err)
	}

	return &p, nil
}

// ApprovePayment moves a PENDING payment to APPROVED, or straight to PAID
// when the approver settles it in the same step, and stamps who approved it.
// A payment in any other status is rejected with storage.ErrStatusConflict.
func (s *PaymentService) ApprovePayment(ctx context.Context, id, approvedBy string, target core.Status) (*core.Payment, error) {
	if target != core.StatusApproved && target != core.StatusPaid {
		return nil, fmt.Errorf("%w: approval target must be APPROVED or PAID", core.ErrUnknownStatus)
	}
	if err := s.storage.UpdatePaymentStatus(ctx, id, core.StatusPending, target, approvedBy); err != nil {
		return nil, err
	}
	return s.storage.GetPayment(ctx, id)
}

func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	return s.storage.DeletePayment(ctx, id)
}

func (s *PaymentService) publish(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping payment recorded message")
		return nil
	}
	return s.publisher.PublishPaymentRecorded(ctx, id, 1)
}
