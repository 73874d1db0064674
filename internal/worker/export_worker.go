package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nexcrm/internal/amqp"
	"nexcrm/internal/core"
	"nexcrm/internal/ledger"
	"nexcrm/internal/storage"
)

// ExportStore is the persistence surface the export worker needs.
// Satisfied by the SQLite repository.
type ExportStore interface {
	GetPayment(ctx context.Context, id string) (*core.Payment, error)
	GetMeeting(ctx context.Context, id string) (*core.Meeting, error)
	UnexportedPayments(ctx context.Context, limit int) ([]core.Payment, error)
	MarkExported(ctx context.Context, id string) error
	MarkExportError(ctx context.Context, id string) error
}

// ExportWorker copies recorded payments from SQLite to the external ledger.
type ExportWorker struct {
	storage   ExportStore
	ledger    ledger.Writer
	batchSize int
}

func NewExportWorker(storage ExportStore, ledger ledger.Writer, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleRecordedMessage processes a single payment recorded message from AMQP.
func (w *ExportWorker) HandleRecordedMessage(ctx context.Context, msg *amqp.PaymentRecordedMessage) error {
	slog.InfoContext(ctx, "Processing payment recorded message",
		"id", msg.ID,
		"version", msg.Version)

	payment, err := w.storage.GetPayment(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get payment from storage: %w", err)
	}

	if err := w.exportPayment(ctx, *payment); err != nil {
		return fmt.Errorf("export payment: %w", err)
	}

	return nil
}

// ProcessPendingExports exports payments the AMQP path missed. This is the
// periodic backup mechanism in case messages are lost.
func (w *ExportWorker) ProcessPendingExports(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize)
}

// StartupExportCheck drains unexported payments at worker startup, using a
// larger batch to recover from downtime.
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize*5)
}

func (w *ExportWorker) processPending(ctx context.Context, limit int) error {
	pending, err := w.storage.UnexportedPayments(ctx, limit)
	if err != nil {
		return fmt.Errorf("get unexported payments: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing unexported payments", "count", len(pending))

	exported := 0
	for _, p := range pending {
		if err := w.exportPayment(ctx, p); err != nil {
			slog.ErrorContext(ctx, "Failed to export payment", "id", p.ID, "error", err)
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Unexported payment processing complete",
		"total", len(pending),
		"exported", exported)

	return nil
}

func (w *ExportWorker) exportPayment(ctx context.Context, p core.Payment) error {
	entry := ledger.Entry{Payment: p}

	meeting, err := w.storage.GetMeeting(ctx, p.MeetingID)
	switch {
	case err == nil:
		entry.MeetingTitle = meeting.Title
		entry.MeetingCity = meeting.Location
	case errors.Is(err, storage.ErrNotFound):
		// The meeting may have been deleted. Export with placeholder fields
		// rather than holding the payment back.
		entry.MeetingTitle = core.UnknownCity
		entry.MeetingCity = core.UnknownCity
	default:
		return fmt.Errorf("get meeting: %w", err)
	}

	ref, err := w.ledger.Append(ctx, entry)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, p.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", p.ID, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.storage.MarkExported(ctx, p.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", p.ID, "error", err)
		// The append worked, do not fail the message.
	}

	slog.InfoContext(ctx, "Payment exported to ledger",
		"id", p.ID,
		"receipt", p.ReceiptNumber,
		"ledger_ref", ref)

	return nil
}
