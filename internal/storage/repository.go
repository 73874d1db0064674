package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nexcrm/internal/core"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrStatusConflict = errors.New("payment is not in the expected status")
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// --- meetings ---

const meetingColumns = `id, title, category, location, frequency, contribution_amount, attendees, next_date, color_tag, specifications`

func (r *SQLiteRepository) CreateMeeting(ctx context.Context, m core.Meeting) error {
	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meetings (`+meetingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Category, m.Location, string(m.Frequency),
		m.ContributionAmount.Francs, string(attendees), m.NextDate.ISO(),
		m.ColorTag, m.Specifications)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}

	slog.InfoContext(ctx, "Meeting created",
		"id", m.ID,
		"title", m.Title,
		"frequency", m.Frequency)

	return nil
}

// ReplaceMeeting overwrites the full record identified by m.ID.
func (r *SQLiteRepository) ReplaceMeeting(ctx context.Context, m core.Meeting) error {
	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET title = ?, category = ?, location = ?, frequency = ?,
		 contribution_amount = ?, attendees = ?, next_date = ?, color_tag = ?,
		 specifications = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Title, m.Category, m.Location, string(m.Frequency),
		m.ContributionAmount.Francs, string(attendees), m.NextDate.ISO(),
		m.ColorTag, m.Specifications, m.ID)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *SQLiteRepository) DeleteMeeting(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetMeeting(ctx context.Context, id string) (*core.Meeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)

	m, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) ListMeetings(ctx context.Context) ([]core.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := []core.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}

	return meetings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*core.Meeting, error) {
	var (
		m         core.Meeting
		frequency string
		francs    int64
		attendees string
		nextDate  string
	)
	err := row.Scan(&m.ID, &m.Title, &m.Category, &m.Location, &frequency,
		&francs, &attendees, &nextDate, &m.ColorTag, &m.Specifications)
	if err != nil {
		return nil, err
	}

	m.Frequency = core.Frequency(frequency)
	m.ContributionAmount = core.Money{Francs: francs}
	if err := json.Unmarshal([]byte(attendees), &m.Attendees); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	d, err := core.ParseDate(nextDate)
	if err != nil {
		return nil, fmt.Errorf("decode next date: %w", err)
	}
	m.NextDate = d

	return &m, nil
}

// --- payments ---

const paymentColumns = `id, receipt_number, meeting_id, amount, status, date, payer_name, method, approved_by`

// CreatePayment stores the payment and assigns the next sequential receipt
// number. The written receipt number is returned on p.
func (r *SQLiteRepository) CreatePayment(ctx context.Context, p *core.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(receipt_seq), 0) + 1 FROM payments`).Scan(&seq); err != nil {
		return fmt.Errorf("next receipt sequence: %w", err)
	}
	p.ReceiptNumber = fmt.Sprintf("REC-%03d", seq)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, receipt_seq, receipt_number, meeting_id, amount, status, date, payer_name, method, approved_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, seq, p.ReceiptNumber, p.MeetingID, p.Amount.Francs,
		string(p.Status), p.Date.ISO(), p.PayerName, string(p.Method), p.ApprovedBy)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payment: %w", err)
	}

	slog.InfoContext(ctx, "Payment recorded",
		"id", p.ID,
		"receipt", p.ReceiptNumber,
		"payer", p.PayerName,
		"amount_francs", p.Amount.Francs)

	return nil
}

func (r *SQLiteRepository) GetPayment(ctx context.Context, id string) (*core.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)

	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY receipt_seq`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []core.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

func (r *SQLiteRepository) DeletePayment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePaymentStatus moves a payment from one status to another, recording
// who approved it when approvedBy is non-empty. The transition only applies
// when the payment currently holds the from status; otherwise
// ErrStatusConflict is returned so a CANCELLED or already settled payment
// cannot be restamped.
func (r *SQLiteRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to core.Status, approvedBy string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ?, approved_by = CASE WHEN ? != '' THEN ? ELSE approved_by END
		 WHERE id = ? AND status = ?`,
		string(to), approvedBy, approvedBy, id, string(from))
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetPayment(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	slog.InfoContext(ctx, "Payment status updated",
		"id", id,
		"from", from,
		"to", to,
		"approved_by", approvedBy)

	return nil
}

// UnexportedPayments returns up to limit payments that have not been written
// to the ledger yet, oldest first.
func (r *SQLiteRepository) UnexportedPayments(ctx context.Context, limit int) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE exported_at IS NULL ORDER BY receipt_seq LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list unexported payments: %w", err)
	}
	defer rows.Close()

	payments := []core.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unexported payments: %w", err)
	}

	return payments, nil
}

func (r *SQLiteRepository) MarkExported(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET exported_at = ?, export_error = 0 WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark payment exported: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) MarkExportError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET export_error = export_error + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark payment export error: %w", err)
	}
	return nil
}

func scanPayment(row rowScanner) (*core.Payment, error) {
	var (
		p      core.Payment
		francs int64
		status string
		date   string
		method string
	)
	err := row.Scan(&p.ID, &p.ReceiptNumber, &p.MeetingID, &francs,
		&status, &date, &p.PayerName, &method, &p.ApprovedBy)
	if err != nil {
		return nil, err
	}

	p.Amount = core.Money{Francs: francs}
	p.Status = core.Status(status)
	p.Method = core.Method(method)
	d, err := core.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("decode payment date: %w", err)
	}
	p.Date = d

	return &p, nil
}

// --- users ---

const userColumns = `id, name, email, username, password_hash, role, permissions, avatar`

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	permissions, err := json.Marshal(u.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Username, u.PasswordHash,
		u.Role, string(permissions), u.Avatar)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User created",
		"id", u.ID,
		"username", u.Username,
		"role", u.Role)

	return nil
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []core.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *SQLiteRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*core.User, error) {
	var (
		u           core.User
		permissions string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &permissions, &u.Avatar)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(permissions), &u.Permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	return &u, nil
}
