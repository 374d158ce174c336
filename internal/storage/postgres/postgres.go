package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"library-service/internal/models"
	"library-service/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// initSchema bootstraps the tables. The partial unique index on
// seat_number is the final authority for seat uniqueness: even if two
// requests slip past the lock and the in-transaction check, the second
// insert fails with 23505.
func (s *Storage) initSchema() error {
	const op = "storage.postgres.initSchema"

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			batch_id   TEXT PRIMARY KEY,
			time_label TEXT NOT NULL,
			price      BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			student_id     TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			phone          TEXT NOT NULL,
			address        TEXT NOT NULL,
			batch          TEXT[] NOT NULL DEFAULT '{}',
			admission_date DATE NOT NULL,
			total_amount   BIGINT NOT NULL DEFAULT 0,
			paid_amount    BIGINT NOT NULL DEFAULT 0,
			status         TEXT NOT NULL DEFAULT 'Unpaid',
			photo          TEXT NOT NULL DEFAULT '',
			validity_from  DATE,
			validity_to    DATE,
			seat_number    INT NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			username                TEXT PRIMARY KEY,
			biometric_credential_id TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_seat
			ON students(seat_number) WHERE seat_number > 0`,
		`CREATE INDEX IF NOT EXISTS idx_students_status  ON students(status)`,
		`CREATE INDEX IF NOT EXISTS idx_students_created ON students(created_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// #### batches ####

func (s *Storage) ListBatches(ctx context.Context) ([]models.Batch, error) {
	const op = "storage.postgres.ListBatches"

	rows, err := s.db.QueryContext(ctx,
		`SELECT batch_id, time_label, price, created_at
		FROM batches ORDER BY created_at ASC, batch_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	batches := make([]models.Batch, 0)
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.Time, &b.Price, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return batches, nil
}

// seedLockKey is the advisory lock taken while seeding the catalog.
const seedLockKey = 0x73656564

// SeedBatchesIfEmpty inserts the default catalog inside a transaction.
// The advisory lock serializes concurrent first reads: under READ
// COMMITTED two transactions could both see an empty count before
// either commits, so the emptiness recheck alone is not enough.
func (s *Storage) SeedBatchesIfEmpty(ctx context.Context, seed []models.Batch) error {
	const op = "storage.postgres.SeedBatchesIfEmpty"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return fmt.Errorf("%s: advisory lock: %w", op, err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM batches`).Scan(&count); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return nil
	}

	for _, b := range seed {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO batches (batch_id, time_label, price) VALUES ($1, $2, $3)`,
			uuid.NewString(), b.Time, b.Price,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) CreateBatch(ctx context.Context, b *models.Batch) (string, error) {
	const op = "storage.postgres.CreateBatch"

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (batch_id, time_label, price) VALUES ($1, $2, $3)`,
		id, b.Time, b.Price,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	const op = "storage.postgres.GetBatch"

	var b models.Batch
	err := s.db.QueryRowContext(ctx,
		`SELECT batch_id, time_label, price, created_at FROM batches WHERE batch_id=$1`, id).
		Scan(&b.ID, &b.Time, &b.Price, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

func (s *Storage) UpdateBatch(ctx context.Context, b *models.Batch) error {
	const op = "storage.postgres.UpdateBatch"

	res, err := s.db.ExecContext(ctx,
		`UPDATE batches SET time_label=$1, price=$2 WHERE batch_id=$3`,
		b.Time, b.Price, b.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// DeleteBatch is idempotent: deleting an absent id is not an error.
// Students keep their label strings; there is no cascade.
func (s *Storage) DeleteBatch(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBatch"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM batches WHERE batch_id=$1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### students ####

const studentColumns = `student_id, name, phone, address, batch, admission_date,
	total_amount, paid_amount, status, photo, validity_from, validity_to,
	seat_number, created_at, updated_at`

func scanStudent(row interface {
	Scan(dest ...any) error
}) (*models.Student, error) {
	var st models.Student
	var batch pq.StringArray

	err := row.Scan(
		&st.ID, &st.Name, &st.Phone, &st.Address, &batch, &st.AdmissionDate,
		&st.TotalAmount, &st.PaidAmount, &st.Status, &st.Photo,
		&st.ValidityFrom, &st.ValidityTo, &st.SeatNumber,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.Batch = []string(batch)

	return &st, nil
}

func (s *Storage) CreateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) (string, error) {
	const op = "storage.postgres.CreateStudent"

	id := uuid.NewString()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO students
		(student_id, name, phone, address, batch, admission_date,
		 total_amount, paid_amount, status, photo, validity_from, validity_to, seat_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, st.Name, st.Phone, st.Address, pq.Array(st.Batch), st.AdmissionDate,
		st.TotalAmount, st.PaidAmount, string(st.Status), st.Photo,
		st.ValidityFrom, st.ValidityTo, st.SeatNumber,
	)
	if err != nil {
		if sqlErr, ok := err.(*pq.Error); ok && sqlErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, response.ErrSeatConflict)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) error {
	const op = "storage.postgres.UpdateStudent"

	res, err := tx.ExecContext(ctx,
		`UPDATE students SET
			name=$1, phone=$2, address=$3, batch=$4, admission_date=$5,
			total_amount=$6, paid_amount=$7, status=$8, photo=$9,
			validity_from=$10, validity_to=$11, seat_number=$12, updated_at=now()
		WHERE student_id=$13`,
		st.Name, st.Phone, st.Address, pq.Array(st.Batch), st.AdmissionDate,
		st.TotalAmount, st.PaidAmount, string(st.Status), st.Photo,
		st.ValidityFrom, st.ValidityTo, st.SeatNumber, st.ID,
	)
	if err != nil {
		if sqlErr, ok := err.(*pq.Error); ok && sqlErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, response.ErrSeatConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	const op = "storage.postgres.GetStudent"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id=$1`, id)

	st, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

func (s *Storage) DeleteStudent(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteStudent"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE student_id=$1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListStudents returns newest-first, optionally filtered by payment
// status and a free-text name/phone search.
func (s *Storage) ListStudents(ctx context.Context, status *models.PaymentStatus, query *string) ([]*models.Student, error) {
	const op = "storage.postgres.ListStudents"

	q := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	args := []any{}
	argIndex := 1

	if status != nil {
		q += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(*status))
		argIndex++
	}

	if query != nil && strings.TrimSpace(*query) != "" {
		q += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+strings.TrimSpace(*query)+"%")
		argIndex++
	}

	q += " ORDER BY created_at DESC, student_id DESC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return students, nil
}

// FindSeatOccupant returns the student currently holding the seat,
// excluding excludeID (the record being edited). ErrNotFound means the
// seat is free.
func (s *Storage) FindSeatOccupant(ctx context.Context, tx *sql.Tx, seat int, excludeID string) (*models.Student, error) {
	const op = "storage.postgres.FindSeatOccupant"

	var st models.Student
	err := tx.QueryRowContext(ctx,
		`SELECT student_id, name, seat_number FROM students
		WHERE seat_number=$1 AND student_id != $2`,
		seat, excludeID).
		Scan(&st.ID, &st.Name, &st.SeatNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &st, nil
}

// SeatOccupantName is the out-of-transaction variant used to name the
// occupant after an index-level conflict.
func (s *Storage) SeatOccupantName(ctx context.Context, seat int, excludeID string) (string, error) {
	const op = "storage.postgres.SeatOccupantName"

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM students WHERE seat_number=$1 AND student_id != $2`,
		seat, excludeID).
		Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return name, nil
}

// #### dashboard ####

func (s *Storage) DashboardCounts(ctx context.Context) (total, paid, partial, unpaid int, revenue int64, err error) {
	const op = "storage.postgres.DashboardCounts"

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Paid'),
			COUNT(*) FILTER (WHERE status = 'Partial'),
			COUNT(*) FILTER (WHERE status = 'Unpaid'),
			COALESCE(SUM(paid_amount), 0)
		FROM students`).
		Scan(&total, &paid, &partial, &unpaid, &revenue)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, paid, partial, unpaid, revenue, nil
}

func (s *Storage) RecentStudents(ctx context.Context, limit int) ([]*models.Student, error) {
	const op = "storage.postgres.RecentStudents"

	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id, name, batch, status, created_at
		FROM students ORDER BY created_at DESC, student_id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	students := make([]*models.Student, 0, limit)
	for rows.Next() {
		var st models.Student
		var batch pq.StringArray
		if err := rows.Scan(&st.ID, &st.Name, &batch, &st.Status, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		st.Batch = []string(batch)
		students = append(students, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return students, nil
}

// #### admin ####

// GetAdminUser lazily creates the singleton admin row on first read.
func (s *Storage) GetAdminUser(ctx context.Context) (*models.AdminUser, error) {
	const op = "storage.postgres.GetAdminUser"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (username) VALUES ('admin') ON CONFLICT DO NOTHING`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var u models.AdminUser
	err = s.db.QueryRowContext(ctx,
		`SELECT username, biometric_credential_id FROM admin_users WHERE username='admin'`).
		Scan(&u.Username, &u.BiometricCredentialID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &u, nil
}

// SetBiometricCredential overwrites the stored credential; re-registering
// always replaces the previous one.
func (s *Storage) SetBiometricCredential(ctx context.Context, credentialID string) error {
	const op = "storage.postgres.SetBiometricCredential"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (username, biometric_credential_id)
		VALUES ('admin', $1)
		ON CONFLICT (username) DO UPDATE SET biometric_credential_id = EXCLUDED.biometric_credential_id`,
		credentialID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
