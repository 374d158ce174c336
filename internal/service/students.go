package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-service/api"
	"library-service/internal/fees"
	"library-service/internal/models"
	"library-service/pkg/response"
)

const seatLockTTL = 10 * time.Second

// CreateStudent validates the draft, recomputes the fee fields from
// the current catalog (the client-sent status and total are previews,
// not truth), runs the seat guard and persists.
func (s *Service) CreateStudent(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error) {
	const op = "service.CreateStudent"

	st, err := s.buildStudent(ctx, req, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.writeStudent(ctx, st, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.getStudentResponse(ctx, id)
}

func (s *Service) UpdateStudent(ctx context.Context, id string, req *api.StudentRequest) (*api.StudentResponse, error) {
	const op = "service.UpdateStudent"

	existing, err := s.store.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := s.buildStudent(ctx, req, existing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	st.ID = id

	if _, err := s.writeStudent(ctx, st, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.getStudentResponse(ctx, id)
}

// DeleteStudent is idempotent; deleting an absent id succeeds.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	const op = "service.DeleteStudent"

	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListStudents returns newest-first. status is All|Paid|Partial|Unpaid
// (empty means All); query matches name or phone.
func (s *Service) ListStudents(ctx context.Context, status, query string) ([]*api.StudentResponse, error) {
	const op = "service.ListStudents"

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var queryFilter *string
	if query != "" {
		queryFilter = &query
	}

	students, err := s.store.ListStudents(ctx, statusFilter, queryFilter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.StudentResponse, 0, len(students))
	for _, st := range students {
		result = append(result, studentResponse(st))
	}

	return result, nil
}

// PaymentsList is the payments-view projection of the student list.
func (s *Service) PaymentsList(ctx context.Context, status string) ([]*api.PaymentEntry, error) {
	const op = "service.PaymentsList"

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	students, err := s.store.ListStudents(ctx, statusFilter, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.PaymentEntry, 0, len(students))
	for _, st := range students {
		result = append(result, &api.PaymentEntry{
			ID:           st.ID,
			Name:         st.Name,
			Batch:        st.Batch,
			PaidAmount:   st.PaidAmount,
			TotalAmount:  st.TotalAmount,
			Status:       string(st.Status),
			Photo:        st.Photo,
			ValidityFrom: formatDatePtr(st.ValidityFrom),
			ValidityTo:   formatDatePtr(st.ValidityTo),
		})
	}

	return result, nil
}

// UpdatePayment sets a new paid amount against the stored total,
// re-derives the status and fills the validity window when the payment
// settles. Over-payment is rejected, not clamped.
func (s *Service) UpdatePayment(ctx context.Context, id string, req *api.PaymentUpdateRequest) (*api.StudentResponse, error) {
	const op = "service.UpdatePayment"

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "paid_amount must not be negative"})
	}

	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.PaidAmount > st.TotalAmount {
		return nil, fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "paid_amount exceeds total_amount"})
	}

	st.PaidAmount = req.PaidAmount
	st.Status = fees.Status(st.PaidAmount, st.TotalAmount)
	st.ValidityFrom, st.ValidityTo = fees.ValidityWindow(st.ValidityFrom, st.ValidityTo, st.Status, s.now())

	// Seat is untouched here, so no lock or occupant check is needed.
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	if err := s.store.UpdateStudent(ctx, tx, st); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return s.getStudentResponse(ctx, id)
}

// buildStudent turns a draft into a storage record with the derived
// fields recomputed server-side. existing is nil on create.
func (s *Service) buildStudent(ctx context.Context, req *api.StudentRequest, existing *models.Student) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &response.ValidationError{Message: "name, phone, address and admission_date are required"}
	}

	admission, err := time.Parse(dateLayout, req.AdmissionDate)
	if err != nil {
		return nil, &response.ValidationError{Message: "invalid admission_date"}
	}

	validityFrom, err := parseDatePtr(req.ValidityFrom)
	if err != nil {
		return nil, &response.ValidationError{Message: "invalid validity_from"}
	}

	validityTo, err := parseDatePtr(req.ValidityTo)
	if err != nil {
		return nil, &response.ValidationError{Message: "invalid validity_to"}
	}

	// The selection is a set; a label submitted twice is stored and
	// billed once.
	batch := dedupeLabels(req.Batch)

	// Total is snapshotted from the catalog as of this edit. Labels of
	// since-deleted batches contribute nothing.
	catalog, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, err
	}

	total := fees.Total(batch, catalog)
	if req.PaidAmount > total {
		return nil, &response.ValidationError{Message: "paid_amount exceeds total_amount"}
	}

	status := fees.Status(req.PaidAmount, total)

	// A directly edited "from" bound always rewrites "to".
	if validityFrom != nil && fromChanged(existing, validityFrom) {
		to := fees.RecomputeTo(*validityFrom)
		validityTo = &to
	}
	validityFrom, validityTo = fees.ValidityWindow(validityFrom, validityTo, status, s.now())

	st := &models.Student{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		Batch:         batch,
		AdmissionDate: admission,
		TotalAmount:   total,
		PaidAmount:    req.PaidAmount,
		Status:        status,
		Photo:         req.Photo,
		ValidityFrom:  validityFrom,
		ValidityTo:    validityTo,
		SeatNumber:    req.SeatNumber,
	}

	return st, nil
}

// dedupeLabels keeps the first occurrence of each label, preserving
// the submitted display order.
func dedupeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	return out
}

func fromChanged(existing *models.Student, from *time.Time) bool {
	if existing == nil || existing.ValidityFrom == nil {
		return true
	}
	return !existing.ValidityFrom.Equal(*from)
}

// writeStudent is the seat guard plus the actual write. For an
// assigned seat it takes the per-seat lock, re-checks occupancy inside
// the transaction (excluding the record being edited, so keeping one's
// own seat is never a conflict) and lets the partial unique index
// backstop whatever slips through.
func (s *Service) writeStudent(ctx context.Context, st *models.Student, existingID string) (string, error) {
	seat := st.SeatNumber

	if seat > 0 {
		locked, err := s.locker.LockSeat(ctx, seat, seatLockTTL)
		if err != nil {
			return "", fmt.Errorf("lock error: %w", err)
		}
		if !locked {
			return "", response.ErrLocked
		}
		defer func() {
			_ = s.locker.UnlockSeat(ctx, seat)
		}()
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if seat > 0 {
		occupant, err := s.store.FindSeatOccupant(ctx, tx, seat, existingID)
		if err == nil {
			_ = tx.Rollback()
			return "", &response.SeatConflictError{SeatNumber: seat, Occupant: occupant.Name}
		}
		if !errors.Is(err, response.ErrNotFound) {
			_ = tx.Rollback()
			return "", err
		}
	}

	var id string
	if existingID == "" {
		id, err = s.store.CreateStudent(ctx, tx, st)
	} else {
		id = existingID
		err = s.store.UpdateStudent(ctx, tx, st)
	}
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, response.ErrSeatConflict) {
			return "", s.seatConflict(ctx, seat, existingID)
		}
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return id, nil
}

// seatConflict names the occupant after an index-level violation. If
// the occupant vanished in the meantime the generic sentinel is
// returned; the caller may simply retry.
func (s *Service) seatConflict(ctx context.Context, seat int, excludeID string) error {
	name, err := s.store.SeatOccupantName(ctx, seat, excludeID)
	if err != nil {
		return response.ErrSeatConflict
	}

	return &response.SeatConflictError{SeatNumber: seat, Occupant: name}
}

func (s *Service) getStudentResponse(ctx context.Context, id string) (*api.StudentResponse, error) {
	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	return studentResponse(st), nil
}

func parseStatusFilter(status string) (*models.PaymentStatus, error) {
	if status == "" || status == "All" {
		return nil, nil
	}

	if !models.ValidStatus(status) {
		return nil, &response.ValidationError{Message: "status must be All, Paid, Partial or Unpaid"}
	}

	ps := models.PaymentStatus(status)

	return &ps, nil
}
