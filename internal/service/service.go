package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"library-service/api"
	"library-service/internal/lock"
	"library-service/internal/models"
	"library-service/pkg/response"
)

const recentStudentsLimit = 5

type Service struct {
	store         Store
	locker        lock.Locker
	adminPassword string
	validate      *validator.Validate
	now           func() time.Time
}

func NewService(store Store, locker lock.Locker, adminPassword string) *Service {
	return &Service{
		store:         store,
		locker:        locker,
		adminPassword: adminPassword,
		validate:      validator.New(),
		now:           time.Now,
	}
}

type Store interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Batches
	ListBatches(ctx context.Context) ([]models.Batch, error)
	SeedBatchesIfEmpty(ctx context.Context, seed []models.Batch) error
	CreateBatch(ctx context.Context, b *models.Batch) (string, error)
	GetBatch(ctx context.Context, id string) (*models.Batch, error)
	UpdateBatch(ctx context.Context, b *models.Batch) error
	DeleteBatch(ctx context.Context, id string) error

	// Students
	CreateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) (string, error)
	UpdateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context, status *models.PaymentStatus, query *string) ([]*models.Student, error)
	FindSeatOccupant(ctx context.Context, tx *sql.Tx, seat int, excludeID string) (*models.Student, error)
	SeatOccupantName(ctx context.Context, seat int, excludeID string) (string, error)

	// Dashboard
	DashboardCounts(ctx context.Context) (total, paid, partial, unpaid int, revenue int64, err error)
	RecentStudents(ctx context.Context, limit int) ([]*models.Student, error)

	// Admin
	GetAdminUser(ctx context.Context) (*models.AdminUser, error)
	SetBiometricCredential(ctx context.Context, credentialID string) error
}

// Batches

// ListBatches lazily seeds the default catalog when the store is
// empty, so a freshly provisioned deployment has the 8 standard
// time slots on first read. An intentionally emptied catalog re-seeds
// on the next read as well.
func (s *Service) ListBatches(ctx context.Context) ([]*api.BatchResponse, error) {
	const op = "service.ListBatches"

	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(batches) == 0 {
		if err := s.store.SeedBatchesIfEmpty(ctx, models.SeedBatches); err != nil {
			return nil, fmt.Errorf("%s: seed: %w", op, err)
		}

		batches, err = s.store.ListBatches(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	result := make([]*api.BatchResponse, 0, len(batches))
	for i := range batches {
		result = append(result, batchResponse(&batches[i]))
	}

	return result, nil
}

func (s *Service) CreateBatch(ctx context.Context, req *api.BatchRequest) (*api.BatchResponse, error) {
	const op = "service.CreateBatch"

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "time and price are required"})
	}

	batch := &models.Batch{
		Time:  req.Time,
		Price: req.Price,
	}

	id, err := s.store.CreateBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBatch(ctx, id)
}

func (s *Service) GetBatch(ctx context.Context, id string) (*api.BatchResponse, error) {
	const op = "service.GetBatch"

	batch, err := s.store.GetBatch(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return batchResponse(batch), nil
}

func (s *Service) UpdateBatch(ctx context.Context, id string, req *api.BatchRequest) (*api.BatchResponse, error) {
	const op = "service.UpdateBatch"

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "time and price are required"})
	}

	batch, err := s.store.GetBatch(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	batch.Time = req.Time
	batch.Price = req.Price

	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBatch(ctx, id)
}

func (s *Service) DeleteBatch(ctx context.Context, id string) error {
	const op = "service.DeleteBatch"

	if err := s.store.DeleteBatch(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Dashboard

func (s *Service) DashboardStats(ctx context.Context) (*api.DashboardResponse, error) {
	const op = "service.DashboardStats"

	total, paid, partial, unpaid, revenue, err := s.store.DashboardCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, err := s.store.RecentStudents(ctx, recentStudentsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recentResult := make([]api.RecentStudent, 0, len(recent))
	for _, st := range recent {
		recentResult = append(recentResult, api.RecentStudent{
			ID:        st.ID,
			Name:      st.Name,
			Batch:     st.Batch,
			Status:    string(st.Status),
			CreatedAt: st.CreatedAt,
		})
	}

	return &api.DashboardResponse{
		Stats: api.DashboardStats{
			TotalStudents:   total,
			PaidStudents:    paid,
			PartialStudents: partial,
			UnpaidStudents:  unpaid,
			TotalRevenue:    revenue,
		},
		RecentStudents: recentResult,
	}, nil
}

// Auth

// Login checks the single shared admin secret from config. There is no
// server-side session; the client keeps its own gate state.
func (s *Service) Login(ctx context.Context, req *api.LoginRequest) error {
	const op = "service.Login"

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "password is required"})
	}

	if req.Password != s.adminPassword {
		return fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	return nil
}

func (s *Service) BiometricCredential(ctx context.Context) (*api.CredentialResponse, error) {
	const op = "service.BiometricCredential"

	user, err := s.store.GetAdminUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.CredentialResponse{CredentialID: user.BiometricCredentialID}, nil
}

// RegisterBiometric always replaces the stored credential.
func (s *Service) RegisterBiometric(ctx context.Context, req *api.RegisterCredentialRequest) error {
	const op = "service.RegisterBiometric"

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", op, &response.ValidationError{Message: "credential_id is required"})
	}

	if err := s.store.SetBiometricCredential(ctx, req.CredentialID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DTO mapping

const dateLayout = "2006-01-02"

func batchResponse(b *models.Batch) *api.BatchResponse {
	return &api.BatchResponse{
		ID:        b.ID,
		Time:      b.Time,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
	}
}

func studentResponse(st *models.Student) *api.StudentResponse {
	return &api.StudentResponse{
		ID:            st.ID,
		Name:          st.Name,
		Phone:         st.Phone,
		Address:       st.Address,
		Batch:         st.Batch,
		AdmissionDate: st.AdmissionDate.Format(dateLayout),
		TotalAmount:   st.TotalAmount,
		PaidAmount:    st.PaidAmount,
		Status:        string(st.Status),
		Photo:         st.Photo,
		ValidityFrom:  formatDatePtr(st.ValidityFrom),
		ValidityTo:    formatDatePtr(st.ValidityTo),
		SeatNumber:    st.SeatNumber,
		CreatedAt:     st.CreatedAt,
		UpdatedAt:     st.UpdatedAt,
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
