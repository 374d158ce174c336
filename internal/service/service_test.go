package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/api"
	"library-service/internal/lock"
	"library-service/internal/models"
	"library-service/pkg/response"
)

// ---- stub sql driver so the fake store can hand out real *sql.Tx ----

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("servicetest", stubDriver{})
}

// ---- in-memory Store fake ----

type fakeStore struct {
	db       *sql.DB
	mu       sync.Mutex
	batches  []models.Batch
	students map[string]*models.Student
	admin    models.AdminUser
	seeds    int
	seq      int
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	db, err := sql.Open("servicetest", "")
	require.NoError(t, err)

	return &fakeStore{
		db:       db,
		students: make(map[string]*models.Student),
		admin:    models.AdminUser{Username: "admin"},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return f.db.BeginTx(ctx, nil)
}

func (f *fakeStore) ListBatches(ctx context.Context) ([]models.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Batch, len(f.batches))
	copy(out, f.batches)
	return out, nil
}

// SeedBatchesIfEmpty serializes on the mutex and rechecks emptiness
// inside it, like the real store's advisory lock plus count recheck.
func (f *fakeStore) SeedBatchesIfEmpty(ctx context.Context, seed []models.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.batches) > 0 {
		return nil
	}
	f.seeds++
	for _, b := range seed {
		b.ID = f.nextID("batch")
		f.batches = append(f.batches, b)
	}
	return nil
}

func (f *fakeStore) CreateBatch(ctx context.Context, b *models.Batch) (string, error) {
	nb := *b
	nb.ID = f.nextID("batch")
	f.batches = append(f.batches, nb)
	return nb.ID, nil
}

func (f *fakeStore) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	for i := range f.batches {
		if f.batches[i].ID == id {
			b := f.batches[i]
			return &b, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) UpdateBatch(ctx context.Context, b *models.Batch) error {
	for i := range f.batches {
		if f.batches[i].ID == b.ID {
			f.batches[i] = *b
			return nil
		}
	}
	return response.ErrNotFound
}

func (f *fakeStore) DeleteBatch(ctx context.Context, id string) error {
	for i := range f.batches {
		if f.batches[i].ID == id {
			f.batches = append(f.batches[:i], f.batches[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) CreateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) (string, error) {
	ns := *st
	ns.ID = f.nextID("student")
	f.seq++
	ns.CreatedAt = time.Unix(int64(f.seq), 0)
	ns.UpdatedAt = ns.CreatedAt
	f.students[ns.ID] = &ns
	return ns.ID, nil
}

func (f *fakeStore) UpdateStudent(ctx context.Context, tx *sql.Tx, st *models.Student) error {
	existing, ok := f.students[st.ID]
	if !ok {
		return response.ErrNotFound
	}
	ns := *st
	ns.CreatedAt = existing.CreatedAt
	ns.UpdatedAt = time.Unix(int64(f.seq), 0)
	f.students[st.ID] = &ns
	return nil
}

func (f *fakeStore) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	st, ok := f.students[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStore) DeleteStudent(ctx context.Context, id string) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStore) sorted() []*models.Student {
	out := make([]*models.Student, 0, len(f.students))
	for _, st := range f.students {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeStore) ListStudents(ctx context.Context, status *models.PaymentStatus, query *string) ([]*models.Student, error) {
	out := make([]*models.Student, 0)
	for _, st := range f.sorted() {
		if status != nil && st.Status != *status {
			continue
		}
		if query != nil {
			q := strings.ToLower(*query)
			if !strings.Contains(strings.ToLower(st.Name), q) && !strings.Contains(st.Phone, q) {
				continue
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeStore) FindSeatOccupant(ctx context.Context, tx *sql.Tx, seat int, excludeID string) (*models.Student, error) {
	for _, st := range f.students {
		if st.SeatNumber == seat && st.ID != excludeID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) SeatOccupantName(ctx context.Context, seat int, excludeID string) (string, error) {
	st, err := f.FindSeatOccupant(ctx, nil, seat, excludeID)
	if err != nil {
		return "", err
	}
	return st.Name, nil
}

func (f *fakeStore) DashboardCounts(ctx context.Context) (total, paid, partial, unpaid int, revenue int64, err error) {
	for _, st := range f.students {
		total++
		switch st.Status {
		case models.StatusPaid:
			paid++
		case models.StatusPartial:
			partial++
		default:
			unpaid++
		}
		revenue += st.PaidAmount
	}
	return total, paid, partial, unpaid, revenue, nil
}

func (f *fakeStore) RecentStudents(ctx context.Context, limit int) ([]*models.Student, error) {
	out := f.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetAdminUser(ctx context.Context) (*models.AdminUser, error) {
	cp := f.admin
	return &cp, nil
}

func (f *fakeStore) SetBiometricCredential(ctx context.Context, credentialID string) error {
	f.admin.BiometricCredentialID = &credentialID
	return nil
}

// ---- locker fakes ----

type nopLocker struct{}

func (nopLocker) LockSeat(ctx context.Context, seat int, ttl time.Duration) (bool, error) {
	return true, nil
}
func (nopLocker) UnlockSeat(ctx context.Context, seat int) error { return nil }

type busyLocker struct{}

func (busyLocker) LockSeat(ctx context.Context, seat int, ttl time.Duration) (bool, error) {
	return false, nil
}
func (busyLocker) UnlockSeat(ctx context.Context, seat int) error { return nil }

var _ lock.Locker = nopLocker{}

// ---- helpers ----

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()

	store := newFakeStore(t)
	s := NewService(store, nopLocker{}, "secret")
	s.now = func() time.Time {
		return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	}

	return s, store
}

func draft(name string, seat int) *api.StudentRequest {
	return &api.StudentRequest{
		Name:          name,
		Phone:         "9876543210",
		Address:       "12 Station Road",
		Batch:         []string{"6:00 AM - 10:00 AM"},
		AdmissionDate: "2024-01-10",
		SeatNumber:    seat,
	}
}

// ---- batches ----

func TestListBatches_SeedsEmptyCatalogOnce(t *testing.T) {
	s, store := newTestService(t)

	first, err := s.ListBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 8)
	assert.Equal(t, "6:00 AM - 10:00 AM", first[0].Time)
	assert.Equal(t, int64(250), first[0].Price)
	assert.Equal(t, "All Shift", first[7].Time)

	second, err := s.ListBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 8)
	assert.Equal(t, 1, store.seeds)

	// Same persisted entries, not a fresh seed.
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestListBatches_ReseedsFullyEmptiedCatalog(t *testing.T) {
	s, store := newTestService(t)

	batches, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	for _, b := range batches {
		require.NoError(t, s.DeleteBatch(context.Background(), b.ID))
	}

	again, err := s.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 8)
	assert.Equal(t, 2, store.seeds)
}

func TestListBatches_ConcurrentFirstReadsSeedOnce(t *testing.T) {
	s, store := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batches, err := s.ListBatches(context.Background())
			assert.NoError(t, err)
			assert.Len(t, batches, 8)
		}()
	}
	wg.Wait()

	batches, err := s.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, batches, 8)
	assert.Equal(t, 1, store.seeds)
}

func TestCreateBatch_Validation(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateBatch(context.Background(), &api.BatchRequest{Time: "", Price: 250})
	assert.ErrorIs(t, err, response.ErrValidation)

	_, err = s.CreateBatch(context.Background(), &api.BatchRequest{Time: "6:00 AM - 10:00 AM", Price: 0})
	assert.ErrorIs(t, err, response.ErrValidation)

	batch, err := s.CreateBatch(context.Background(), &api.BatchRequest{Time: "6:00 AM - 10:00 AM", Price: 250})
	require.NoError(t, err)
	assert.NotEmpty(t, batch.ID)
}

func TestUpdateBatch_NotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.UpdateBatch(context.Background(), "missing", &api.BatchRequest{Time: "x", Price: 1})
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestDeleteBatch_Idempotent(t *testing.T) {
	s, _ := newTestService(t)

	batch, err := s.CreateBatch(context.Background(), &api.BatchRequest{Time: "6:00 AM - 10:00 AM", Price: 250})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBatch(context.Background(), batch.ID))
	require.NoError(t, s.DeleteBatch(context.Background(), batch.ID))
}

// ---- students & seat guard ----

func TestCreateStudent_SeatConflictNamesOccupant(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateStudent(context.Background(), draft("Asha Verma", 5))
	require.NoError(t, err)

	_, err = s.CreateStudent(context.Background(), draft("Rohan Gupta", 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, response.ErrSeatConflict)

	var seatErr *response.SeatConflictError
	require.ErrorAs(t, err, &seatErr)
	assert.Equal(t, 5, seatErr.SeatNumber)
	assert.Equal(t, "Asha Verma", seatErr.Occupant)
	assert.Equal(t, "Seat 5 is already occupied by Asha Verma", seatErr.Error())
}

func TestUpdateStudent_KeepingOwnSeatIsNotAConflict(t *testing.T) {
	s, _ := newTestService(t)

	created, err := s.CreateStudent(context.Background(), draft("Asha Verma", 5))
	require.NoError(t, err)

	req := draft("Asha Verma", 5)
	req.Address = "14 Station Road"

	updated, err := s.UpdateStudent(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.SeatNumber)
	assert.Equal(t, "14 Station Road", updated.Address)
}

func TestUpdateStudent_MovingOntoOccupiedSeatFails(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateStudent(context.Background(), draft("Asha Verma", 5))
	require.NoError(t, err)

	other, err := s.CreateStudent(context.Background(), draft("Rohan Gupta", 6))
	require.NoError(t, err)

	_, err = s.UpdateStudent(context.Background(), other.ID, draft("Rohan Gupta", 5))
	assert.ErrorIs(t, err, response.ErrSeatConflict)
}

func TestCreateStudent_UnassignedSeatsNeverConflict(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateStudent(context.Background(), draft("Asha Verma", 0))
	require.NoError(t, err)

	_, err = s.CreateStudent(context.Background(), draft("Rohan Gupta", 0))
	require.NoError(t, err)
}

func TestCreateStudent_LockedSeat(t *testing.T) {
	store := newFakeStore(t)
	s := NewService(store, busyLocker{}, "secret")

	_, err := s.CreateStudent(context.Background(), draft("Asha Verma", 5))
	assert.ErrorIs(t, err, response.ErrLocked)
}

func TestCreateStudent_RequiredFields(t *testing.T) {
	s, _ := newTestService(t)

	req := draft("Asha Verma", 0)
	req.Phone = ""

	_, err := s.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, response.ErrValidation)
}

func TestCreateStudent_SeatRange(t *testing.T) {
	s, _ := newTestService(t)

	req := draft("Asha Verma", 101)
	_, err := s.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, response.ErrValidation)
}

func TestCreateStudent_TotalSnapshottedFromCatalog(t *testing.T) {
	s, _ := newTestService(t)

	// Seed the catalog.
	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.Batch = []string{"6:00 AM - 10:00 AM", "10:00 AM - 2:00 PM"}
	req.TotalAmount = 9999 // client-sent total is a preview, not truth

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(550), created.TotalAmount)
}

func TestCreateStudent_UnknownBatchLabelContributesZero(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.Batch = []string{"6:00 AM - 10:00 AM", "Midnight Shift"}

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(250), created.TotalAmount)
}

func TestCreateStudent_DuplicateBatchLabelsCountOnce(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.Batch = []string{"6:00 AM - 10:00 AM", "6:00 AM - 10:00 AM"}

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(250), created.TotalAmount)
	assert.Equal(t, []string{"6:00 AM - 10:00 AM"}, created.Batch)
}

func TestCreateStudent_StatusDerivedServerSide(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.PaidAmount = 250
	req.Status = "Unpaid" // client disagrees; server derives

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Paid", created.Status)
}

func TestCreateStudent_OverpaymentRejected(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.PaidAmount = 9000

	_, err = s.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, response.ErrValidation)
}

func TestCreateStudent_PaidFillsValidityWindow(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.PaidAmount = 250

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", created.ValidityFrom)
	assert.Equal(t, "2024-02-15", created.ValidityTo)
}

func TestCreateStudent_EditedFromRewritesTo(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 0)
	req.PaidAmount = 250
	req.ValidityFrom = "2024-01-31"
	req.ValidityTo = "2024-06-01" // stale; "from" was edited

	created, err := s.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", created.ValidityFrom)
	assert.Equal(t, "2024-02-29", created.ValidityTo)
}

func TestUpdateStudent_NotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.UpdateStudent(context.Background(), "missing", draft("Asha Verma", 0))
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestDeleteStudent_Idempotent(t *testing.T) {
	s, _ := newTestService(t)

	created, err := s.CreateStudent(context.Background(), draft("Asha Verma", 0))
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudent(context.Background(), created.ID))
	require.NoError(t, s.DeleteStudent(context.Background(), created.ID))
}

func TestListStudents_FilterAndSearch(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	paidReq := draft("Asha Verma", 0)
	paidReq.PaidAmount = 250
	_, err = s.CreateStudent(context.Background(), paidReq)
	require.NoError(t, err)

	_, err = s.CreateStudent(context.Background(), draft("Rohan Gupta", 0))
	require.NoError(t, err)

	all, err := s.ListStudents(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "Rohan Gupta", all[0].Name)

	paid, err := s.ListStudents(context.Background(), "Paid", "")
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "Asha Verma", paid[0].Name)

	byName, err := s.ListStudents(context.Background(), "All", "asha")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	_, err = s.ListStudents(context.Background(), "Overdue", "")
	assert.ErrorIs(t, err, response.ErrValidation)
}

// ---- payments ----

func TestUpdatePayment_DerivesStatusAndValidity(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	created, err := s.CreateStudent(context.Background(), draft("Asha Verma", 0))
	require.NoError(t, err)
	assert.Equal(t, "Unpaid", created.Status)

	partial, err := s.UpdatePayment(context.Background(), created.ID, &api.PaymentUpdateRequest{PaidAmount: 100})
	require.NoError(t, err)
	assert.Equal(t, "Partial", partial.Status)
	assert.Empty(t, partial.ValidityFrom)

	paid, err := s.UpdatePayment(context.Background(), created.ID, &api.PaymentUpdateRequest{PaidAmount: 250})
	require.NoError(t, err)
	assert.Equal(t, "Paid", paid.Status)
	assert.Equal(t, "2024-01-15", paid.ValidityFrom)
	assert.Equal(t, "2024-02-15", paid.ValidityTo)
}

func TestUpdatePayment_OverpaymentRejected(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	created, err := s.CreateStudent(context.Background(), draft("Asha Verma", 0))
	require.NoError(t, err)

	_, err = s.UpdatePayment(context.Background(), created.ID, &api.PaymentUpdateRequest{PaidAmount: 9000})
	assert.ErrorIs(t, err, response.ErrValidation)
}

func TestUpdatePayment_NotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.UpdatePayment(context.Background(), "missing", &api.PaymentUpdateRequest{PaidAmount: 10})
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestPaymentsList_Projection(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	req := draft("Asha Verma", 3)
	req.PaidAmount = 100
	_, err = s.CreateStudent(context.Background(), req)
	require.NoError(t, err)

	entries, err := s.PaymentsList(context.Background(), "Partial")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Asha Verma", entries[0].Name)
	assert.Equal(t, int64(100), entries[0].PaidAmount)
	assert.Equal(t, int64(250), entries[0].TotalAmount)
}

// ---- dashboard ----

func TestDashboardStats_EmptyState(t *testing.T) {
	s, _ := newTestService(t)

	stats, err := s.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Stats.TotalStudents)
	assert.Equal(t, 0, stats.Stats.PaidStudents)
	assert.Equal(t, 0, stats.Stats.PartialStudents)
	assert.Equal(t, 0, stats.Stats.UnpaidStudents)
	assert.Equal(t, int64(0), stats.Stats.TotalRevenue)
	assert.Empty(t, stats.RecentStudents)
}

func TestDashboardStats_CountsAndRecent(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.ListBatches(context.Background())
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		req := draft(fmt.Sprintf("Student %d", i), 0)
		if i%2 == 0 {
			req.PaidAmount = 250
		}
		_, err := s.CreateStudent(context.Background(), req)
		require.NoError(t, err)
	}

	stats, err := s.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.Stats.TotalStudents)
	assert.Equal(t, 4, stats.Stats.PaidStudents)
	assert.Equal(t, 3, stats.Stats.UnpaidStudents)
	assert.Equal(t, int64(1000), stats.Stats.TotalRevenue)
	require.Len(t, stats.RecentStudents, 5)
	assert.Equal(t, "Student 6", stats.RecentStudents[0].Name)
}

// ---- auth ----

func TestLogin(t *testing.T) {
	s, _ := newTestService(t)

	assert.NoError(t, s.Login(context.Background(), &api.LoginRequest{Password: "secret"}))
	assert.ErrorIs(t, s.Login(context.Background(), &api.LoginRequest{Password: "wrong"}), response.ErrUnauthorized)
	assert.ErrorIs(t, s.Login(context.Background(), &api.LoginRequest{}), response.ErrValidation)
}

func TestBiometricCredential_RegisterOverwrites(t *testing.T) {
	s, _ := newTestService(t)

	cred, err := s.BiometricCredential(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cred.CredentialID)

	require.NoError(t, s.RegisterBiometric(context.Background(), &api.RegisterCredentialRequest{CredentialID: "cred-1"}))
	require.NoError(t, s.RegisterBiometric(context.Background(), &api.RegisterCredentialRequest{CredentialID: "cred-2"}))

	cred, err = s.BiometricCredential(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred.CredentialID)
	assert.Equal(t, "cred-2", *cred.CredentialID)
}
