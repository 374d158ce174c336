package api

import "time"

// Calendar dates travel as "YYYY-MM-DD" strings, money as plain
// integers, ids as opaque strings. Timestamps (created_at/updated_at)
// are RFC3339.

type BatchRequest struct {
	Time  string `json:"time" validate:"required"`
	Price int64  `json:"price" validate:"required,gt=0"`
}

type BatchResponse struct {
	ID        string    `json:"id"`
	Time      string    `json:"time"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentRequest is the full draft the form submits. Status and the
// amounts are recomputed server-side; a client-sent status is ignored.
type StudentRequest struct {
	Name          string   `json:"name" validate:"required"`
	Phone         string   `json:"phone" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	Batch         []string `json:"batch"`
	AdmissionDate string   `json:"admission_date" validate:"required"`
	TotalAmount   int64    `json:"total_amount" validate:"gte=0"`
	PaidAmount    int64    `json:"paid_amount" validate:"gte=0"`
	Status        string   `json:"status"`
	Photo         string   `json:"photo"`
	ValidityFrom  string   `json:"validity_from"`
	ValidityTo    string   `json:"validity_to"`
	SeatNumber    int      `json:"seat_number" validate:"gte=0,lte=100"`
}

type StudentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Batch         []string  `json:"batch"`
	AdmissionDate string    `json:"admission_date"`
	TotalAmount   int64     `json:"total_amount"`
	PaidAmount    int64     `json:"paid_amount"`
	Status        string    `json:"status"`
	Photo         string    `json:"photo"`
	ValidityFrom  string    `json:"validity_from,omitempty"`
	ValidityTo    string    `json:"validity_to,omitempty"`
	SeatNumber    int       `json:"seat_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PaymentUpdateRequest struct {
	PaidAmount int64 `json:"paid_amount" validate:"gte=0"`
}

// PaymentEntry is the payment-list projection of a student.
type PaymentEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Batch        []string `json:"batch"`
	PaidAmount   int64    `json:"paid_amount"`
	TotalAmount  int64    `json:"total_amount"`
	Status       string   `json:"status"`
	Photo        string   `json:"photo"`
	ValidityFrom string   `json:"validity_from,omitempty"`
	ValidityTo   string   `json:"validity_to,omitempty"`
}

type DashboardStats struct {
	TotalStudents   int   `json:"total_students"`
	PaidStudents    int   `json:"paid_students"`
	PartialStudents int   `json:"partial_students"`
	UnpaidStudents  int   `json:"unpaid_students"`
	TotalRevenue    int64 `json:"total_revenue"`
}

type RecentStudent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Batch     []string  `json:"batch"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardResponse struct {
	Stats          DashboardStats  `json:"stats"`
	RecentStudents []RecentStudent `json:"recent_students"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type CredentialResponse struct {
	CredentialID *string `json:"credential_id"`
}

type RegisterCredentialRequest struct {
	CredentialID string `json:"credential_id" validate:"required"`
}
