package models

import "time"

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "Paid"
	StatusPartial PaymentStatus = "Partial"
	StatusUnpaid  PaymentStatus = "Unpaid"
)

// ValidStatus reports whether s is one of the three payment states.
// "All" is handled by the callers that parse filters.
func ValidStatus(s string) bool {
	switch PaymentStatus(s) {
	case StatusPaid, StatusPartial, StatusUnpaid:
		return true
	}
	return false
}

// Batch is a time-slot offering. Price is whole currency units; the
// catalog never stores fractions.
type Batch struct {
	ID        string    `db:"batch_id"`
	Time      string    `db:"time_label"`
	Price     int64     `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}

// Student carries the denormalized fee fields: TotalAmount is a
// snapshot of the catalog prices at edit time, Status is always
// derived from PaidAmount/TotalAmount before a write.
type Student struct {
	ID            string        `db:"student_id"`
	Name          string        `db:"name"`
	Phone         string        `db:"phone"`
	Address       string        `db:"address"`
	Batch         []string      `db:"batch"`
	AdmissionDate time.Time     `db:"admission_date"`
	TotalAmount   int64         `db:"total_amount"`
	PaidAmount    int64         `db:"paid_amount"`
	Status        PaymentStatus `db:"status"`
	Photo         string        `db:"photo"`
	ValidityFrom  *time.Time    `db:"validity_from"`
	ValidityTo    *time.Time    `db:"validity_to"`
	SeatNumber    int           `db:"seat_number"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// AdminUser is the singleton auth record. The password itself lives in
// config; only the biometric credential is persisted.
type AdminUser struct {
	Username              string  `db:"username"`
	BiometricCredentialID *string `db:"biometric_credential_id"`
}

// SeedBatches is the default catalog inserted when the store is empty
// at first read.
var SeedBatches = []Batch{
	{Time: "6:00 AM - 10:00 AM", Price: 250},
	{Time: "10:00 AM - 2:00 PM", Price: 300},
	{Time: "2:00 PM - 6:00 PM", Price: 300},
	{Time: "6:00 PM - 10:00 PM", Price: 250},
	{Time: "6:00 AM - 2:00 PM", Price: 500},
	{Time: "10:00 AM - 6:00 PM", Price: 550},
	{Time: "2:00 PM - 10:00 PM", Price: 500},
	{Time: "All Shift", Price: 800},
}
