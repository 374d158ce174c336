package response

import (
	"errors"
	"fmt"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST    ErrCode = "REQUEST_FAILED"
	BAD_REQUEST       ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND         ErrCode = "NOT_FOUND"
	LOCKED            ErrCode = "LOCKED"
	VALIDATION_FAILED ErrCode = "VALIDATION_FAILED"
	SEAT_CONFLICT     ErrCode = "SEAT_CONFLICT"
	UNAUTHORIZED      ErrCode = "UNAUTHORIZED"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("resource not found")
	ErrLocked       = errors.New("resource is locked")
	ErrValidation   = errors.New("validation failed")
	ErrSeatConflict = errors.New("seat is already occupied")
	ErrUnauthorized = errors.New("unauthorized")
)

// SeatConflictError carries the occupant so handlers can surface
// "Seat N is already occupied by X" verbatim. It unwraps to
// ErrSeatConflict, so errors.Is keeps working at the boundary.
type SeatConflictError struct {
	SeatNumber int
	Occupant   string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("Seat %d is already occupied by %s", e.SeatNumber, e.Occupant)
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

// ValidationError carries the offending field message. Unwraps to
// ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
