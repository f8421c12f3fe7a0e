package appointmentRepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrSlotTaken   = errors.New("slot already booked")
	ErrNotFound    = errors.New("appointment not found")
	ErrUnavailable = errors.New("booking store unavailable")
)

type unavailableError struct {
	op  string
	err error
}

func (e *unavailableError) Error() string {
	return e.op + ": booking store unavailable: " + e.err.Error()
}

func (e *unavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.err}
}

// isTransient reports whether err means the store could not be reached in time.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// wrap tags transient failures with ErrUnavailable and passes the rest through with op context.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrNotFound) {
		return err
	}
	if isTransient(err) {
		return &unavailableError{op: op, err: err}
	}
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }
