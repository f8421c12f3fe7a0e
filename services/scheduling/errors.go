package scheduling

import (
	"errors"
	"fmt"
)

// Kind classifies a scheduling failure for callers that map it to a transport status.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindInvalidSlotID    Kind = "invalid_slot_id"
	KindInvalidRange     Kind = "invalid_range"
	KindStoreUnavailable Kind = "store_unavailable"
	KindInternal         Kind = "internal"
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Kind() Kind    { return KindValidation }

// ConflictError reports a transition the slot's current state does not allow.
type ConflictError struct {
	SlotID string
	Reason string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("slot %s is %s", e.SlotID, e.Reason) }
func (e *ConflictError) Kind() Kind    { return KindConflict }

// NotFoundError reports a cancellation of a slot that holds no booking.
type NotFoundError struct {
	SlotID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("slot %s is not booked", e.SlotID) }
func (e *NotFoundError) Kind() Kind    { return KindNotFound }

type InvalidSlotIDError struct {
	SlotID string
	Reason string
}

func (e *InvalidSlotIDError) Error() string {
	return fmt.Sprintf("invalid slot id %q: %s", e.SlotID, e.Reason)
}
func (e *InvalidSlotIDError) Kind() Kind { return KindInvalidSlotID }

type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string { return e.Message }
func (e *InvalidRangeError) Kind() Kind    { return KindInvalidRange }

// StoreUnavailableError is a retryable failure to reach the booking store.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: booking store unavailable: %v", e.Op, e.Err)
}
func (e *StoreUnavailableError) Unwrap() error { return e.Err }
func (e *StoreUnavailableError) Kind() Kind    { return KindStoreUnavailable }

type kinded interface {
	error
	Kind() Kind
}

// KindOf returns the Kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}
