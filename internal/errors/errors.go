package errors

import (
	"errors"
	"fmt"
)

// AuthenticationError signals a missing or invalid webhook signature.
// Deliveries failing authentication are rejected, never retried internally.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

func IsAuthenticationError(err error) (*AuthenticationError, bool) {
	var ae *AuthenticationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// MalformedPayloadError signals a request body that could not be parsed.
type MalformedPayloadError struct {
	Message string
	Cause   error
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Cause
}

func NewMalformedPayloadError(message string, cause error) *MalformedPayloadError {
	return &MalformedPayloadError{Message: message, Cause: cause}
}

func IsMalformedPayloadError(err error) (*MalformedPayloadError, bool) {
	var me *MalformedPayloadError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// RemoteCallError signals a failed call against Odoo or WooCommerce. The
// current reconciliation aborts without a partial commit; nothing is
// retried internally.
type RemoteCallError struct {
	Message string
	Cause   error
}

func (e *RemoteCallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RemoteCallError) Unwrap() error {
	return e.Cause
}

func NewRemoteCallError(message string, cause error) *RemoteCallError {
	return &RemoteCallError{Message: message, Cause: cause}
}

func IsRemoteCallError(err error) (*RemoteCallError, bool) {
	var re *RemoteCallError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// PartialBatchError aggregates per-row failures of one sync-job run. The
// run always completes its full batch before reporting this.
type PartialBatchError struct {
	Failed int
	Total  int
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%d of %d rows failed", e.Failed, e.Total)
}

func NewPartialBatchError(failed, total int) *PartialBatchError {
	return &PartialBatchError{Failed: failed, Total: total}
}

func IsPartialBatchError(err error) (*PartialBatchError, bool) {
	var pe *PartialBatchError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
