package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is matched by every error caused by bad user input. These are
	// fatal and always returned before any network call.
	ErrInput = errors.New("invalid input")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidNetwork ...
	ErrInvalidNetwork = errors.New("invalid network")
	// ErrInvalidPath is returned when a template does not compose into a
	// valid derivation path.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrInvalidDescriptor is returned when descriptors can not be built for
	// a template on the selected network.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrStateStore is returned when the state store of a wallet can not be
	// opened.
	ErrStateStore = errors.New("state store unavailable")
	// ErrSync ...
	ErrSync = errors.New("sync failed")
	// ErrFeeUnavailable is returned when the fee estimates lack the target.
	ErrFeeUnavailable = errors.New("fee rate unavailable")
	// ErrTxBuild ...
	ErrTxBuild = errors.New("failed to build transaction")
	// ErrSign ...
	ErrSign = errors.New("failed to sign transaction")
	// ErrBroadcast ...
	ErrBroadcast = errors.New("failed to broadcast transaction")

	// ErrInvalidStateTransition ...
	ErrInvalidStateTransition = errors.New("invalid wallet state transition")
	// ErrStaleBalance is returned when a balance is requested from a store
	// that was not synced during the current run.
	ErrStaleBalance = errors.New("balance not synced in current run")
)

// InputError wraps one of the input sentinels with the reason the input was
// rejected.
type InputError struct {
	Kind  error
	Cause error
}

// NewInputError ...
func NewInputError(kind, cause error) *InputError {
	return &InputError{kind, cause}
}

func (e *InputError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

func (e *InputError) Is(target error) bool {
	return target == ErrInput || target == e.Kind
}

// WalletError is an error scoped to a single template. It never aborts the
// sweep of other templates.
type WalletError struct {
	Template string
	Stage    error
	Cause    error
}

// NewWalletError ...
func NewWalletError(template string, stage, cause error) *WalletError {
	return &WalletError{template, stage, cause}
}

func (e *WalletError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Template, e.Stage)
	}
	if errors.Is(e.Cause, e.Stage) {
		return fmt.Sprintf("%s: %s", e.Template, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Template, e.Stage, e.Cause)
}

func (e *WalletError) Unwrap() error {
	return e.Cause
}

func (e *WalletError) Is(target error) bool {
	return target == e.Stage
}

// SyncError is returned for a wallet whose chain scan or state update
// failed.
type SyncError struct {
	Template string
	Cause    error
}

// NewSyncError ...
func NewSyncError(template string, cause error) *SyncError {
	return &SyncError{template, cause}
}

func (e *SyncError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Template, ErrSync)
	}
	return fmt.Sprintf("%s: %s: %s", e.Template, ErrSync, e.Cause)
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}

func (e *SyncError) Is(target error) bool {
	return target == ErrSync
}

// TemplateOf returns the template a wallet scoped error belongs to.
func TemplateOf(err error) (string, bool) {
	var walletErr *WalletError
	if errors.As(err, &walletErr) {
		return walletErr.Template, true
	}
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Template, true
	}
	return "", false
}
