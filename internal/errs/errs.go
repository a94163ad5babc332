// Package errs classifies pipeline failures into four kinds: transient
// conditions are worth retrying, permanent ones are recorded and skipped,
// config errors abort the whole run, and data errors are specific to one
// entry. Only internal/geocode attaches kinds, and no caller reads them
// back with KindOf.
package errs

import "github.com/go-faster/errors"

// Kind categorizes an error for retry/abort decisions upstream.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransient
	KindPermanent
	KindConfig
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindConfig:
		return "config"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }

// Transient wraps err as a retryable failure (network blips, rate limits,
// temporary DB unavailability).
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: KindTransient, err: err}
}

// Permanent wraps err as a non-retryable failure for the current entry
// (malformed upstream data, a 4xx from a well-formed request).
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: KindPermanent, err: err}
}

// Config wraps err as a startup/configuration failure that should abort
// the run entirely rather than being attributed to one entry.
func Config(err error) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: KindConfig, err: err}
}

// Data wraps err as a problem with one specific entry's content (bad
// address, missing required field) that should be rejected, not retried.
func Data(err error) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: KindData, err: err}
}

// KindOf returns the classification attached by Transient/Permanent/
// Config/Data, or KindUnknown if err was never wrapped by this package.
func KindOf(err error) Kind {
	var ke *kindedError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}

// Wrap adds context to err without changing its classification.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf adds formatted context to err without changing its classification.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
