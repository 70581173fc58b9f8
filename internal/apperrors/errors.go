package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource,
// typically because it belongs to a different user.
var ErrForbidden = errors.New("forbidden")

// ErrUnknownCurrency indicates that a currency code has no usable cached rate.
// Conversion must fail rather than silently assume a 1:1 rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrRateSourceUnavailable indicates that the external rate authority could not be
// reached (timeout, transport error or bad HTTP status). The refresh cycle is
// aborted and retried on the next tick; it is never surfaced to request paths.
var ErrRateSourceUnavailable = errors.New("rate source unavailable")

// ErrRateSourceMalformed indicates that the rate source responded, but the response
// is unusable (most importantly: the USD pivot quote is missing or non-positive).
var ErrRateSourceMalformed = errors.New("rate source response malformed")

// ErrWriteConflict indicates that a concurrent mutation raced on the same user's
// balance and the database aborted one of the transactions. Callers retry once
// before surfacing this as a transient failure.
var ErrWriteConflict = errors.New("concurrent balance write conflict")
