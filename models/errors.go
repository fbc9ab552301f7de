package models

import "errors"

// ErrDataLoad marks a missing or malformed dataset source. Loading is
// all-or-nothing: a single bad row fails the whole load, and the session
// cannot proceed without a valid dataset.
var ErrDataLoad = errors.New("dataset load failed")

// ErrInvalidProfile marks affordability input that fails validation.
// Recoverable: the caller may correct the input and resubmit.
var ErrInvalidProfile = errors.New("invalid affordability profile")
