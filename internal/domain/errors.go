package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// path or entity is absent from the remote tree.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidIndex is returned when a day or activity index is outside the
// current bounds of the stored itinerary.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidIndex = errors.New("invalid index")

// ErrInvalidShareToken is returned when a share link fails to decode at
// either nesting layer or is missing a required parameter.
// Handlers should map this to HTTP 422.
var ErrInvalidShareToken = errors.New("invalid share token")

// ErrStore is returned on transport or decoding failure from the remote
// tree. Handlers should map this to HTTP 500.
var ErrStore = errors.New("store error")

// ErrPermissionDenied is returned when the acting identity may not mutate
// the plan. Handlers should map this to HTTP 403.
var ErrPermissionDenied = errors.New("permission denied")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")
