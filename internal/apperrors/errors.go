package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProtected indicates an attempt to delete a built-in registry entry.
var ErrProtected = errors.New("entry is protected")

// ErrStorage wraps failures surfaced by the persistence collaborators.
// The core does not interpret or retry these.
var ErrStorage = errors.New("storage error")
