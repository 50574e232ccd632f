package repository

import "errors"

// Business-rule errors raised by the store. Anything else coming out of a
// store method is a persistence failure. Absence ("not found", including rows
// the caller does not own) is reported as a nil result with a nil error.
var (
	// ErrDuplicateTagName is returned when creating or renaming a tag would
	// collide with another tag of the same user.
	ErrDuplicateTagName = errors.New("tag name already exists for this user")

	// ErrProjectRequired is returned when a task is created without a project.
	ErrProjectRequired = errors.New("task requires a project")

	// ErrNotOwned aborts a reorder batch when one of the referenced tasks or
	// projects cannot be resolved for the calling user.
	ErrNotOwned = errors.New("task or project not found or not accessible")
)
