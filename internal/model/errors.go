package model

import "errors"

// Shared by the storage adapters and the service layer.
var (
	ErrNotFound         = errors.New("not found")
	ErrVersionConflict  = errors.New("version conflict")
	ErrNotAuthenticated = errors.New("not authenticated")
)
