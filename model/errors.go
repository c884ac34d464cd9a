package model

import "errors"

// Sentinel errors shared by the storage and manager services
var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)
