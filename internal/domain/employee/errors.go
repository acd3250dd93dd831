package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrInvalidWorkerType       = errors.New("invalid worker type")
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
)
