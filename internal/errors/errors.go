package errors

import "errors"

var (
	ErrProfileNotFound = errors.New("planner profile not found")
	ErrPublishFailed   = errors.New("build task publish failed")
)
