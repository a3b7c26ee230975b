package apperrors

import "errors"

var (
	// ErrStorageUnavailable means the local database could not be opened or
	// provisioned. Fatal to the whole subsystem; callers do not retry.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	ErrProjectNotFound = errors.New("project not found")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrKeyNotFound     = errors.New("key not found")
)
