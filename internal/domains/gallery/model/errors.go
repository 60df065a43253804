package model

import "errors"

const (
	ErrCodePhotoNotFound  = "GAL001"
	ErrCodeInvalidPayload = "GAL002"
	ErrCodeStorageFailure = "GAL003"
)

var (
	ErrPhotoNotFound   = errors.New("gallery photo not found")
	ErrCommentNotFound = errors.New("comment not found")
)
