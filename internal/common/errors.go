package common

import "errors"

// Business logic errors
var (
	// Content errors
	ErrBlogNotFound = errors.New("blog not found")

	// Moderation errors
	ErrSubmissionNotFound = errors.New("submission not found")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)
