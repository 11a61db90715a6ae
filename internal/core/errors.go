package core

import "errors"

var (
	ErrCodeTooLarge    = errors.New("code exceeds the configured size limit")
	ErrArchiveDisabled = errors.New("review archive is disabled")
)

// FallbackReview is shown in place of a review whenever fetching it failed.
const FallbackReview = "Failed to get review. Please try again."
