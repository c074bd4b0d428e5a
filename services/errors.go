package services

import "errors"

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrNotAuthor is returned by the ownership guard when a requester
	// tries to mutate a tweet they did not write.
	ErrNotAuthor = errors.New("requester is not the tweet author")
)

// ValidationError reports rejected user input. Nothing is persisted when
// one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
