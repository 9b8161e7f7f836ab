package wall

import "errors"

var (
	// ErrEmptyText rejects blank submissions before they reach the store.
	ErrEmptyText = errors.New("wall: message text is empty")

	// ErrTextTooLong rejects oversized submissions before they reach the store.
	ErrTextTooLong = errors.New("wall: message text exceeds the maximum length")

	// ErrProfanity is a soft rejection: the matcher flagged the text.
	// It is reported to the submitter, not treated as a system fault.
	ErrProfanity = errors.New("wall: message blocked by the profanity filter")

	// ErrInvalidStatus rejects transitions to an unrecognized or
	// non-authorable status. Stored state is left untouched.
	ErrInvalidStatus = errors.New("wall: invalid target status")
)
