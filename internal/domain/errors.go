package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPantryItemNotFound is returned when a pantry item does not exist
	ErrPantryItemNotFound = errors.New("pantry item not found")

	// ErrStoreFailure is returned when the pantry store cannot be read or written
	ErrStoreFailure = errors.New("pantry store failure")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrRateLimited is returned when the outbound rate limit cannot be honoured
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrSuggestionUnavailable is returned when the suggestion service fails permanently
	ErrSuggestionUnavailable = errors.New("suggestion service unavailable")

	// ErrSuggestionRetryable is returned for throttling and server-side failures (429, 5xx)
	ErrSuggestionRetryable = errors.New("suggestion service temporarily unavailable")

	// ErrMalformedSuggestion is returned when the suggestion payload cannot be decoded
	ErrMalformedSuggestion = errors.New("malformed suggestion response")
)
