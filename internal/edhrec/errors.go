package edhrec

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is matched by every *FetchError.
	ErrFetch = errors.New("fetch failed")
	// ErrNotFound means the page does not contain the embedded card data marker.
	ErrNotFound = errors.New("embedded card data not found")
	// ErrParse means the repaired card data is not valid JSON.
	ErrParse = errors.New("failed to parse embedded card data")
)

// FetchError is returned for a non-200 response (Status is set) or a
// transport failure (Err is set).
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status code %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
