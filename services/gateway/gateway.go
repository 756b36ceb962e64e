// Package gateway is the boundary to the remote catalog service. Everything
// the engine knows about the network lives behind the Gateway interface so
// tests can inject deterministic fakes.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"marquee/models"
)

// Gateway retrieves catalog pages and category lists from the remote
// service. Failures are reported as *NetworkError. An empty page means the
// stream has no more pages.
type Gateway interface {
	FetchPage(ctx context.Context, mediaType models.MediaType, page int) ([]models.MediaItem, error)
	FetchCategories(ctx context.Context) ([]models.Category, error)
}

// NetworkError wraps any transport or protocol failure while talking to the
// remote catalog.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
