package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET request to url with the query parameters appended.
	// Returns the response body on a 2xx status, a *helpers.FetchError on any
	// other status, and a *helpers.NetworkError on transport failure.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
