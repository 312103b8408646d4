package driven

import "context"

// RemoteReader fetches a URL's content and extracts it with the format
// reader matching the downloaded file's suffix.
type RemoteReader interface {
	// ReadURL downloads the URL to a scoped temporary file, delegates
	// extraction to the reader registry using the derived suffix, and
	// removes the temporary file before returning on every path.
	ReadURL(ctx context.Context, url string) (*Payload, error)
}
