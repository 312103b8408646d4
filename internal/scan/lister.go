package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// listingDocument is the well-known name of the listing index served
// under a remote scan root. The document is a JSON array of
// path-segment arrays, one entry per file.
const listingDocument = "__INFO__"

// defaultListTimeout bounds a listing request.
const defaultListTimeout = 15 * time.Second

// Ensure ListingClient implements the interface.
var _ driven.FileLister = (*ListingClient)(nil)

// ListingClient fetches flat file listings over HTTP.
type ListingClient struct {
	client *resty.Client
}

// NewListingClient creates a listing client with the default timeout.
func NewListingClient() *ListingClient {
	return &ListingClient{client: resty.New().SetTimeout(defaultListTimeout)}
}

// List fetches the listing index under base and returns the files as
// slash-joined paths relative to base.
func (c *ListingClient) List(ctx context.Context, base string) ([]string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(base + listingDocument)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", base, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("list %s: unexpected status %d", base, resp.StatusCode())
	}

	var entries [][]string
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("parse listing of %s: %w", base, err)
	}

	files := make([]string, 0, len(entries))
	for _, segments := range entries {
		files = append(files, strings.Join(segments, "/"))
	}
	return files, nil
}
