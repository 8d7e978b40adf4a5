package sheets

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

// NewClient creates a read-only Sheets client authenticated with an API key.
// A non-empty endpoint overrides the default Google endpoint.
func NewClient(ctx context.Context, apiKey, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return newClient(ctx, opts...)
}

// NewClientWithHTTP creates a client that sends every request through httpClient
// to endpoint. Credentials are left to httpClient.
func NewClientWithHTTP(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	return newClient(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ReadRange returns the raw value range for spreadsheetID and range_.
// A nil Values field means the API returned no values key.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, range_ string) (*sheets.ValueRange, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp, nil
}
