package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"participant_board/internal/roster"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
)

var (
	// ErrTransport covers failed requests and non-success responses
	ErrTransport = errors.New("transport error")
	// ErrShape covers responses without values or without any data row
	ErrShape = errors.New("shape error")
)

// Fetcher reads the participant range and maps it to records
type Fetcher struct {
	client  *Client
	target  Target
	timeout time.Duration
}

func NewFetcher(client *Client, target Target, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  client,
		target:  target,
		timeout: timeout,
	}
}

// Fetch issues one read for the whole range. The returned error wraps
// ErrTransport or ErrShape.
func (f *Fetcher) Fetch(ctx context.Context) ([]roster.Record, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	log.Debug().
		Str("sheet", f.target.SheetName()).
		Str("range", f.target.Range).
		Msg("Reading participant range")

	resp, err := f.client.ReadRange(ctx, f.target.SpreadsheetID, f.target.Range)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: status %d: %v", ErrTransport, apiErr.Code, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.Values == nil {
		return nil, fmt.Errorf("%w: response has no values", ErrShape)
	}
	if len(resp.Values) < 2 {
		return nil, fmt.Errorf("%w: expected a header and at least one row, got %d rows", ErrShape, len(resp.Values))
	}

	records := ParseRecords(resp.Values)
	log.Debug().Int("records", len(records)).Msg("Retrieved participant records")
	return records, nil
}
