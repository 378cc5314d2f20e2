package zendesk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/config"
)

// TransportError wraps network or HTTP level failures against the upstream
// export API. Fatal to the current sync run.
type TransportError struct {
	StartTime int64
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("zendesk transport failure at start_time=%d: %v", e.StartTime, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DeserializationError wraps a malformed upstream payload. Fatal to the
// current sync run.
type DeserializationError struct {
	StartTime int64
	Err       error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("zendesk malformed payload at start_time=%d: %v", e.StartTime, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// Client paginates the incremental ticket export API.
type Client struct {
	baseURL     string
	auth        string
	pageTimeout time.Duration
	maxRetries  uint64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient builds an export client from configuration.
func NewClient(cfg config.ZendeskConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		auth:        cfg.Authorization,
		pageTimeout: cfg.PageTimeout(),
		maxRetries:  uint64(cfg.MaxPageRetries),
		httpClient:  &http.Client{},
		logger:      logger,
	}
}

// Export is the accumulated result of a full pagination pass.
type Export struct {
	Tickets []RawTicket
	Pages   int
}

// FetchAllSince pulls every export page starting at the given checkpoint and
// returns the accumulated tickets in arrival order. The server advances the
// cursor: each response carries the end_time to request next, and an
// end_time equal to the start_time just requested signals the end of data.
// Incremental resumption is not implemented; callers pass 0 for a full
// export.
func (c *Client) FetchAllSince(ctx context.Context, checkpoint int64) (*Export, error) {
	export := &Export{}
	startTime := checkpoint

	for {
		c.logger.Info("loading export page",
			zap.Int64("start_time", startTime),
			zap.Int("pages_loaded", export.Pages))

		page, err := c.fetchPage(ctx, startTime)
		if err != nil {
			return nil, err
		}

		export.Tickets = append(export.Tickets, page.Tickets...)
		export.Pages++
		c.logger.Info("export page loaded",
			zap.Int("tickets", len(page.Tickets)),
			zap.Int64("end_time", page.EndTime))

		if page.EndTime == startTime {
			return export, nil
		}
		startTime = page.EndTime
	}
}

// fetchPage requests one export page, retrying transport failures with
// exponential backoff. Each attempt carries its own timeout so a hung
// upstream call cannot block the schedule indefinitely.
func (c *Client) fetchPage(ctx context.Context, startTime int64) (*exportPage, error) {
	operation := func() (*exportPage, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.pageTimeout)
		defer cancel()
		return c.requestPage(attemptCtx, startTime)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	page, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) requestPage(ctx context.Context, startTime int64) (*exportPage, error) {
	url := fmt.Sprintf("%s/incremental/tickets.json?start_time=%d", c.baseURL, startTime)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(&TransportError{StartTime: startTime, Err: err})
	}
	req.Header.Set("Authorization", "Basic "+c.auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{StartTime: startTime, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			StartTime: startTime,
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StartTime: startTime, Err: err}
	}

	page, err := decodePage(body)
	if err != nil {
		// A malformed payload will not improve on retry.
		return nil, backoff.Permanent(&DeserializationError{StartTime: startTime, Err: err})
	}
	return page, nil
}
