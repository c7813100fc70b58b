package natsio

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/nats-io/nats.go"

	"github.com/appetiteclub/tableorder/internal/tableorder"
)

const defaultFetchTimeout = 10 * time.Second

// MenuFetcher retrieves the menu through a one-shot NATS request/reply
// exchange: connect, request, receive a single message with the full item
// list, close. There is no standing subscription.
type MenuFetcher struct {
	url     string
	subject string
	timeout time.Duration
	logger  aqm.Logger
}

func NewMenuFetcher(url, subject string, logger aqm.Logger) *MenuFetcher {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &MenuFetcher{
		url:     url,
		subject: subject,
		timeout: defaultFetchTimeout,
		logger:  logger,
	}
}

func (f *MenuFetcher) FetchMenu(ctx context.Context) ([]tableorder.MenuItem, error) {
	conn, err := nats.Connect(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	msg, err := conn.RequestWithContext(ctx, f.subject, nil)
	if err != nil {
		return nil, fmt.Errorf("menu request failed: %w", err)
	}

	var items []tableorder.MenuItem
	if err := json.Unmarshal(msg.Data, &items); err != nil {
		return nil, fmt.Errorf("cannot decode menu payload: %w", err)
	}

	f.logger.Info("menu received", "items", len(items))
	return items, nil
}
