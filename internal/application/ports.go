package application

import (
	"context"
	"expvar"
	"io"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

// Publisher enqueues a JSON message; helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// TransactionIndexer receives every committed transaction for search.
type TransactionIndexer interface {
	IndexTransaction(ctx context.Context, t entity.Transaction) error
}

// ObjectUploader stores a blob and returns where it can be fetched.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Counters published on /api/debug/vars.
var (
	metricPosted       = expvar.NewInt("roundup_transactions_posted")
	metricPostFailures = expvar.NewInt("roundup_post_failures")
	metricSavedCents   = expvar.NewInt("roundup_saved_cents")
	metricSideEffects  = expvar.NewMap("roundup_side_effect_failures")
	metricLogins       = expvar.NewMap("auth_logins")
)
