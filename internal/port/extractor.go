package port

import (
	"context"

	"github.com/philipeduarte001/licitacao/internal/domain"
)

// ExtractInput carries the data needed for notice extraction. FileName is
// the object-storage reference consumed by the cloud strategy; Text is the
// raw document text consumed by the local strategy.
type ExtractInput struct {
	FileName  string
	Text      string
	PageCount int
}

// NoticeExtractor abstracts structured extraction of a procurement notice.
// Implementations never fail the caller: a best-effort (possibly empty)
// record is always returned.
type NoticeExtractor interface {
	Extract(ctx context.Context, input ExtractInput) *domain.Notice
}

// ExtractStrategy is a single extraction attempt within an ordered
// fallback chain. A nil error with an empty record means "no data", which
// the orchestrator treats as a rejection rather than a failure.
type ExtractStrategy interface {
	Name() string
	Available() bool
	Extract(ctx context.Context, input ExtractInput) (*domain.Notice, error)
}
