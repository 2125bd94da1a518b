package document

import (
	"context"
	"encoding/json"

	"github.com/doculex/docgate/internal/domain"
)

// Repository defines the storage contract for documents.
type Repository interface {
	FetchByIDs(ctx context.Context, ids []string) ([]domain.Document, error)
	Create(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error)
}

// SimilarityClient calls the similarity service. Bodies are opaque and
// returned verbatim on both branches.
type SimilarityClient interface {
	GetSimilar(ctx context.Context, documentID string, k int) (json.RawMessage, error)
	RefreshEmbedding(ctx context.Context, documentID string) (json.RawMessage, error)
}

// RetrievalClient calls the search service.
type RetrievalClient interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// EnrichmentClient calls the annotation service.
type EnrichmentClient interface {
	Annotate(ctx context.Context, text, language string) (json.RawMessage, error)
}
