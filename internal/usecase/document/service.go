// Package document is the aggregation orchestrator: the only component that
// composes the repository with the sibling-service clients, merges result
// sets and bounds every output payload.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/doculex/docgate/internal/domain"
)

const (
	// MaxDocumentsPerQuery bounds every id-list lookup. Ids past the bound
	// are silently dropped, not rejected.
	MaxDocumentsPerQuery = 100
	// DefaultSimilarK is the similar-document count when the caller gives none.
	DefaultSimilarK = 5
)

// Service orchestrates document aggregation and retrieval.
type Service struct {
	repo       Repository
	similarity SimilarityClient
	retrieval  RetrievalClient
	enrichment EnrichmentClient
}

// New creates the orchestrator service.
func New(repo Repository, similarity SimilarityClient, retrieval RetrievalClient, enrichment EnrichmentClient) *Service {
	return &Service{
		repo:       repo,
		similarity: similarity,
		retrieval:  retrieval,
		enrichment: enrichment,
	}
}

// List returns the documents for the given raw id tokens, capped at
// MaxDocumentsPerQuery.
func (s *Service) List(ctx context.Context, ids []string) ([]domain.Document, error) {
	if len(ids) > MaxDocumentsPerQuery {
		ids = ids[:MaxDocumentsPerQuery]
	}
	docs, err := s.repo.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get returns a single document by id.
func (s *Service) Get(ctx context.Context, id string) ([]domain.Document, error) {
	return s.List(ctx, []string{id})
}

// similarResponse is the conforming shape of the similarity service reply.
// SimilarDocuments is a pointer so a missing key is distinguishable from an
// empty list.
type similarResponse struct {
	SimilarDocuments *[]int64        `json:"similar_documents"`
	Similarities     [][]json.Number `json:"similarities"`
}

// Similar fetches the k nearest documents and attaches each one's similarity
// score. A remote body without similar_documents is surfaced verbatim as the
// error; a candidate id with no paired score fails the whole request.
func (s *Service) Similar(ctx context.Context, id string, k int) ([]domain.Document, error) {
	if k <= 0 {
		k = DefaultSimilarK
	}

	body, err := s.similarity.GetSimilar(ctx, id, k)
	if err != nil {
		return nil, fmt.Errorf("get similarities: %w", err)
	}

	var parsed similarResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.SimilarDocuments == nil {
		return nil, domain.NewRemoteError("similarity", body)
	}

	scores := make(map[int64]float64, len(parsed.Similarities))
	for _, pair := range parsed.Similarities {
		if len(pair) != 2 {
			return nil, domain.NewRemoteError("similarity", body)
		}
		docID, err := pair[0].Int64()
		if err != nil {
			return nil, domain.NewRemoteError("similarity", body)
		}
		score, err := pair[1].Float64()
		if err != nil {
			return nil, domain.NewRemoteError("similarity", body)
		}
		scores[docID] = score
	}

	candidates := make([]string, 0, len(*parsed.SimilarDocuments))
	for _, docID := range *parsed.SimilarDocuments {
		candidates = append(candidates, strconv.FormatInt(docID, 10))
	}

	docs, err := s.repo.FetchByIDs(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("fetch similar documents: %w", err)
	}

	for i := range docs {
		score, ok := scores[docs[i].ID]
		if !ok {
			return nil, fmt.Errorf("document %d: %w", docs[i].ID, domain.ErrMissingSimilarity)
		}
		docs[i].Similarity = &score
	}
	return docs, nil
}

// RefreshEmbedding triggers recomputation of a document's embedding.
// Pass-through: the remote body is the response.
func (s *Service) RefreshEmbedding(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := s.similarity.RefreshEmbedding(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refresh embedding: %w", err)
	}
	return body, nil
}

// Search resolves a free-text query via the retrieval service. Pass-through:
// no merge with the local store, the remote metadata is authoritative.
func (s *Service) Search(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := s.retrieval.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return body, nil
}

// Annotate enriches arbitrary text via the annotation service. Pass-through,
// including the remote error shape.
func (s *Service) Annotate(ctx context.Context, text, language string) (json.RawMessage, error) {
	body, err := s.enrichment.Annotate(ctx, text, language)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return body, nil
}

// Create inserts a document with its child sets. A unique-key collision is a
// defined no-op with no id.
// TODO: feed the new document through Annotate to persist extracted concepts
// once the enrichment schema is settled.
func (s *Service) Create(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error) {
	outcome, err := s.repo.Create(ctx, doc)
	if err != nil {
		return domain.InsertOutcome{}, fmt.Errorf("create document: %w", err)
	}
	return outcome, nil
}
