package document

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/doculex/docgate/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	fetchFn  func(ctx context.Context, ids []string) ([]domain.Document, error)
	createFn func(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error)

	fetchedIDs [][]string
}

func (m *mockRepo) FetchByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
	m.fetchedIDs = append(m.fetchedIDs, ids)
	if m.fetchFn != nil {
		return m.fetchFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockRepo) Create(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error) {
	if m.createFn != nil {
		return m.createFn(ctx, doc)
	}
	return domain.OutcomeSkipped(), nil
}

type mockSimilarity struct {
	similarBody json.RawMessage
	similarErr  error
	refreshBody json.RawMessage
	refreshErr  error

	gotID string
	gotK  int
}

func (m *mockSimilarity) GetSimilar(_ context.Context, documentID string, k int) (json.RawMessage, error) {
	m.gotID = documentID
	m.gotK = k
	return m.similarBody, m.similarErr
}

func (m *mockSimilarity) RefreshEmbedding(_ context.Context, documentID string) (json.RawMessage, error) {
	m.gotID = documentID
	return m.refreshBody, m.refreshErr
}

type mockRetrieval struct {
	body json.RawMessage
	err  error
}

func (m *mockRetrieval) Search(_ context.Context, _ string) (json.RawMessage, error) {
	return m.body, m.err
}

type mockEnrichment struct {
	body json.RawMessage
	err  error
}

func (m *mockEnrichment) Annotate(_ context.Context, _, _ string) (json.RawMessage, error) {
	return m.body, m.err
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockSimilarity) {
	t.Helper()
	repo := &mockRepo{}
	sim := &mockSimilarity{}
	svc := New(repo, sim, &mockRetrieval{}, &mockEnrichment{})
	return svc, repo, sim
}

// docsForIDs answers a fetch with one bare document per requested id.
func docsForIDs(ids []string) []domain.Document {
	docs := make([]domain.Document, 0, len(ids))
	for _, raw := range ids {
		id, _ := strconv.ParseInt(raw, 10, 64)
		docs = append(docs, domain.Document{ID: id, Title: "doc " + raw})
	}
	return docs
}
