package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/doculex/docgate/internal/domain"
	documentuc "github.com/doculex/docgate/internal/usecase/document"
	healthuc "github.com/doculex/docgate/internal/usecase/health"
)

type mockRepo struct {
	fetchFn  func(ctx context.Context, ids []string) ([]domain.Document, error)
	createFn func(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error)
}

func (m *mockRepo) FetchByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
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
}

func (m *mockSimilarity) GetSimilar(_ context.Context, _ string, _ int) (json.RawMessage, error) {
	return m.similarBody, m.similarErr
}

func (m *mockSimilarity) RefreshEmbedding(_ context.Context, _ string) (json.RawMessage, error) {
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

	gotText     string
	gotLanguage string
}

func (m *mockEnrichment) Annotate(_ context.Context, text, language string) (json.RawMessage, error) {
	m.gotText = text
	m.gotLanguage = language
	return m.body, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// fixture bundles the mocks behind a fully routed server.
type fixture struct {
	repo       *mockRepo
	similarity *mockSimilarity
	retrieval  *mockRetrieval
	enrichment *mockEnrichment
	pinger     *mockPinger
	router     chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:       &mockRepo{},
		similarity: &mockSimilarity{},
		retrieval:  &mockRetrieval{},
		enrichment: &mockEnrichment{},
		pinger:     &mockPinger{},
	}
	docs := documentuc.New(f.repo, f.similarity, f.retrieval, f.enrichment)
	health := healthuc.New(f.pinger)
	srv := NewServer(docs, health, zap.NewNop())

	f.router = chi.NewRouter()
	srv.Routes(f.router)
	return f
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
