// Package chi exposes the gateway's HTTP surface: document aggregation
// endpoints under /api/v1/documents plus health and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/doculex/docgate/internal/db"
	"github.com/doculex/docgate/internal/domain"
	documentuc "github.com/doculex/docgate/internal/usecase/document"
	healthuc "github.com/doculex/docgate/internal/usecase/health"
)

// Server holds the HTTP handlers for the document gateway.
type Server struct {
	documents *documentuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(documents *documentuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		documents: documents,
		health:    health,
		logger:    logger,
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Post("/", s.CreateDocument)
		r.Get("/search", s.SearchDocuments)
		r.Post("/annotate", s.AnnotateText)
		r.Get("/{documentID}", s.GetDocument)
		r.Get("/{documentID}/similar", s.GetSimilarDocuments)
		r.Post("/{documentID}/similarity_update", s.UpdateDocumentSimilarities)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// documentsResponse wraps every successful document lookup.
type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// ListDocuments handles GET /api/v1/documents?document_ids=a,b,c.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("document_ids")
	if raw == "" {
		writeJSON(w, http.StatusOK, map[string]string{
			"Message": `You need to provide query param "document_ids" : [comma separated set of documents ids]`,
		})
		return
	}

	docs, err := s.documents.List(r.Context(), strings.Split(raw, ","))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentsResponse{Documents: docs})
}

// GetDocument handles GET /api/v1/documents/{documentID}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.Get(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentsResponse{Documents: docs})
}

// GetSimilarDocuments handles GET /api/v1/documents/{documentID}/similar?get_k=N.
func (s *Server) GetSimilarDocuments(w http.ResponseWriter, r *http.Request) {
	k := documentuc.DefaultSimilarK
	if raw := r.URL.Query().Get("get_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "query param get_k must be a positive integer")
			return
		}
		k = parsed
	}

	docs, err := s.documents.Similar(r.Context(), chi.URLParam(r, "documentID"), k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentsResponse{Documents: docs})
}

// UpdateDocumentSimilarities handles POST /api/v1/documents/{documentID}/similarity_update.
// The remote body is the response regardless of its shape.
func (s *Server) UpdateDocumentSimilarities(w http.ResponseWriter, r *http.Request) {
	body, err := s.documents.RefreshEmbedding(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// SearchDocuments handles GET /api/v1/documents/search?query=Q.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	body, err := s.documents.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

type annotateRequest struct {
	Text     *string `json:"text"`
	Language *string `json:"language"`
}

// AnnotateText handles POST /api/v1/documents/annotate. Always answers 200;
// a remote failure is embedded in the returned body, not mapped to a status.
func (s *Server) AnnotateText(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	text := "You didnt give `text` parameter."
	if req.Text != nil {
		text = *req.Text
	}
	language := "en"
	if req.Language != nil {
		language = *req.Language
	}

	body, err := s.documents.Annotate(r.Context(), text, language)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

type createDocumentRequest struct {
	Title           string  `json:"title"`
	DocumentSource  *string `json:"document_source"`
	Fulltext        *string `json:"fulltext"`
	FulltextCleaned *string `json:"fulltext_cleaned"`
	Abstract        *string `json:"abstract"`
	Date            *string `json:"date"`
	EntryIntoForce  *string `json:"entryintoforce"`
	FulltextLink    *string `json:"fulltextlink"`
	SourceName      *string `json:"sourcename"`
	SourceLink      *string `json:"sourcelink"`
	Status          *string `json:"status"`

	Authors      []string `json:"authors"`
	Areas        []string `json:"areas"`
	Keywords     []string `json:"keywords"`
	Subjects     []string `json:"subjects"`
	Participants []string `json:"participants"`
}

type createDocumentResponse struct {
	DocumentID *int64 `json:"document_id"`
}

// CreateDocument handles POST /api/v1/documents. A unique-key collision is a
// 200 with a null id; a fresh insert is a 201 with the assigned id.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := s.documents.Create(r.Context(), domain.Document{
		Title:           req.Title,
		DocumentSource:  req.DocumentSource,
		Fulltext:        req.Fulltext,
		FulltextCleaned: req.FulltextCleaned,
		Abstract:        req.Abstract,
		Date:            req.Date,
		EntryIntoForce:  req.EntryIntoForce,
		FulltextLink:    req.FulltextLink,
		SourceName:      req.SourceName,
		SourceLink:      req.SourceLink,
		Status:          req.Status,
		Authors:         req.Authors,
		Areas:           req.Areas,
		Keywords:        req.Keywords,
		Subjects:        req.Subjects,
		Participants:    req.Participants,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if !outcome.Inserted() {
		writeJSON(w, http.StatusOK, createDocumentResponse{})
		return
	}
	id := outcome.DocumentID()
	writeJSON(w, http.StatusCreated, createDocumentResponse{DocumentID: &id})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleDomainError is the last point where an error becomes a protocol
// response. Remote bodies are routed through verbatim; nothing here
// interprets their semantics.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))

	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		writeRaw(w, http.StatusBadRequest, remoteErr.Body)
		return
	}
	if errors.Is(err, domain.ErrInvalidDocumentIDs) {
		writeError(w, http.StatusBadRequest, "You provided invalid document ids.")
		return
	}
	if errors.Is(err, db.ErrNotConnected) {
		writeError(w, http.StatusServiceUnavailable, "document store unavailable")
		return
	}

	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw forwards a remote body unchanged.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) == 0 {
		body = []byte("null")
	}
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"Error": message})
}
