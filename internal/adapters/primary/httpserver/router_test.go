package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupiterclapton/cenackle/services/movie-service/graph"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/adapters/secondary/repository"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/services"
)

func newTestRouter(t *testing.T, env string) http.Handler {
	t.Helper()
	catalog := services.NewCatalogService(repository.NewMemoryStore(), eventbroker.NopPublisher{})
	schema, err := graph.NewSchema(&graph.Resolver{Catalog: catalog}, 0)
	require.NoError(t, err)
	return NewRouter(schema, Options{
		Env:            env,
		AllowedOrigins: []string{"http://localhost:3000"},
		SDL:            graph.SchemaSDL(),
	})
}

func TestQueryEndpoint(t *testing.T) {
	h := newTestRouter(t, "local")

	body := `{"query":"mutation { createActor(actorData: {name: \"Mark Hamill\"}) { ok actor { id name } } }"}`
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"createActor":{"ok":true,"actor":{"id":"1","name":"Mark Hamill"}}}}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, "local")

	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTechnicalRoutes(t *testing.T) {
	h := newTestRouter(t, "local")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema.graphql", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "type Movie")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/query")
}

func TestPlaygroundDisabledInProd(t *testing.T) {
	h := newTestRouter(t, "prod")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
