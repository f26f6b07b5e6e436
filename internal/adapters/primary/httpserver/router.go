package httpserver

import (
	"fmt"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	Env            string
	AllowedOrigins []string
	SDL            string // Servi sur /schema.graphql si non vide
}

// NewRouter monte l'API GraphQL et les routes techniques.
func NewRouter(schema *graphql.Schema, opts Options) http.Handler {
	// Chaîne de Middlewares HTTP
	var h http.Handler = &relay.Handler{Schema: schema}

	// A. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "baggage", "traceparent"},
		AllowCredentials: true,
	})
	h = c.Handler(h)

	// B. OTEL HTTP (Racine)
	h = otelhttp.NewHandler(h, "GraphQL-Movies", otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	mux := http.NewServeMux()
	mux.Handle("/query", h)

	if opts.Env != "prod" {
		mux.Handle("/", playground.Handler("Movies playground", "/query"))
	}
	if opts.SDL != "" {
		mux.HandleFunc("/schema.graphql", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(opts.SDL))
		})
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return mux
}
