package graph

import (
	_ "embed"

	"github.com/graph-gophers/graphql-go"
	gqlotel "github.com/graph-gophers/graphql-go/trace/otel"
)

//go:embed schema.graphqls
var schemaSDL string

// SchemaSDL renvoie le schéma brut (utile pour les outils clients).
func SchemaSDL() string {
	return schemaSDL
}

// NewSchema lie le SDL au Resolver. Le binding est vérifié au démarrage :
// une méthode manquante ou mal typée fait échouer le parsing.
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{
		graphql.Tracer(gqlotel.DefaultTracer()), // Un span par opération et par champ
	}
	if maxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(maxDepth))
	}
	return graphql.ParseSchema(schemaSDL, r, opts...)
}
