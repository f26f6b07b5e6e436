package graph

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

// Resolver est la racine Query + Mutation. Les dépendances sont injectées
// par main.go.
type Resolver struct {
	Catalog ports.CatalogService
}

// --- QUERY ---

// Actor renvoie null sans id, et une erreur NOT_FOUND si l'id est inconnu.
func (r *Resolver) Actor(ctx context.Context, args struct{ ID *int32 }) (*actorResolver, error) {
	if args.ID == nil {
		return nil, nil
	}
	a, err := r.Catalog.GetActor(ctx, int64(*args.ID))
	if err != nil {
		return nil, toGQLError(ctx, "actor", err)
	}
	return newActorResolver(a, r.Catalog), nil
}

func (r *Resolver) Movie(ctx context.Context, args struct{ ID *int32 }) (*movieResolver, error) {
	if args.ID == nil {
		return nil, nil
	}
	m, err := r.Catalog.GetMovie(ctx, int64(*args.ID))
	if err != nil {
		return nil, toGQLError(ctx, "movie", err)
	}
	return newMovieResolver(m, r.Catalog), nil
}

func (r *Resolver) Actors(ctx context.Context) ([]*actorResolver, error) {
	actors, err := r.Catalog.ListActors(ctx)
	if err != nil {
		return nil, toGQLError(ctx, "actors", err)
	}
	return mapActors(actors, r.Catalog), nil
}

func (r *Resolver) Movies(ctx context.Context) ([]*movieResolver, error) {
	movies, err := r.Catalog.ListMovies(ctx)
	if err != nil {
		return nil, toGQLError(ctx, "movies", err)
	}
	return mapMovies(movies, r.Catalog), nil
}
