package graph

import (
	"context"
	"strconv"

	"github.com/graph-gophers/graphql-go"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

// --- IDS ---

func toID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

func parseID(id graphql.ID) (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// --- ACTOR ---

type actorResolver struct {
	actor   *domain.Actor
	catalog ports.CatalogService
}

func newActorResolver(a *domain.Actor, catalog ports.CatalogService) *actorResolver {
	if a == nil {
		return nil
	}
	return &actorResolver{actor: a, catalog: catalog}
}

func mapActors(actors []*domain.Actor, catalog ports.CatalogService) []*actorResolver {
	res := make([]*actorResolver, len(actors))
	for i, a := range actors {
		res[i] = &actorResolver{actor: a, catalog: catalog}
	}
	return res
}

func (r *actorResolver) ID() graphql.ID { return toID(r.actor.ID) }
func (r *actorResolver) Name() string   { return r.actor.Name }

func (r *actorResolver) MovieSet(ctx context.Context) ([]*movieResolver, error) {
	movies, err := r.catalog.ActorMovies(ctx, r.actor.ID)
	if err != nil {
		return nil, toGQLError(ctx, "Actor.movieSet", err)
	}
	return mapMovies(movies, r.catalog), nil
}

// --- MOVIE ---

type movieResolver struct {
	movie   *domain.Movie
	catalog ports.CatalogService
}

func newMovieResolver(m *domain.Movie, catalog ports.CatalogService) *movieResolver {
	if m == nil {
		return nil
	}
	return &movieResolver{movie: m, catalog: catalog}
}

func mapMovies(movies []*domain.Movie, catalog ports.CatalogService) []*movieResolver {
	res := make([]*movieResolver, len(movies))
	for i, m := range movies {
		res[i] = &movieResolver{movie: m, catalog: catalog}
	}
	return res
}

func (r *movieResolver) ID() graphql.ID { return toID(r.movie.ID) }
func (r *movieResolver) Title() string  { return r.movie.Title }
func (r *movieResolver) Year() int32    { return int32(r.movie.Year) }

func (r *movieResolver) Actors(ctx context.Context) ([]*actorResolver, error) {
	actors, err := r.catalog.MovieActors(ctx, r.movie.ID)
	if err != nil {
		return nil, toGQLError(ctx, "Movie.actors", err)
	}
	return mapActors(actors, r.catalog), nil
}

// --- PAYLOADS ---
// Un seul type Go par famille : CreateActorPayload et UpdateActorPayload ont
// la même forme, idem pour les films.

type actorPayloadResolver struct {
	ok      bool
	actor   *domain.Actor
	catalog ports.CatalogService
}

func (p *actorPayloadResolver) Ok() bool { return p.ok }

func (p *actorPayloadResolver) Actor() *actorResolver {
	return newActorResolver(p.actor, p.catalog)
}

type moviePayloadResolver struct {
	ok      bool
	movie   *domain.Movie
	catalog ports.CatalogService
}

func (p *moviePayloadResolver) Ok() bool { return p.ok }

func (p *moviePayloadResolver) Movie() *movieResolver {
	return newMovieResolver(p.movie, p.catalog)
}
