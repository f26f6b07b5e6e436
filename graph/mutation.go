package graph

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

// --- INPUTS ---

type ActorInput struct {
	ID   *graphql.ID
	Name *string
}

type MovieInput struct {
	ID     *graphql.ID
	Title  *string
	Actors *[]*ActorInput
	Year   *int32
}

// --- MUTATION ---
// Discipline commune : "introuvable" => ok=false sans erreur,
// entrée invalide ou panne => erreur GraphQL et payload null.

func (r *Resolver) CreateActor(ctx context.Context, args struct{ ActorData ActorInput }) (*actorPayloadResolver, error) {
	a, err := r.Catalog.CreateActor(ctx, ports.ActorCmd{Name: args.ActorData.Name})
	if err != nil {
		return nil, toGQLError(ctx, "createActor", err)
	}
	return &actorPayloadResolver{ok: true, actor: a, catalog: r.Catalog}, nil
}

func (r *Resolver) UpdateActor(ctx context.Context, args struct {
	ID        int32
	ActorData ActorInput
}) (*actorPayloadResolver, error) {
	a, err := r.Catalog.UpdateActor(ctx, int64(args.ID), ports.ActorCmd{Name: args.ActorData.Name})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &actorPayloadResolver{ok: false}, nil
		}
		return nil, toGQLError(ctx, "updateActor", err)
	}
	return &actorPayloadResolver{ok: true, actor: a, catalog: r.Catalog}, nil
}

func (r *Resolver) CreateMovie(ctx context.Context, args struct{ MovieData MovieInput }) (*moviePayloadResolver, error) {
	cmd, err := args.MovieData.toCmd()
	if err != nil {
		return nil, toGQLError(ctx, "createMovie", err)
	}
	m, err := r.Catalog.CreateMovie(ctx, cmd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &moviePayloadResolver{ok: false}, nil
		}
		return nil, toGQLError(ctx, "createMovie", err)
	}
	return &moviePayloadResolver{ok: true, movie: m, catalog: r.Catalog}, nil
}

func (r *Resolver) UpdateMovie(ctx context.Context, args struct {
	ID   int32
	Data MovieInput
}) (*moviePayloadResolver, error) {
	cmd, err := args.Data.toCmd()
	if err != nil {
		return nil, toGQLError(ctx, "updateMovie", err)
	}
	m, err := r.Catalog.UpdateMovie(ctx, int64(args.ID), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &moviePayloadResolver{ok: false}, nil
		}
		return nil, toGQLError(ctx, "updateMovie", err)
	}
	return &moviePayloadResolver{ok: true, movie: m, catalog: r.Catalog}, nil
}

// toCmd convertit l'input GraphQL. Seul l'id des ActorInput est lu.
func (in MovieInput) toCmd() (ports.MovieCmd, error) {
	cmd := ports.MovieCmd{Title: in.Title}
	if in.Year != nil {
		year := int(*in.Year)
		cmd.Year = &year
	}
	if in.Actors != nil {
		cmd.ReplaceActors = true
		cmd.ActorIDs = make([]int64, 0, len(*in.Actors))
		for _, a := range *in.Actors {
			if a == nil || a.ID == nil {
				return ports.MovieCmd{}, domain.ErrInvalidActorID
			}
			id, err := parseID(*a.ID)
			if err != nil {
				return ports.MovieCmd{}, domain.ErrInvalidActorID
			}
			cmd.ActorIDs = append(cmd.ActorIDs, id)
		}
	}
	return cmd, nil
}
