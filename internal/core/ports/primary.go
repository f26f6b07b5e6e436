package ports

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Pointeur nil = champ non fourni par le client.

type ActorCmd struct {
	Name *string
}

type MovieCmd struct {
	Title *string
	Year  *int

	// ActorIDs remplace l'ensemble des acteurs quand ReplaceActors est vrai.
	// A la création, une liste absente équivaut à une liste vide.
	ActorIDs      []int64
	ReplaceActors bool
}

// --- PORT PRIMAIRE (Driving) ---
// L'API exposée au monde extérieur (GraphQL ici).

type CatalogService interface {
	// Lecture
	GetActor(ctx context.Context, id int64) (*domain.Actor, error)
	ListActors(ctx context.Context) ([]*domain.Actor, error)
	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	ListMovies(ctx context.Context) ([]*domain.Movie, error)

	// Relations
	MovieActors(ctx context.Context, movieID int64) ([]*domain.Actor, error)
	ActorMovies(ctx context.Context, actorID int64) ([]*domain.Movie, error)

	// Écriture
	CreateActor(ctx context.Context, cmd ActorCmd) (*domain.Actor, error)
	UpdateActor(ctx context.Context, id int64, cmd ActorCmd) (*domain.Actor, error)
	CreateMovie(ctx context.Context, cmd MovieCmd) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, id int64, cmd MovieCmd) (*domain.Movie, error)
}
