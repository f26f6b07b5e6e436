package ports

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
)

// --- PERSISTANCE (DB) ---

// ActorRepository est un Port Secondaire (Driven).
// FindByID renvoie une erreur qui satisfait errors.Is(err, domain.ErrActorNotFound).
type ActorRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Actor, error)
	// FindByIDs échoue sur le premier id absent. L'ordre du résultat suit ids.
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Actor, error)
	FindAll(ctx context.Context) ([]*domain.Actor, error)
	FindByMovie(ctx context.Context, movieID int64) ([]*domain.Actor, error)
	// Save insère si actor.ID == 0 (et renseigne l'ID), sinon met à jour.
	Save(ctx context.Context, actor *domain.Actor) error
}

type MovieRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Movie, error)
	FindAll(ctx context.Context) ([]*domain.Movie, error)
	FindByActor(ctx context.Context, actorID int64) ([]*domain.Movie, error)
	Save(ctx context.Context, movie *domain.Movie) error
	// SetActors remplace l'ensemble des acteurs du film (pas d'ajout incrémental).
	SetActors(ctx context.Context, movieID int64, actorIDs []int64) error
}

type Repositories interface {
	Actors() ActorRepository
	Movies() MovieRepository
}

// Store donne accès aux repositories hors transaction, et à des repositories
// liés à une transaction via InTx. fn qui renvoie une erreur annule tout.
type Store interface {
	Repositories
	InTx(ctx context.Context, fn func(tx Repositories) error) error
}

// --- MESSAGERIE (BROKER) ---

// EventPublisher notifie les autres services des changements du catalogue.
type EventPublisher interface {
	PublishActorCreated(ctx context.Context, actor *domain.Actor) error
	PublishActorUpdated(ctx context.Context, actor *domain.Actor) error
	PublishMovieCreated(ctx context.Context, movie *domain.Movie, actorIDs []int64) error
	PublishMovieUpdated(ctx context.Context, movie *domain.Movie, actorIDs []int64) error
}
