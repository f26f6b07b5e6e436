package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

// CatalogService implémente ports.CatalogService (Primary Port).
// Toute écriture passe par une seule transaction du Store ; les événements
// partent après le commit.
type CatalogService struct {
	store     ports.Store
	publisher ports.EventPublisher
}

func NewCatalogService(store ports.Store, pub ports.EventPublisher) *CatalogService {
	return &CatalogService{store: store, publisher: pub}
}

// --- LECTURE ---

func (s *CatalogService) GetActor(ctx context.Context, id int64) (*domain.Actor, error) {
	return s.store.Actors().FindByID(ctx, id)
}

func (s *CatalogService) ListActors(ctx context.Context) ([]*domain.Actor, error) {
	return s.store.Actors().FindAll(ctx)
}

func (s *CatalogService) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.store.Movies().FindByID(ctx, id)
}

func (s *CatalogService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	return s.store.Movies().FindAll(ctx)
}

func (s *CatalogService) MovieActors(ctx context.Context, movieID int64) ([]*domain.Actor, error) {
	return s.store.Actors().FindByMovie(ctx, movieID)
}

func (s *CatalogService) ActorMovies(ctx context.Context, actorID int64) ([]*domain.Movie, error) {
	return s.store.Movies().FindByActor(ctx, actorID)
}

// --- ACTEURS ---

func (s *CatalogService) CreateActor(ctx context.Context, cmd ports.ActorCmd) (*domain.Actor, error) {
	if cmd.Name == nil {
		return nil, domain.ErrInvalidName
	}
	actor, err := domain.NewActor(*cmd.Name)
	if err != nil {
		return nil, err
	}

	// Un seul INSERT : pas besoin de transaction explicite.
	if err := s.store.Actors().Save(ctx, actor); err != nil {
		return nil, fmt.Errorf("save actor: %w", err)
	}

	if err := s.publisher.PublishActorCreated(ctx, actor); err != nil {
		slog.WarnContext(ctx, "Failed to publish actor created", "actor_id", actor.ID, "error", err)
	}
	return actor, nil
}

// UpdateActor renomme l'acteur. Sans nom, rien n'est écrit ni publié :
// l'acteur courant est renvoyé tel quel.
func (s *CatalogService) UpdateActor(ctx context.Context, id int64, cmd ports.ActorCmd) (*domain.Actor, error) {
	if cmd.Name == nil {
		return s.store.Actors().FindByID(ctx, id)
	}

	var actor *domain.Actor
	err := s.store.InTx(ctx, func(tx ports.Repositories) error {
		a, err := tx.Actors().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := a.Rename(*cmd.Name); err != nil {
			return err
		}
		if err := tx.Actors().Save(ctx, a); err != nil {
			return fmt.Errorf("save actor: %w", err)
		}
		actor = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishActorUpdated(ctx, actor); err != nil {
		slog.WarnContext(ctx, "Failed to publish actor updated", "actor_id", actor.ID, "error", err)
	}
	return actor, nil
}

// --- FILMS ---

// CreateMovie vérifie tous les acteurs avant d'insérer quoi que ce soit.
// Un acteur manquant annule l'opération entière.
func (s *CatalogService) CreateMovie(ctx context.Context, cmd ports.MovieCmd) (*domain.Movie, error) {
	if cmd.Title == nil {
		return nil, domain.ErrInvalidTitle
	}
	if cmd.Year == nil {
		return nil, domain.ErrMissingYear
	}
	movie, err := domain.NewMovie(*cmd.Title, *cmd.Year)
	if err != nil {
		return nil, err
	}
	actorIDs, err := domain.NormalizeActorIDs(cmd.ActorIDs)
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx ports.Repositories) error {
		if _, err := tx.Actors().FindByIDs(ctx, actorIDs); err != nil {
			return err
		}
		if err := tx.Movies().Save(ctx, movie); err != nil {
			return fmt.Errorf("save movie: %w", err)
		}
		if err := tx.Movies().SetActors(ctx, movie.ID, actorIDs); err != nil {
			return fmt.Errorf("set movie actors: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishMovieCreated(ctx, movie, actorIDs); err != nil {
		slog.WarnContext(ctx, "Failed to publish movie created", "movie_id", movie.ID, "error", err)
	}
	return movie, nil
}

// UpdateMovie écrase les champs fournis. Si ReplaceActors, l'ensemble des
// acteurs est remplacé (jamais fusionné).
func (s *CatalogService) UpdateMovie(ctx context.Context, id int64, cmd ports.MovieCmd) (*domain.Movie, error) {
	var actorIDs []int64
	if cmd.ReplaceActors {
		ids, err := domain.NormalizeActorIDs(cmd.ActorIDs)
		if err != nil {
			return nil, err
		}
		actorIDs = ids
	}

	var movie *domain.Movie
	err := s.store.InTx(ctx, func(tx ports.Repositories) error {
		m, err := tx.Movies().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cmd.ReplaceActors {
			if _, err := tx.Actors().FindByIDs(ctx, actorIDs); err != nil {
				return err
			}
		}

		if cmd.Title != nil {
			if err := m.Retitle(*cmd.Title); err != nil {
				return err
			}
		}
		if cmd.Year != nil {
			m.Year = *cmd.Year
		}
		if err := tx.Movies().Save(ctx, m); err != nil {
			return fmt.Errorf("save movie: %w", err)
		}

		if cmd.ReplaceActors {
			if err := tx.Movies().SetActors(ctx, m.ID, actorIDs); err != nil {
				return fmt.Errorf("set movie actors: %w", err)
			}
		} else {
			// Pour l'événement : l'état courant de la relation
			current, err := tx.Actors().FindByMovie(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("load movie actors: %w", err)
			}
			actorIDs = make([]int64, len(current))
			for i, a := range current {
				actorIDs[i] = a.ID
			}
		}
		movie = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishMovieUpdated(ctx, movie, actorIDs); err != nil {
		slog.WarnContext(ctx, "Failed to publish movie updated", "movie_id", movie.ID, "error", err)
	}
	return movie, nil
}

var _ ports.CatalogService = (*CatalogService)(nil)
