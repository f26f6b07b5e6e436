package eventbroker

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
)

// NopPublisher est utilisé quand NATS_URL est vide (dev local).
type NopPublisher struct{}

func (NopPublisher) PublishActorCreated(context.Context, *domain.Actor) error          { return nil }
func (NopPublisher) PublishActorUpdated(context.Context, *domain.Actor) error          { return nil }
func (NopPublisher) PublishMovieCreated(context.Context, *domain.Movie, []int64) error { return nil }
func (NopPublisher) PublishMovieUpdated(context.Context, *domain.Movie, []int64) error { return nil }
