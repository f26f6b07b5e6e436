package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
)

const (
	StreamName     = "MOVIES"
	SubjectPattern = "movies.>"

	SubjectActorCreated = "movies.actor.created"
	SubjectActorUpdated = "movies.actor.updated"
	SubjectMovieCreated = "movies.movie.created"
	SubjectMovieUpdated = "movies.movie.updated"
)

// --- PAYLOADS (contrat implicite avec les consommateurs) ---

type ActorEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ActorID    int64     `json:"actor_id"`
	Name       string    `json:"name"`
}

type MovieEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	MovieID    int64     `json:"movie_id"`
	Title      string    `json:"title"`
	Year       int       `json:"year"`
	ActorIDs   []int64   `json:"actor_ids"`
}

func newActorEvent(a *domain.Actor) ActorEvent {
	return ActorEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		ActorID:    a.ID,
		Name:       a.Name,
	}
}

func newMovieEvent(m *domain.Movie, actorIDs []int64) MovieEvent {
	if actorIDs == nil {
		actorIDs = []int64{} // "actor_ids": [] plutôt que null
	}
	return MovieEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		MovieID:    m.ID,
		Title:      m.Title,
		Year:       m.Year,
		ActorIDs:   actorIDs,
	}
}

// --- BROKER ---

type NatsBroker struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewNatsBroker se connecte et s'assure que le Stream existe (idempotent).
func NewNatsBroker(ctx context.Context, url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url, nats.Name("movie-service"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPattern},
		Storage:  jetstream.FileStorage,
		Replicas: 1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{nc: nc, js: js}, nil
}

// Close vide les messages en attente puis ferme la connexion.
func (b *NatsBroker) Close() {
	if err := b.nc.Drain(); err != nil {
		slog.Warn("NATS drain failed", "error", err)
	}
}

func (b *NatsBroker) PublishActorCreated(ctx context.Context, actor *domain.Actor) error {
	return b.publish(ctx, SubjectActorCreated, newActorEvent(actor))
}

func (b *NatsBroker) PublishActorUpdated(ctx context.Context, actor *domain.Actor) error {
	return b.publish(ctx, SubjectActorUpdated, newActorEvent(actor))
}

func (b *NatsBroker) PublishMovieCreated(ctx context.Context, movie *domain.Movie, actorIDs []int64) error {
	return b.publish(ctx, SubjectMovieCreated, newMovieEvent(movie, actorIDs))
}

func (b *NatsBroker) PublishMovieUpdated(ctx context.Context, movie *domain.Movie, actorIDs []int64) error {
	return b.publish(ctx, SubjectMovieUpdated, newMovieEvent(movie, actorIDs))
}

func (b *NatsBroker) publish(ctx context.Context, subject string, event any) error {
	msg, err := newMsg(ctx, subject, event)
	if err != nil {
		return err
	}

	// JetStream confirme que le serveur a persisté le message
	ack, err := b.js.PublishMsg(ctx, msg)
	if err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	slog.DebugContext(ctx, "📢 Event published", "subject", subject, "seq", ack.Sequence)
	return nil
}

// newMsg encode l'événement et injecte le contexte de trace dans les headers.
func newMsg(ctx context.Context, subject string, event any) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))
	return msg, nil
}
