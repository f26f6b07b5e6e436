package eventbroker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

var (
	_ ports.EventPublisher = (*NatsBroker)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

func TestMovieEventPayload(t *testing.T) {
	m := &domain.Movie{ID: 4, Title: "WarGames", Year: 1983}

	msg, err := newMsg(context.Background(), SubjectMovieCreated, newMovieEvent(m, nil))
	require.NoError(t, err)
	assert.Equal(t, "movies.movie.created", msg.Subject)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.EqualValues(t, 4, got["movie_id"])
	assert.Equal(t, "WarGames", got["title"])
	assert.EqualValues(t, 1983, got["year"])
	assert.Equal(t, []any{}, got["actor_ids"])

	_, err = uuid.Parse(got["event_id"].(string))
	require.NoError(t, err)
}

func TestActorEventPayload(t *testing.T) {
	ev := newActorEvent(&domain.Actor{ID: 9, Name: "Mark Hamill"})
	assert.Equal(t, int64(9), ev.ActorID)
	assert.Equal(t, "Mark Hamill", ev.Name)
	assert.False(t, ev.OccurredAt.IsZero())
	assert.NotEqual(t, ev.EventID, newActorEvent(&domain.Actor{ID: 9}).EventID)
}

func TestNewMsgInjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	msg, err := newMsg(ctx, SubjectActorCreated, newActorEvent(&domain.Actor{ID: 1, Name: "Al Pacino"}))
	require.NoError(t, err)
	assert.Equal(t, "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01", msg.Header.Get("Traceparent"))
}
