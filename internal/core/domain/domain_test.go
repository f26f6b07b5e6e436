package domain

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	a, err := NewActor("  Keanu Reeves ")
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", a.Name)
	assert.True(t, a.IsNew())
	assert.Equal(t, "Keanu Reeves", a.String())

	for _, name := range []string{"", "   ", strings.Repeat("x", MaxNameLength+1)} {
		_, err := NewActor(name)
		require.ErrorIs(t, err, ErrInvalidName)
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	// 100 runes multi-octets restent valides.
	_, err = NewActor(strings.Repeat("é", MaxNameLength))
	require.NoError(t, err)
}

func TestActorRenameKeepsNameOnError(t *testing.T) {
	a := &Actor{ID: 3, Name: "Al Pacino"}
	require.Error(t, a.Rename(""))
	assert.Equal(t, "Al Pacino", a.Name)
}

func TestNewMovie(t *testing.T) {
	m, err := NewMovie("The Matrix", 1999)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", m.String())
	assert.Equal(t, 1999, m.Year)

	_, err = NewMovie(" ", 1999)
	require.ErrorIs(t, err, ErrInvalidTitle)

	// Aucune validation de plage sur l'année.
	m, err = NewMovie("Metropolis", -42)
	require.NoError(t, err)
	assert.Equal(t, -42, m.Year)
}

func TestNormalizeActorIDs(t *testing.T) {
	ids, err := NormalizeActorIDs([]int64{3, 1, 3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	ids, err = NormalizeActorIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = NormalizeActorIDs([]int64{1, 0})
	require.ErrorIs(t, err, ErrInvalidActorID)
}

func TestOrdering(t *testing.T) {
	actors := []*Actor{{ID: 2, Name: "Marlon Brando"}, {ID: 3, Name: "Al Pacino"}, {ID: 1, Name: "Marlon Brando"}}
	slices.SortFunc(actors, CompareActors)
	assert.Equal(t, []int64{3, 1, 2}, []int64{actors[0].ID, actors[1].ID, actors[2].ID})

	movies := []*Movie{{ID: 1, Title: "WarGames"}, {ID: 2, Title: "Apocalypse Now"}}
	slices.SortFunc(movies, CompareMovies)
	assert.Equal(t, "Apocalypse Now", movies[0].Title)
}

func TestNotFoundWrapping(t *testing.T) {
	err := ActorNotFound(42)
	assert.True(t, errors.Is(err, ErrActorNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrMovieNotFound))
	assert.Contains(t, err.Error(), "id=42")

	assert.ErrorIs(t, MovieNotFound(7), ErrNotFound)
}
