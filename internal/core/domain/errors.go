package domain

import (
	"errors"
	"fmt"
)

// --- ERREURS DU DOMAINE ---
// Deux familles seulement : "introuvable" et "entrée invalide".
// Les adapters primaires (GraphQL) testent la famille avec errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrActorNotFound = fmt.Errorf("actor %w", ErrNotFound)
	ErrMovieNotFound = fmt.Errorf("movie %w", ErrNotFound)

	ErrInvalidName    = fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidInput, MaxNameLength)
	ErrInvalidTitle   = fmt.Errorf("%w: title must be between 1 and %d characters", ErrInvalidInput, MaxTitleLength)
	ErrMissingYear    = fmt.Errorf("%w: year is required", ErrInvalidInput)
	ErrInvalidActorID = fmt.Errorf("%w: actor id must be a positive integer", ErrInvalidInput)
)

// ActorNotFound précise l'id manquant sans perdre la sentinelle.
func ActorNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrActorNotFound, id)
}

func MovieNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrMovieNotFound, id)
}
