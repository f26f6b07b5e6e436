package domain

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const MaxTitleLength = 100

// --- ENTITÉ ---

// Movie ne porte pas ses acteurs : la relation vit dans le repository
// (table de jointure) et se charge à la demande.
type Movie struct {
	ID    int64
	Title string
	Year  int // Pas de validation de plage
}

func NewMovie(title string, year int) (*Movie, error) {
	m := &Movie{Year: year}
	if err := m.Retitle(title); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Movie) Retitle(title string) error {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n == 0 || n > MaxTitleLength {
		return ErrInvalidTitle
	}
	m.Title = title
	return nil
}

func (m *Movie) String() string {
	return m.Title
}

func (m *Movie) IsNew() bool {
	return m.ID == 0
}

// NormalizeActorIDs rejette les ids <= 0 et supprime les doublons en gardant
// l'ordre d'apparition : la relation est un ensemble.
func NormalizeActorIDs(ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, ErrInvalidActorID
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// --- ORDRE PAR DÉFAUT ---

// CompareActors trie par nom puis par id (ordre stable).
// L'ordre est celui des octets (pas de locale), identique en base via COLLATE "C".
func CompareActors(a, b *Actor) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

// CompareMovies trie par titre puis par id.
func CompareMovies(a, b *Movie) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
