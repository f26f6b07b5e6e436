package domain

import (
	"strings"
	"unicode/utf8"
)

// Même limite que la colonne VARCHAR(100) en base.
const MaxNameLength = 100

// --- ENTITÉ ---

type Actor struct {
	ID   int64
	Name string
}

// NewActor crée un acteur valide (ID = 0 tant qu'il n'est pas persisté).
func NewActor(name string) (*Actor, error) {
	a := &Actor{}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	return a, nil
}

// Rename remplace le nom après validation.
func (a *Actor) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

func (a *Actor) String() string {
	return a.Name
}

// IsNew indique que l'acteur n'a pas encore d'identité en base.
func (a *Actor) IsNew() bool {
	return a.ID == 0
}

// --- VALIDATEURS INTERNES ---

func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}
