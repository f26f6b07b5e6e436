package repository

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

// memoryState est copié entièrement à chaque transaction (copy-on-write).
// Les entités sont stockées par valeur : aucun pointeur ne fuit vers l'appelant.
type memoryState struct {
	actors      map[int64]domain.Actor
	movies      map[int64]domain.Movie
	movieActors map[int64][]int64 // movie_id -> actor_ids
	nextActorID int64
	nextMovieID int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		actors:      make(map[int64]domain.Actor),
		movies:      make(map[int64]domain.Movie),
		movieActors: make(map[int64][]int64),
	}
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		actors:      maps.Clone(s.actors),
		movies:      maps.Clone(s.movies),
		movieActors: make(map[int64][]int64, len(s.movieActors)),
		nextActorID: s.nextActorID,
		nextMovieID: s.nextMovieID,
	}
	for id, ids := range s.movieActors {
		c.movieActors[id] = slices.Clone(ids)
	}
	return c
}

// memoryAccess abstrait le verrouillage : le Store verrouille à chaque appel,
// une transaction tient déjà le verrou et travaille sur sa copie.
type memoryAccess interface {
	read(fn func(s *memoryState))
	write(fn func(s *memoryState))
}

// MemoryStore est l'implémentation en mémoire de ports.Store (dev local et tests).
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func (m *MemoryStore) read(fn func(s *memoryState)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.state)
}

func (m *MemoryStore) write(fn func(s *memoryState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.state)
}

func (m *MemoryStore) Actors() ports.ActorRepository { return &memoryActorRepo{db: m} }
func (m *MemoryStore) Movies() ports.MovieRepository { return &memoryMovieRepo{db: m} }

// InTx sérialise les transactions. L'état n'est remplacé que si fn réussit.
func (m *MemoryStore) InTx(ctx context.Context, fn func(tx ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{state: m.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) read(fn func(s *memoryState))  { fn(t.state) }
func (t *memoryTx) write(fn func(s *memoryState)) { fn(t.state) }

func (t *memoryTx) Actors() ports.ActorRepository { return &memoryActorRepo{db: t} }
func (t *memoryTx) Movies() ports.MovieRepository { return &memoryMovieRepo{db: t} }

// --- ACTEURS ---

type memoryActorRepo struct {
	db memoryAccess
}

func (r *memoryActorRepo) FindByID(ctx context.Context, id int64) (*domain.Actor, error) {
	var (
		a  domain.Actor
		ok bool
	)
	r.db.read(func(s *memoryState) { a, ok = s.actors[id] })
	if !ok {
		return nil, domain.ActorNotFound(id)
	}
	return &a, nil
}

func (r *memoryActorRepo) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Actor, error) {
	var (
		out     = make([]*domain.Actor, 0, len(ids))
		missing int64
	)
	r.db.read(func(s *memoryState) {
		for _, id := range ids {
			a, ok := s.actors[id]
			if !ok {
				missing = id
				return
			}
			out = append(out, &a)
		}
	})
	if missing != 0 {
		return nil, domain.ActorNotFound(missing)
	}
	return out, nil
}

func (r *memoryActorRepo) FindAll(ctx context.Context) ([]*domain.Actor, error) {
	var out []*domain.Actor
	r.db.read(func(s *memoryState) {
		out = make([]*domain.Actor, 0, len(s.actors))
		for _, a := range s.actors {
			out = append(out, &a)
		}
	})
	slices.SortFunc(out, domain.CompareActors)
	return out, nil
}

func (r *memoryActorRepo) FindByMovie(ctx context.Context, movieID int64) ([]*domain.Actor, error) {
	var out []*domain.Actor
	r.db.read(func(s *memoryState) {
		ids := s.movieActors[movieID]
		out = make([]*domain.Actor, 0, len(ids))
		for _, id := range ids {
			if a, ok := s.actors[id]; ok {
				out = append(out, &a)
			}
		}
	})
	slices.SortFunc(out, domain.CompareActors)
	return out, nil
}

func (r *memoryActorRepo) Save(ctx context.Context, actor *domain.Actor) error {
	var err error
	r.db.write(func(s *memoryState) {
		if actor.IsNew() {
			s.nextActorID++
			actor.ID = s.nextActorID
		} else if _, ok := s.actors[actor.ID]; !ok {
			err = domain.ActorNotFound(actor.ID)
			return
		}
		s.actors[actor.ID] = *actor
	})
	return err
}

// --- FILMS ---

type memoryMovieRepo struct {
	db memoryAccess
}

func (r *memoryMovieRepo) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	var (
		m  domain.Movie
		ok bool
	)
	r.db.read(func(s *memoryState) { m, ok = s.movies[id] })
	if !ok {
		return nil, domain.MovieNotFound(id)
	}
	return &m, nil
}

func (r *memoryMovieRepo) FindAll(ctx context.Context) ([]*domain.Movie, error) {
	var out []*domain.Movie
	r.db.read(func(s *memoryState) {
		out = make([]*domain.Movie, 0, len(s.movies))
		for _, m := range s.movies {
			out = append(out, &m)
		}
	})
	slices.SortFunc(out, domain.CompareMovies)
	return out, nil
}

func (r *memoryMovieRepo) FindByActor(ctx context.Context, actorID int64) ([]*domain.Movie, error) {
	var out []*domain.Movie
	r.db.read(func(s *memoryState) {
		for movieID, ids := range s.movieActors {
			if slices.Contains(ids, actorID) {
				m := s.movies[movieID]
				out = append(out, &m)
			}
		}
	})
	slices.SortFunc(out, domain.CompareMovies)
	return out, nil
}

func (r *memoryMovieRepo) Save(ctx context.Context, movie *domain.Movie) error {
	var err error
	r.db.write(func(s *memoryState) {
		if movie.IsNew() {
			s.nextMovieID++
			movie.ID = s.nextMovieID
		} else if _, ok := s.movies[movie.ID]; !ok {
			err = domain.MovieNotFound(movie.ID)
			return
		}
		s.movies[movie.ID] = *movie
	})
	return err
}

// SetActors applique les mêmes contraintes qu'une clé étrangère.
func (r *memoryMovieRepo) SetActors(ctx context.Context, movieID int64, actorIDs []int64) error {
	var err error
	r.db.write(func(s *memoryState) {
		if _, ok := s.movies[movieID]; !ok {
			err = domain.MovieNotFound(movieID)
			return
		}
		ids := make([]int64, 0, len(actorIDs))
		for _, id := range actorIDs {
			if _, ok := s.actors[id]; !ok {
				err = domain.ActorNotFound(id)
				return
			}
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		s.movieActors[movieID] = ids
	})
	return err
}

var (
	_ ports.Store        = (*MemoryStore)(nil)
	_ ports.Repositories = (*memoryTx)(nil)
)
