package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

// Code SQLSTATE foreign_key_violation
const pgForeignKeyViolation = "23503"

// DTOs internes : tampon entre la base et le domaine.
type sqlActor struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type sqlMovie struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
	Year  int    `db:"year"`
}

// querier est satisfait à la fois par *pgxpool.Pool et par pgx.Tx :
// les mêmes repositories servent dans et hors transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore attend un pool déjà configuré (tracer, taille) par main.go.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

// Migrate crée les tables si besoin. Sans arguments, pgx passe par le
// protocole simple, ce qui autorise plusieurs instructions.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Actors() ports.ActorRepository { return &pgActorRepo{db: s.db} }
func (s *PostgresStore) Movies() ports.MovieRepository { return &pgMovieRepo{db: s.db} }

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx ports.Repositories) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&pgTx{db: tx})
	})
}

type pgTx struct {
	db querier
}

func (t *pgTx) Actors() ports.ActorRepository { return &pgActorRepo{db: t.db} }
func (t *pgTx) Movies() ports.MovieRepository { return &pgMovieRepo{db: t.db} }

// --- ACTEURS ---
// Les tris utilisent COLLATE "C" (ordre des octets UTF-8), comme
// domain.CompareActors / CompareMovies : l'ordre ne dépend pas de la locale
// de la base.

type pgActorRepo struct {
	db querier
}

func (r *pgActorRepo) FindByID(ctx context.Context, id int64) (*domain.Actor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM actors WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[sqlActor])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ActorNotFound(id)
		}
		return nil, err
	}
	return a.toDomain(), nil
}

// FindByIDs : une seule requête (WHERE id = ANY), puis vérification des absents.
func (r *pgActorRepo) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Actor, error) {
	if len(ids) == 0 {
		return []*domain.Actor{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name FROM actors WHERE id = ANY(@ids)`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[sqlActor])
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]sqlActor, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	out := make([]*domain.Actor, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, domain.ActorNotFound(id)
		}
		out = append(out, a.toDomain())
	}
	return out, nil
}

func (r *pgActorRepo) FindAll(ctx context.Context) ([]*domain.Actor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM actors ORDER BY name COLLATE "C", id`)
	if err != nil {
		return nil, err
	}
	return collectActors(rows)
}

func (r *pgActorRepo) FindByMovie(ctx context.Context, movieID int64) ([]*domain.Actor, error) {
	q := `
		SELECT a.id, a.name
		FROM actors a
		JOIN movie_actors ma ON ma.actor_id = a.id
		WHERE ma.movie_id = @movie_id
		ORDER BY a.name COLLATE "C", a.id
	`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"movie_id": movieID})
	if err != nil {
		return nil, err
	}
	return collectActors(rows)
}

func (r *pgActorRepo) Save(ctx context.Context, actor *domain.Actor) error {
	if actor.IsNew() {
		q := `INSERT INTO actors (name) VALUES (@name) RETURNING id`
		return r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": actor.Name}).Scan(&actor.ID)
	}

	q := `UPDATE actors SET name = @name WHERE id = @id`
	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": actor.ID, "name": actor.Name})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ActorNotFound(actor.ID)
	}
	return nil
}

// --- FILMS ---

type pgMovieRepo struct {
	db querier
}

func (r *pgMovieRepo) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, year FROM movies WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[sqlMovie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.MovieNotFound(id)
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *pgMovieRepo) FindAll(ctx context.Context) ([]*domain.Movie, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, year FROM movies ORDER BY title COLLATE "C", id`)
	if err != nil {
		return nil, err
	}
	return collectMovies(rows)
}

func (r *pgMovieRepo) FindByActor(ctx context.Context, actorID int64) ([]*domain.Movie, error) {
	q := `
		SELECT m.id, m.title, m.year
		FROM movies m
		JOIN movie_actors ma ON ma.movie_id = m.id
		WHERE ma.actor_id = @actor_id
		ORDER BY m.title COLLATE "C", m.id
	`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"actor_id": actorID})
	if err != nil {
		return nil, err
	}
	return collectMovies(rows)
}

func (r *pgMovieRepo) Save(ctx context.Context, movie *domain.Movie) error {
	args := pgx.NamedArgs{
		"id":    movie.ID,
		"title": movie.Title,
		"year":  movie.Year,
	}
	if movie.IsNew() {
		q := `INSERT INTO movies (title, year) VALUES (@title, @year) RETURNING id`
		return r.db.QueryRow(ctx, q, args).Scan(&movie.ID)
	}

	q := `UPDATE movies SET title = @title, year = @year WHERE id = @id`
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.MovieNotFound(movie.ID)
	}
	return nil
}

// SetActors : DELETE + INSERT. L'appelant doit être dans une transaction
// pour que le remplacement soit atomique.
func (r *pgMovieRepo) SetActors(ctx context.Context, movieID int64, actorIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM movie_actors WHERE movie_id = @movie_id`, pgx.NamedArgs{"movie_id": movieID}); err != nil {
		return err
	}
	if len(actorIDs) == 0 {
		return nil
	}

	q := `
		INSERT INTO movie_actors (movie_id, actor_id)
		SELECT @movie_id::bigint, unnest(@actor_ids::bigint[])
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"movie_id": movieID, "actor_ids": actorIDs})
	return mapForeignKeyError(err, movieID)
}

// --- Helpers ---

func (a sqlActor) toDomain() *domain.Actor {
	return &domain.Actor{ID: a.ID, Name: a.Name}
}

func (m sqlMovie) toDomain() *domain.Movie {
	return &domain.Movie{ID: m.ID, Title: m.Title, Year: m.Year}
}

func collectActors(rows pgx.Rows) ([]*domain.Actor, error) {
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[sqlActor])
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Actor, len(found))
	for i, a := range found {
		out[i] = a.toDomain()
	}
	return out, nil
}

func collectMovies(rows pgx.Rows) ([]*domain.Movie, error) {
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[sqlMovie])
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Movie, len(found))
	for i, m := range found {
		out[i] = m.toDomain()
	}
	return out, nil
}

// mapForeignKeyError traduit une violation de FK sur movie_actors en
// erreur "introuvable" du domaine.
func mapForeignKeyError(err error, movieID int64) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "actor_id") {
		return fmt.Errorf("%w: %s", domain.ErrActorNotFound, pgErr.Detail)
	}
	return domain.MovieNotFound(movieID)
}

var (
	_ ports.Store        = (*PostgresStore)(nil)
	_ ports.Repositories = (*pgTx)(nil)
)
