package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fryegg/api/internal/models"
)

var ErrSurveyNotFound = errors.New("survey not found")

type SurveyRepository struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{pool: pool}
}

func (r *SurveyRepository) Insert(ctx context.Context, s models.Survey) (models.Survey, error) {
	const query = `
		INSERT INTO survey (created_at, author, title, title_contents, questions)
		VALUES (NOW(), $1, $2, $3, $4)
		RETURNING id, created_at
	`

	row := r.pool.QueryRow(ctx, query, s.Author, s.Title, s.TitleContents, s.Questions)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return models.Survey{}, err
	}
	return s, nil
}

func (r *SurveyRepository) Update(ctx context.Context, s models.Survey) error {
	const query = `
		UPDATE survey
		SET title = $2, title_contents = $3, questions = $4
		WHERE author = $1
	`
	cmd, err := r.pool.Exec(ctx, query, s.Author, s.Title, s.TitleContents, s.Questions)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (r *SurveyRepository) FindByAuthor(ctx context.Context, author string) (models.Survey, error) {
	const query = `
		SELECT id, created_at, author, title, title_contents, questions
		FROM survey
		WHERE author = $1
	`

	row := r.pool.QueryRow(ctx, query, author)
	var s models.Survey
	if err := row.Scan(
		&s.ID,
		&s.CreatedAt,
		&s.Author,
		&s.Title,
		&s.TitleContents,
		&s.Questions,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Survey{}, ErrSurveyNotFound
		}
		return models.Survey{}, err
	}
	return s, nil
}
