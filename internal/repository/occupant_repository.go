package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fryegg/api/internal/models"
)

var ErrOccupantNotFound = errors.New("occupant not found")

// OccupantRepository persists the user_info rows backing the seat map.
type OccupantRepository struct {
	pool *pgxpool.Pool
}

func NewOccupantRepository(pool *pgxpool.Pool) *OccupantRepository {
	return &OccupantRepository{pool: pool}
}

const occupantColumns = `id, seat, user_name, title, profile_image, url, created_at, updated_at`

func (r *OccupantRepository) Create(ctx context.Context, o models.Occupant) error {
	const query = `
		INSERT INTO user_info (
			id, seat, user_name, title, profile_image, url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		o.ID,
		o.Seat,
		o.UserName,
		o.Title,
		o.ProfileImage,
		o.URL,
	)
	return err
}

func (r *OccupantRepository) GetByID(ctx context.Context, id string) (models.Occupant, error) {
	const query = `SELECT ` + occupantColumns + ` FROM user_info WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *OccupantRepository) GetBySeat(ctx context.Context, seat int) (models.Occupant, error) {
	const query = `SELECT ` + occupantColumns + ` FROM user_info WHERE seat = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, seat))
}

func (r *OccupantRepository) List(ctx context.Context) ([]models.Occupant, error) {
	const query = `SELECT ` + occupantColumns + ` FROM user_info ORDER BY seat`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occupants []models.Occupant
	for rows.Next() {
		var o models.Occupant
		if err := rows.Scan(
			&o.ID,
			&o.Seat,
			&o.UserName,
			&o.Title,
			&o.ProfileImage,
			&o.URL,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		occupants = append(occupants, o)
	}
	return occupants, rows.Err()
}

func (r *OccupantRepository) Update(ctx context.Context, o models.Occupant) error {
	const query = `
		UPDATE user_info
		SET seat = $2,
		    user_name = $3,
		    title = $4,
		    profile_image = COALESCE($5, profile_image),
		    url = COALESCE($6, url),
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		o.ID,
		o.Seat,
		o.UserName,
		o.Title,
		o.ProfileImage,
		o.URL,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOccupantNotFound
	}
	return nil
}

// ListProfileImages returns every referenced avatar URL, used by the
// orphan sweep to keep objects that rows still point at.
func (r *OccupantRepository) ListProfileImages(ctx context.Context) ([]string, error) {
	const query = `SELECT profile_image FROM user_info WHERE profile_image IS NOT NULL`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (r *OccupantRepository) scanOne(row pgx.Row) (models.Occupant, error) {
	var o models.Occupant
	if err := row.Scan(
		&o.ID,
		&o.Seat,
		&o.UserName,
		&o.Title,
		&o.ProfileImage,
		&o.URL,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Occupant{}, ErrOccupantNotFound
		}
		return models.Occupant{}, err
	}
	return o, nil
}
