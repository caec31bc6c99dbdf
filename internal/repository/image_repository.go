package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/image-service/internal/domain"
)

// ImageRepository defines persistence access for image metadata.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.Image, error)
	MarkDeleted(ctx context.Context, publicID string) error
	ListURLsByUsername(ctx context.Context, username string) ([]string, error)
}

type imageRepository struct {
	pool *pgxpool.Pool
}

// NewImageRepository returns a Postgres-backed implementation.
func NewImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &imageRepository{pool: pool}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	const query = `
        INSERT INTO user_images (public_id, url, username, deleted)
        VALUES ($1, $2, $3, $4)
        RETURNING id, uploaded_at`

	return r.pool.QueryRow(ctx, query,
		image.PublicID,
		image.URL,
		image.Username,
		image.Deleted,
	).Scan(&image.ID, &image.UploadedAt)
}

func (r *imageRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Image, error) {
	const query = `
        SELECT id, public_id, url, username, deleted, uploaded_at
        FROM user_images WHERE public_id=$1`

	var image domain.Image
	if err := r.pool.QueryRow(ctx, query, publicID).Scan(
		&image.ID,
		&image.PublicID,
		&image.URL,
		&image.Username,
		&image.Deleted,
		&image.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) MarkDeleted(ctx context.Context, publicID string) error {
	const query = `UPDATE user_images SET deleted=TRUE WHERE public_id=$1`

	cmd, err := r.pool.Exec(ctx, query, publicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepository) ListURLsByUsername(ctx context.Context, username string) ([]string, error) {
	const query = `
        SELECT url FROM user_images
        WHERE username=$1 AND deleted=FALSE
        ORDER BY uploaded_at`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
