package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelblog-backend/internal/domains/gallery/model"
	"travelblog-backend/pkg/database"
)

// PostgresGalleryRepository is the remote gallery store.
// It implements both GalleryRepository and InteractionRepository.
type PostgresGalleryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresGalleryRepository(pool *pgxpool.Pool) *PostgresGalleryRepository {
	return &PostgresGalleryRepository{pool: pool}
}

func (r *PostgresGalleryRepository) List(ctx context.Context) ([]model.GalleryPhoto, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, url, title, description, date, source,
		       update_id, update_day, update_title, likes, created_at
		FROM gallery_photos
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery photos: %w", err)
	}
	defer rows.Close()

	var photos []model.GalleryPhoto
	for rows.Next() {
		var photo model.GalleryPhoto
		err := rows.Scan(
			&photo.ID, &photo.URL, &photo.Title, &photo.Description,
			&photo.Date, &photo.Source, &photo.UpdateID, &photo.UpdateDay,
			&photo.UpdateTitle, &photo.Likes, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gallery photo: %w", err)
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PostgresGalleryRepository) CreateBatch(ctx context.Context, photos []model.GalleryPhoto) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, photo := range photos {
			_, err := tx.Exec(ctx, `
				INSERT INTO gallery_photos
					(id, url, title, description, date, source,
					 update_id, update_day, update_title, likes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				photo.ID, photo.URL, photo.Title, photo.Description,
				photo.Date, photo.Source, photo.UpdateID, photo.UpdateDay,
				photo.UpdateTitle, photo.Likes, photo.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert gallery photo %s: %w", photo.ID, err)
			}
		}
		return nil
	})
}

func (r *PostgresGalleryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPhotoNotFound
	}
	return nil
}

func (r *PostgresGalleryRepository) DeleteBySourceUpdate(ctx context.Context, updateID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM gallery_photos WHERE source = 'update' AND update_id = $1`, updateID)
	if err != nil {
		return fmt.Errorf("failed to delete gallery photos for update %s: %w", updateID, err)
	}
	return nil
}

// ====== LIKES & COMMENTS ======

type likeResult struct {
	likes int
	liked bool
}

// Like toggles a visitor's like: the first call records it, the next
// one removes it. Like row and counter move together in one transaction.
func (r *PostgresGalleryRepository) Like(ctx context.Context, photoID, fingerprint string) (int, bool, error) {
	result, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (likeResult, error) {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM gallery_likes WHERE photo_id = $1 AND fingerprint = $2)`,
			photoID, fingerprint).Scan(&exists)
		if err != nil {
			return likeResult{}, fmt.Errorf("failed to check like: %w", err)
		}

		if exists {
			if _, err := tx.Exec(ctx,
				`DELETE FROM gallery_likes WHERE photo_id = $1 AND fingerprint = $2`,
				photoID, fingerprint); err != nil {
				return likeResult{}, fmt.Errorf("failed to remove like: %w", err)
			}

			var likes int
			err := tx.QueryRow(ctx, `
				UPDATE gallery_photos
				SET likes = GREATEST(likes - 1, 0)
				WHERE id = $1
				RETURNING likes`, photoID).Scan(&likes)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return likeResult{}, model.ErrPhotoNotFound
				}
				return likeResult{}, fmt.Errorf("failed to decrement likes: %w", err)
			}
			return likeResult{likes: likes, liked: false}, nil
		}

		// Counter first: a missing photo surfaces as ErrNoRows here
		// instead of a foreign key violation on the like row.
		var likes int
		err = tx.QueryRow(ctx, `
			UPDATE gallery_photos
			SET likes = likes + 1
			WHERE id = $1
			RETURNING likes`, photoID).Scan(&likes)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return likeResult{}, model.ErrPhotoNotFound
			}
			return likeResult{}, fmt.Errorf("failed to increment likes: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO gallery_likes (photo_id, fingerprint) VALUES ($1, $2)`,
			photoID, fingerprint); err != nil {
			return likeResult{}, fmt.Errorf("failed to record like: %w", err)
		}
		return likeResult{likes: likes, liked: true}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return result.likes, result.liked, nil
}

func (r *PostgresGalleryRepository) ListComments(ctx context.Context, photoID string) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, photo_id, author, content, created_at
		FROM gallery_comments
		WHERE photo_id = $1
		ORDER BY created_at ASC`, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.PhotoID, &comment.Author, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *PostgresGalleryRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM gallery_photos WHERE id = $1)`, comment.PhotoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check photo: %w", err)
	}
	if !exists {
		return model.ErrPhotoNotFound
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO gallery_comments (id, photo_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.PhotoID, comment.Author, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// DeleteOrphanedUpdatePhotos is run by the nightly sweep. Deleting an
// update already removes its gallery photos inline; this catches the
// rows left behind when that inline cleanup failed.
func (r *PostgresGalleryRepository) DeleteOrphanedUpdatePhotos(ctx context.Context) (int, error) {
	// update_id is text (local drafts may reference non-uuid ids), so
	// the uuid primary key must be cast for the comparison.
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM gallery_photos
		WHERE source = 'update'
		  AND update_id NOT IN (SELECT id::text FROM travel_updates)`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned photos: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
