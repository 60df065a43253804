package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"travelblog-backend/internal/domains/update/model"
	"travelblog-backend/pkg/database"
)

type postgresUpdateRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUpdateRepository(pool *pgxpool.Pool) UpdateRepository {
	return &postgresUpdateRepository{pool: pool}
}

// ====== READ ======

func (r *postgresUpdateRepository) List(ctx context.Context, includeDrafts bool) ([]model.TravelUpdate, error) {
	query := `
		SELECT id, date, day, title, description, status,
		       location_name, location_lat, location_lng, spots, created_at
		FROM travel_updates`
	if !includeDrafts {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	defer rows.Close()

	var updates []model.TravelUpdate
	var ids []string
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, *update)
		ids = append(ids, update.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate updates: %w", err)
	}

	if len(updates) == 0 {
		return updates, nil
	}

	// Photos and extras live in their own tables. Fetch both sets in one
	// query each and attach them to their parent update here.
	photosByUpdate, err := r.photosFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	extrasByUpdate, err := r.extrasFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range updates {
		updates[i].Photos = photosByUpdate[updates[i].ID]
		updates[i].Extras = extrasByUpdate[updates[i].ID]
	}

	return updates, nil
}

func (r *postgresUpdateRepository) GetByID(ctx context.Context, id string) (*model.TravelUpdate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, day, title, description, status,
		       location_name, location_lat, location_lng, spots, created_at
		FROM travel_updates
		WHERE id = $1`, id)

	update, err := scanUpdate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUpdateNotFound
		}
		return nil, err
	}

	photos, err := r.photosFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	extras, err := r.extrasFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	update.Photos = photos[id]
	update.Extras = extras[id]
	return update, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpdate(row rowScanner) (*model.TravelUpdate, error) {
	var update model.TravelUpdate
	var spotsJSON []byte

	err := row.Scan(
		&update.ID, &update.Date, &update.Day, &update.Title,
		&update.Description, &update.Status,
		&update.Location.Name, &update.Location.Lat, &update.Location.Lng,
		&spotsJSON, &update.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan update: %w", err)
	}

	if len(spotsJSON) > 0 {
		if err := json.Unmarshal(spotsJSON, &update.Spots); err != nil {
			return nil, fmt.Errorf("failed to decode spots for update %s: %w", update.ID, err)
		}
	}

	return &update, nil
}

func (r *postgresUpdateRepository) photosFor(ctx context.Context, ids []string) (map[string][]model.TravelPhoto, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, update_id, url, created_at
		FROM travel_photos
		WHERE update_id = ANY($1)
		ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]model.TravelPhoto)
	for rows.Next() {
		var photo model.TravelPhoto
		if err := rows.Scan(&photo.ID, &photo.UpdateID, &photo.URL, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		result[photo.UpdateID] = append(result[photo.UpdateID], photo)
	}
	return result, rows.Err()
}

func (r *postgresUpdateRepository) extrasFor(ctx context.Context, ids []string) (map[string]*model.Extras, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT update_id, micro_story, highlights
		FROM travel_extras
		WHERE update_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list extras: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*model.Extras)
	for rows.Next() {
		var updateID string
		var extras model.Extras
		if err := rows.Scan(&updateID, &extras.MicroStory, pq.Array(&extras.Highlights)); err != nil {
			return nil, fmt.Errorf("failed to scan extras: %w", err)
		}
		result[updateID] = &extras
	}
	return result, rows.Err()
}

// ====== WRITE ======

// Create writes the base row, photo rows and extras in one transaction
// so a failed related write never leaves a partial update behind.
func (r *postgresUpdateRepository) Create(ctx context.Context, update *model.TravelUpdate) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		spotsJSON, err := json.Marshal(update.Spots)
		if err != nil {
			return fmt.Errorf("failed to encode spots: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO travel_updates
				(id, date, day, title, description, status,
				 location_name, location_lat, location_lng, spots, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			update.ID, update.Date, update.Day, update.Title, update.Description,
			update.Status, update.Location.Name, update.Location.Lat,
			update.Location.Lng, spotsJSON, update.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert update: %w", err)
		}

		if err := insertPhotos(ctx, tx, update); err != nil {
			return err
		}
		return upsertExtras(ctx, tx, update)
	})
}

// Replace implements full-replace semantics: the base row is updated,
// every photo row is deleted and the submitted set reinserted, and the
// extras row is upserted or removed. One transaction for the lot.
func (r *postgresUpdateRepository) Replace(ctx context.Context, update *model.TravelUpdate) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		spotsJSON, err := json.Marshal(update.Spots)
		if err != nil {
			return fmt.Errorf("failed to encode spots: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE travel_updates
			SET date = $2, day = $3, title = $4, description = $5, status = $6,
			    location_name = $7, location_lat = $8, location_lng = $9, spots = $10
			WHERE id = $1`,
			update.ID, update.Date, update.Day, update.Title, update.Description,
			update.Status, update.Location.Name, update.Location.Lat,
			update.Location.Lng, spotsJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to update base row: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrUpdateNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM travel_photos WHERE update_id = $1`, update.ID); err != nil {
			return fmt.Errorf("failed to clear photos: %w", err)
		}
		if err := insertPhotos(ctx, tx, update); err != nil {
			return err
		}

		if update.Extras == nil {
			if _, err := tx.Exec(ctx, `DELETE FROM travel_extras WHERE update_id = $1`, update.ID); err != nil {
				return fmt.Errorf("failed to clear extras: %w", err)
			}
			return nil
		}
		return upsertExtras(ctx, tx, update)
	})
}

func (r *postgresUpdateRepository) Delete(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM travel_photos WHERE update_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM travel_extras WHERE update_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete extras: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM travel_updates WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrUpdateNotFound
		}
		return nil
	})
}

func insertPhotos(ctx context.Context, tx pgx.Tx, update *model.TravelUpdate) error {
	for _, photo := range update.Photos {
		createdAt := photo.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO travel_photos (id, update_id, url, created_at)
			VALUES ($1, $2, $3, $4)`,
			photo.ID, update.ID, photo.URL, createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert photo %s: %w", photo.ID, err)
		}
	}
	return nil
}

func upsertExtras(ctx context.Context, tx pgx.Tx, update *model.TravelUpdate) error {
	if update.Extras == nil {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO travel_extras (update_id, micro_story, highlights)
		VALUES ($1, $2, $3)
		ON CONFLICT (update_id)
		DO UPDATE SET micro_story = EXCLUDED.micro_story, highlights = EXCLUDED.highlights`,
		update.ID, update.Extras.MicroStory, pq.Array(update.Extras.Highlights),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert extras: %w", err)
	}
	return nil
}
