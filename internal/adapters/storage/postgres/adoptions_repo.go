package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id, pet_id, owner_id, requester_id,
			message, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		req.ID,
		req.PetID,
		req.OwnerID,
		req.RequesterID,
		req.Message,
		string(req.Status),
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Request{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_id, requester_id,
			message, status,
			created_at, updated_at
		FROM adoption_requests
		WHERE id = $1
	`, id)

	return scanRequest(row)
}

// UpdateStatus escribe el status con guard condicional: el UPDATE solo
// matchea si el status almacenado sigue siendo `from`. Cero filas con la
// solicitud existente significa que otra transición ganó la carrera.
func (r *AdoptionsRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`,
		id,
		string(from),
		string(to),
		at,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM adoption_requests WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return adoptions.ErrConcurrentModification
}

func (r *AdoptionsRepo) FindPending(ctx context.Context, petID, requesterID string) (adoptions.Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_id, requester_id,
			message, status,
			created_at, updated_at
		FROM adoption_requests
		WHERE pet_id = $1 AND requester_id = $2 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`, petID, requesterID)

	return scanRequest(row)
}

func (r *AdoptionsRepo) ListByRequester(ctx context.Context, requesterID string) ([]adoptions.Request, error) {
	return r.list(ctx, `requester_id`, requesterID)
}

func (r *AdoptionsRepo) ListByOwner(ctx context.Context, ownerID string) ([]adoptions.Request, error) {
	return r.list(ctx, `owner_id`, ownerID)
}

func (r *AdoptionsRepo) list(ctx context.Context, column, value string) ([]adoptions.Request, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, owner_id, requester_id,
			message, status,
			created_at, updated_at
		FROM adoption_requests
		WHERE `+column+` = $1
		ORDER BY created_at ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (adoptions.Request, error) {
	var req adoptions.Request
	var status string

	if err := row.Scan(
		&req.ID,
		&req.PetID,
		&req.OwnerID,
		&req.RequesterID,
		&req.Message,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}

	req.Status = adoptions.Status(status)
	return req, nil
}

type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Create(ctx context.Context, rec adoptions.AdoptionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_records (
			id, request_id, pet_id, owner_id, adopter_id, adopted_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		rec.ID,
		rec.RequestID,
		rec.PetID,
		rec.OwnerID,
		rec.AdopterID,
		rec.AdoptedAt,
	)
	return err
}

func (r *LedgerRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.AdoptionRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, pet_id, owner_id, adopter_id, adopted_at
		FROM adoption_records
		WHERE owner_id = $1 OR adopter_id = $1
		ORDER BY adopted_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.AdoptionRecord, 0)
	for rows.Next() {
		var rec adoptions.AdoptionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&rec.PetID,
			&rec.OwnerID,
			&rec.AdopterID,
			&rec.AdoptedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
