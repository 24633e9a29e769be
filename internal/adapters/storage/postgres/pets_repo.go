package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id, name, species, breed, sex,
			age_months, description, photo_url, city,
			status, adopted_by, adopted_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		p.AgeMonths,
		p.Description,
		p.PhotoURL,
		p.City,
		string(p.Status),
		p.AdoptedBy,
		p.AdoptedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_id, name, species, breed, sex,
			age_months, description, photo_url, city,
			status, adopted_by, adopted_at,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.listWhere(ctx, `owner_id = $1`, ownerID)
}

func (r *PetsRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	return r.listWhere(ctx, `status = $1`, string(pets.StatusAvailable))
}

func (r *PetsRepo) listWhere(ctx context.Context, where string, arg any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_id, name, species, breed, sex,
			age_months, description, photo_url, city,
			status, adopted_by, adopted_at,
			created_at, updated_at
		FROM pets
		WHERE `+where+`
		ORDER BY created_at ASC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetStatus escribe solo los campos que vienen seteados en upd: el SET
// de adopted_by/adopted_at se omite cuando son nil.
func (r *PetsRepo) SetStatus(ctx context.Context, id string, upd pets.StatusUpdate) error {
	query := `UPDATE pets SET status = $2, updated_at = $3`
	args := []any{id, string(upd.Status), upd.UpdatedAt}

	if upd.AdoptedBy != nil {
		args = append(args, *upd.AdoptedBy)
		query += `, adopted_by = $4`
	}
	if upd.AdoptedAt != nil {
		args = append(args, *upd.AdoptedAt)
		if upd.AdoptedBy != nil {
			query += `, adopted_at = $5`
		} else {
			query += `, adopted_at = $4`
		}
	}
	query += ` WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, sex, status string
	var adoptedBy sql.NullString
	var adoptedAt sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&species,
		&p.Breed,
		&sex,
		&p.AgeMonths,
		&p.Description,
		&p.PhotoURL,
		&p.City,
		&status,
		&adoptedBy,
		&adoptedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Sex = pets.Sex(sex)
	p.Status = pets.Status(status)
	if adoptedBy.Valid {
		s := adoptedBy.String
		p.AdoptedBy = &s
	}
	if adoptedAt.Valid {
		t := adoptedAt.Time
		p.AdoptedAt = &t
	}

	return p, nil
}
