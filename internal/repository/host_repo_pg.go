package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/jackc/pgx/v5"
)

type HostRepository interface {
	List(ctx context.Context) ([]domain.Host, error)
	GetByID(ctx context.Context, id string) (*domain.Host, error)
	Create(ctx context.Context, host *domain.Host) error
	Update(ctx context.Context, host *domain.Host) error
}

type PGHostRepository struct {
	db DB
}

func NewHostRepository(db DB) HostRepository {
	return &PGHostRepository{db: db}
}

const hostColumns = `id, name, business_name, passcode_hash, created_at`

func scanHost(row pgx.Row) (*domain.Host, error) {
	var h domain.Host
	if err := row.Scan(&h.ID, &h.Name, &h.BusinessName, &h.PasscodeHash, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PGHostRepository) List(ctx context.Context) ([]domain.Host, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hostColumns+` FROM hosts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hosts := make([]domain.Host, 0)
	for rows.Next() {
		h, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, *h)
	}
	return hosts, rows.Err()
}

func (r *PGHostRepository) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	return scanHost(r.db.QueryRow(ctx, `SELECT `+hostColumns+` FROM hosts WHERE id=$1`, id))
}

func (r *PGHostRepository) Create(ctx context.Context, host *domain.Host) error {
	return r.db.QueryRow(ctx, `INSERT INTO hosts (id, name, business_name, passcode_hash) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		host.ID, host.Name, host.BusinessName, host.PasscodeHash).Scan(&host.CreatedAt)
}

// Update saves name and business name and reloads the rest of the record into host.
func (r *PGHostRepository) Update(ctx context.Context, host *domain.Host) error {
	updated, err := scanHost(r.db.QueryRow(ctx, `UPDATE hosts SET name=$1, business_name=$2 WHERE id=$3 RETURNING `+hostColumns,
		host.Name, host.BusinessName, host.ID))
	if err != nil {
		return err
	}
	*host = *updated
	return nil
}

var _ HostRepository = (*PGHostRepository)(nil)
