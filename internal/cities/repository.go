package cities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo reads the city catalog from Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a city repository backed by the given pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// LoadAll returns every catalog city. The catalog is small and read once
// at startup, so there is no pagination.
func (r *Repo) LoadAll(ctx context.Context) ([]City, error) {
	query := `
		SELECT name, country, region, latitude, longitude, population, is_major_city, timezone
		FROM cities
		ORDER BY population DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	defer rows.Close()

	cities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (City, error) {
		var c City
		err := row.Scan(&c.Name, &c.Country, &c.Region, &c.Coordinates.Lat, &c.Coordinates.Lng, &c.Population, &c.IsMajor, &c.Timezone)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan cities: %w", err)
	}
	return cities, nil
}
