// Package drivers is the delivery driver registry.
package drivers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"foodcourier/internal/database"
	"foodcourier/internal/models"
)

// Store persists drivers over a database.Querier.
type Store struct {
	q database.Querier
}

// NewStore creates a driver store over q.
func NewStore(q database.Querier) *Store {
	return &Store{q: q}
}

const driverColumns = "id, first_name, last_name, phone_number, status, created, updated"

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var driver models.Driver
	err := row.Scan(&driver.ID, &driver.FirstName, &driver.LastName,
		&driver.PhoneNumber, &driver.Status, &driver.CreatedAt, &driver.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// CreateDriver registers a new driver. A phone number collision surfaces as
// DuplicateItem.
func (s *Store) CreateDriver(ctx context.Context, driver *models.Driver) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO drivers (first_name, last_name, phone_number, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created, updated`,
		driver.FirstName, driver.LastName, driver.PhoneNumber, driver.Status,
	).Scan(&driver.ID, &driver.CreatedAt, &driver.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrDuplicateItem(map[string]interface{}{
				"phone_number": driver.PhoneNumber,
			})
		}
		return fmt.Errorf("failed to insert driver: %w", err)
	}
	return nil
}

// ListDrivers fetches all registered drivers.
func (s *Store) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, *driver)
	}
	return drivers, rows.Err()
}
