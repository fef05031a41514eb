package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"foodcourier/internal/database"
	"foodcourier/internal/models"
)

// Store persists orders. Like the catalog store it runs over a
// database.Querier, so it works against the pool or an open transaction.
type Store struct {
	q database.Querier
}

// NewStore creates an order store over q.
func NewStore(q database.Querier) *Store {
	return &Store{q: q}
}

const orderColumns = `id, customer_first_name, customer_last_name, customer_phone_number,
	customer_email, customer_address, customer_city, customer_state, customer_zip,
	items, subtotal, tax, delivery_fee, status, created, updated`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var itemsJSON []byte
	err := row.Scan(&order.ID,
		&order.Customer.FirstName, &order.Customer.LastName, &order.Customer.PhoneNumber,
		&order.Customer.Email, &order.Customer.Address, &order.Customer.City,
		&order.Customer.State, &order.Customer.Zip,
		&itemsJSON, &order.Subtotal, &order.Tax, &order.DeliveryFee,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return &order, nil
}

// CreateOrder persists a composed order and fills in its id and timestamps.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	err = s.q.QueryRow(ctx,
		`INSERT INTO orders (customer_first_name, customer_last_name, customer_phone_number,
			customer_email, customer_address, customer_city, customer_state, customer_zip,
			items, subtotal, tax, delivery_fee, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created, updated`,
		order.Customer.FirstName, order.Customer.LastName, order.Customer.PhoneNumber,
		order.Customer.Email, order.Customer.Address, order.Customer.City,
		order.Customer.State, order.Customer.Zip,
		itemsJSON, order.Subtotal, order.Tax, order.DeliveryFee, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrder fetches a single order by id.
func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("order", id)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

// ListByStatus fetches every order in the given status, oldest first, which
// is the work-queue order the kitchen and dispatch views consume.
func (s *Store) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by status: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateStatus moves an order to the given status in one atomic write and
// returns the refreshed row. A missing order is NotFound.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	row := s.q.QueryRow(ctx,
		`UPDATE orders SET status = $1, updated = NOW() WHERE id = $2 RETURNING `+orderColumns,
		status, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("order", id)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}
