// Package catalog is the menu catalog: menu items, add-ons, and the
// association between them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"foodcourier/internal/database"
	"foodcourier/internal/models"
)

// Store is the persistent repository of menu items and add-ons. It runs
// over a database.Querier, so the same store works against the pool for
// reads and against an open transaction inside a unit of work.
type Store struct {
	q database.Querier
}

// NewStore creates a catalog store over q.
func NewStore(q database.Querier) *Store {
	return &Store{q: q}
}

const menuItemColumns = "id, name, description, size, price, created, updated"

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Size,
		&item.Price, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.AddOns = []models.AddOn{}
	return &item, nil
}

// CreateMenuItem persists a new menu item. A (name, size) collision
// surfaces as DuplicateItem.
func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO menuitems (name, description, size, price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created, updated`,
		item.Name, item.Description, strings.ToLower(item.Size), item.Price,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrDuplicateItem(map[string]interface{}{
				"name": item.Name,
				"size": item.Size,
			})
		}
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	item.Size = strings.ToLower(item.Size)
	if item.AddOns == nil {
		item.AddOns = []models.AddOn{}
	}
	return nil
}

// GetMenuItem fetches a single menu item with its add-ons attached.
func (s *Store) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menuitems WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("menu item", id)
		}
		return nil, fmt.Errorf("failed to fetch menu item: %w", err)
	}

	addons, err := s.AddOnsForMenuItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.AddOns = addons
	return item, nil
}

// ListMenuItems fetches all menu items with their add-ons attached.
func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menuitems ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	index := map[int64]int{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}

	// Attach add-ons in one pass over the join table.
	addonRows, err := s.q.Query(ctx,
		`SELECT ma.menuitem_id, a.id, a.name, a.description, a.price, a.created, a.updated
		 FROM menuitem_addons ma
		 JOIN addons a ON a.id = ma.addon_id
		 ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu item addons: %w", err)
	}
	defer addonRows.Close()

	for addonRows.Next() {
		var menuItemID int64
		var addon models.AddOn
		err := addonRows.Scan(&menuItemID, &addon.ID, &addon.Name,
			&addon.Description, &addon.Price, &addon.CreatedAt, &addon.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan addon: %w", err)
		}
		if i, ok := index[menuItemID]; ok {
			items[i].AddOns = append(items[i].AddOns, addon)
		}
	}
	if err := addonRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate addons: %w", err)
	}

	return items, nil
}

// MenuItemByNameSize looks up a menu item by name and a non-empty size,
// matched case-normalized. Returns (nil, nil) when no row matches; the
// caller owns the not-found semantics.
func (s *Store) MenuItemByNameSize(ctx context.Context, name, size string) (*models.MenuItem, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menuitems WHERE name = $1 AND size = $2`,
		name, strings.ToLower(size))
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch menu item by name and size: %w", err)
	}
	return item, nil
}

// MenuItemsByName returns every menu item sharing a name, across all size
// variants.
func (s *Store) MenuItemsByName(ctx context.Context, name string) ([]models.MenuItem, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menuitems WHERE name = $1 ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu items by name: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateMenuItem applies a partial update and returns the refreshed row.
// The caller is responsible for dropping a same-value name from fields
// first; a (name, size) collision with another row is DuplicateItem.
func (s *Store) UpdateMenuItem(ctx context.Context, id int64, fields map[string]interface{}) (*models.MenuItem, error) {
	if size, ok := fields["size"].(string); ok {
		fields["size"] = strings.ToLower(size)
	}

	set, args := buildUpdateSet(fields)
	args = append(args, id)

	row := s.q.QueryRow(ctx,
		fmt.Sprintf(`UPDATE menuitems SET %s, updated = NOW() WHERE id = $%d RETURNING %s`,
			set, len(args), menuItemColumns),
		args...)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("menu item", id)
		}
		if database.IsUniqueViolation(err) {
			return nil, models.ErrDuplicateItem(map[string]interface{}{"fields": fields})
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	addons, err := s.AddOnsForMenuItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.AddOns = addons
	return item, nil
}

const addOnColumns = "id, name, description, price, created, updated"

func scanAddOn(row pgx.Row) (*models.AddOn, error) {
	var addon models.AddOn
	err := row.Scan(&addon.ID, &addon.Name, &addon.Description,
		&addon.Price, &addon.CreatedAt, &addon.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &addon, nil
}

// AddOnByName looks up an add-on by its globally unique name. Returns
// (nil, nil) when absent.
func (s *Store) AddOnByName(ctx context.Context, name string) (*models.AddOn, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+addOnColumns+` FROM addons WHERE name = $1`, name)
	addon, err := scanAddOn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch addon by name: %w", err)
	}
	return addon, nil
}

// FetchOrCreateAddOn returns the existing add-on with the request's name,
// or persists a new one. When the add-on exists the request's price and
// description are discarded, not merged. Safe under concurrent invocation
// for the same name: the insert defers to the storage-level uniqueness
// constraint and a conflict means someone else created it first, so we
// refetch.
func (s *Store) FetchOrCreateAddOn(ctx context.Context, addon *models.AddOn) (*models.AddOn, error) {
	if existing, err := s.AddOnByName(ctx, addon.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	row := s.q.QueryRow(ctx,
		`INSERT INTO addons (name, description, price)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING `+addOnColumns,
		addon.Name, addon.Description, addon.Price)
	created, err := scanAddOn(row)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to insert addon: %w", err)
	}

	// Lost the race: the conflicting row is the one we want.
	existing, err := s.AddOnByName(ctx, addon.Name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("addon %q vanished after insert conflict", addon.Name)
	}
	return existing, nil
}

// GetAddOn fetches a single add-on by id.
func (s *Store) GetAddOn(ctx context.Context, id int64) (*models.AddOn, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+addOnColumns+` FROM addons WHERE id = $1`, id)
	addon, err := scanAddOn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("addon", id)
		}
		return nil, fmt.Errorf("failed to fetch addon: %w", err)
	}
	return addon, nil
}

// ListAddOns fetches all add-ons.
func (s *Store) ListAddOns(ctx context.Context) ([]models.AddOn, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+addOnColumns+` FROM addons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}
	defer rows.Close()

	addons := []models.AddOn{}
	for rows.Next() {
		addon, err := scanAddOn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan addon: %w", err)
		}
		addons = append(addons, *addon)
	}
	return addons, rows.Err()
}

// UpdateAddOn applies a partial update and returns the refreshed row.
func (s *Store) UpdateAddOn(ctx context.Context, id int64, fields map[string]interface{}) (*models.AddOn, error) {
	set, args := buildUpdateSet(fields)
	args = append(args, id)

	row := s.q.QueryRow(ctx,
		fmt.Sprintf(`UPDATE addons SET %s, updated = NOW() WHERE id = $%d RETURNING %s`,
			set, len(args), addOnColumns),
		args...)
	addon, err := scanAddOn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound("addon", id)
		}
		if database.IsUniqueViolation(err) {
			return nil, models.ErrDuplicateItem(map[string]interface{}{"fields": fields})
		}
		return nil, fmt.Errorf("failed to update addon: %w", err)
	}
	return addon, nil
}

// AttachAddOn associates an add-on with a menu item. Re-attaching an
// already linked pair is a no-op upsert, not an error.
func (s *Store) AttachAddOn(ctx context.Context, menuItemID, addOnID int64) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO menuitem_addons (menuitem_id, addon_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		menuItemID, addOnID)
	if err != nil {
		return fmt.Errorf("failed to attach addon to menu item: %w", err)
	}
	return nil
}

// AddOnsForMenuItem lists the add-ons associated with one menu item,
// ordered by add-on id.
func (s *Store) AddOnsForMenuItem(ctx context.Context, menuItemID int64) ([]models.AddOn, error) {
	rows, err := s.q.Query(ctx,
		`SELECT a.id, a.name, a.description, a.price, a.created, a.updated
		 FROM menuitem_addons ma
		 JOIN addons a ON a.id = ma.addon_id
		 WHERE ma.menuitem_id = $1
		 ORDER BY a.id`, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addons for menu item: %w", err)
	}
	defer rows.Close()

	addons := []models.AddOn{}
	for rows.Next() {
		addon, err := scanAddOn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan addon: %w", err)
		}
		addons = append(addons, *addon)
	}
	return addons, rows.Err()
}

// buildUpdateSet renders a SET clause with positional placeholders from a
// partial-update field map, in deterministic column order.
func buildUpdateSet(fields map[string]interface{}) (string, []interface{}) {
	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	// map iteration order is random; keep the statement stable
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		parts = append(parts, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	return strings.Join(parts, ", "), args
}
