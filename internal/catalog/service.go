package catalog

import (
	"context"

	"foodcourier/internal/logger"
	"foodcourier/internal/models"
	"foodcourier/internal/uow"
)

// Service drives catalog maintenance: menu item CRUD, add-on CRUD, and the
// nested add-on attachment flow.
type Service struct {
	uow    *uow.Manager
	store  *Store
	logger *logger.Logger
}

// NewService creates a catalog service.
func NewService(manager *uow.Manager, store *Store, log *logger.Logger) *Service {
	return &Service{
		uow:    manager,
		store:  store,
		logger: log,
	}
}

// ListMenuItems returns the full menu with add-ons attached.
func (s *Service) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

// CreateMenuItem adds a new menu item to the catalog.
func (s *Service) CreateMenuItem(ctx context.Context, requestID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Size:        req.Size,
		Price:       req.Price,
	}
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu_item_created", "Menu item added to catalog", requestID, map[string]interface{}{
		"menu_item_id": item.ID,
		"name":         item.Name,
		"size":         item.Size,
	})
	return item, nil
}

// GetMenuItem fetches one menu item with its add-ons.
func (s *Service) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

// UpdateMenuItem applies a partial update. A name identical to the stored
// one is dropped from the update set before the write, so re-submitting the
// current name alongside other changes does not trip the (name, size)
// uniqueness check.
func (s *Service) UpdateMenuItem(ctx context.Context, id int64, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	current, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := menuItemUpdateSet(current, req)
	if len(fields) == 0 {
		return current, nil
	}

	return s.store.UpdateMenuItem(ctx, id, fields)
}

// menuItemUpdateSet diffs a partial update request against the stored item.
// A name equal to the stored one never enters the set, so only a real
// rename can collide with another (name, size) pair.
func menuItemUpdateSet(current *models.MenuItem, req *models.UpdateMenuItemRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil && *req.Name != current.Name {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Size != nil {
		fields["size"] = *req.Size
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	return fields
}

// ListAddOnsForMenuItem returns the add-ons attached to one menu item,
// verifying the parent exists first.
func (s *Service) ListAddOnsForMenuItem(ctx context.Context, menuItemID int64) ([]models.AddOn, error) {
	if _, err := s.store.GetMenuItem(ctx, menuItemID); err != nil {
		return nil, err
	}
	return s.store.AddOnsForMenuItem(ctx, menuItemID)
}

// AttachAddOn resolves the requested add-on by name, creating it if absent,
// and associates it with the menu item. Resolution and association share
// one unit of work, so a failed association never leaves an orphan add-on
// behind. When the add-on already exists the request's price and
// description are ignored.
func (s *Service) AttachAddOn(ctx context.Context, requestID string, menuItemID int64, req *models.CreateAddOnRequest) (*models.AddOn, error) {
	u, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer u.Rollback(ctx)

	store := NewStore(u.Tx())

	if _, err := store.GetMenuItem(ctx, menuItemID); err != nil {
		return nil, err
	}

	addon, err := store.FetchOrCreateAddOn(ctx, &models.AddOn{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return nil, err
	}

	if err := store.AttachAddOn(ctx, menuItemID, addon.ID); err != nil {
		return nil, err
	}

	if err := u.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("addon_attached", "Add-on associated with menu item", requestID, map[string]interface{}{
		"menu_item_id": menuItemID,
		"addon_id":     addon.ID,
		"addon_name":   addon.Name,
	})
	return addon, nil
}

// ListAddOns returns every add-on in the catalog.
func (s *Service) ListAddOns(ctx context.Context) ([]models.AddOn, error) {
	return s.store.ListAddOns(ctx)
}

// GetAddOn fetches one add-on by id.
func (s *Service) GetAddOn(ctx context.Context, id int64) (*models.AddOn, error) {
	return s.store.GetAddOn(ctx, id)
}

// UpdateAddOn applies a partial update to an add-on.
func (s *Service) UpdateAddOn(ctx context.Context, id int64, req *models.UpdateAddOnRequest) (*models.AddOn, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if len(fields) == 0 {
		return s.store.GetAddOn(ctx, id)
	}
	return s.store.UpdateAddOn(ctx, id, fields)
}
