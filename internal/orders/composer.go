// Package orders is the order-composition and lifecycle engine.
package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"foodcourier/internal/models"
	"foodcourier/internal/pricing"
)

// Catalog is the read surface the composer resolves against. The catalog
// store satisfies it; tests supply an in-memory fake.
type Catalog interface {
	// MenuItemByNameSize returns the item matching (name, size) for a
	// non-empty size, or (nil, nil) when absent.
	MenuItemByNameSize(ctx context.Context, name, size string) (*models.MenuItem, error)
	// MenuItemsByName returns every size variant sharing a name.
	MenuItemsByName(ctx context.Context, name string) ([]models.MenuItem, error)
	// AddOnByName returns the add-on with the given name, or (nil, nil).
	AddOnByName(ctx context.Context, name string) (*models.AddOn, error)
}

// Compose resolves a raw order request into a priced, validated Order, or
// fails with a precise, machine-readable reason. Resolution is read-only
// against the catalog; persistence is the caller's separate step after
// full success, so a mid-resolution failure mutates nothing.
//
// Matching rules:
//   - A request with a size matches exactly one stored (name, size) pair,
//     size compared case-normalized. No match is ItemNotFound even when an
//     unsized item shares the name.
//   - A request without a size matches only the item with no size variant.
//     Multiple variants sharing the name make the request AmbiguousItem
//     rather than silently picking one. A single sized variant is
//     ItemNotFound, not a silent match.
//   - Add-ons resolve globally by name, not scoped to the menu item they
//     were requested under.
func Compose(ctx context.Context, req *models.CreateOrderRequest, catalog Catalog) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyOrder()
	}

	subtotal := decimal.Zero
	for _, item := range req.Items {
		menuItem, err := resolveMenuItem(ctx, item, catalog)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(menuItem.Price)

		for _, addonReq := range item.AddOns {
			addon, err := catalog.AddOnByName(ctx, addonReq.Name)
			if err != nil {
				return nil, err
			}
			if addon == nil {
				return nil, models.ErrAddOnNotFound(addonReq.Name)
			}
			subtotal = subtotal.Add(addon.Price)
		}
	}

	return &models.Order{
		Customer:    req.Customer,
		Items:       req.Items,
		Subtotal:    subtotal,
		Tax:         pricing.TaxForZip(req.Customer.Zip),
		DeliveryFee: req.DeliveryFee,
		Status:      models.StatusNew,
	}, nil
}

func resolveMenuItem(ctx context.Context, item models.OrderItemRequest, catalog Catalog) (*models.MenuItem, error) {
	if item.Size != "" {
		menuItem, err := catalog.MenuItemByNameSize(ctx, item.Name, item.Size)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, models.ErrItemNotFound(item)
		}
		return menuItem, nil
	}

	candidates, err := catalog.MenuItemsByName(ctx, item.Name)
	if err != nil {
		return nil, err
	}
	switch {
	case len(candidates) == 0:
		return nil, models.ErrItemNotFound(item)
	case len(candidates) > 1:
		return nil, models.ErrAmbiguousItem(item)
	case candidates[0].Size != "":
		// The only variant is sized and the request omitted the size.
		return nil, models.ErrItemNotFound(item)
	}
	return &candidates[0], nil
}
