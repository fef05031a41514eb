package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a purchasable catalog entry, optionally size-variant. The
// (name, size) pair is unique across the catalog; an empty size means the
// item has no size variant.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Size        string          `json:"size,omitempty"`
	Price       decimal.Decimal `json:"price"`
	AddOns      []AddOn         `json:"addons"`
	CreatedAt   time.Time       `json:"created"`
	UpdatedAt   time.Time       `json:"updated"`
}

// AddOn is an optional extra attachable to one or more menu items, priced
// independently. Names are globally unique; add-ons are shared across menu
// items, not owned by one.
type AddOn struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created"`
	UpdatedAt   time.Time       `json:"updated"`
}

// CreateMenuItemRequest is the payload for POST /menuitems.
type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateMenuItemRequest is the partial payload for PUT /menuitems/{id}.
// Pointer fields distinguish "absent" from "set to zero value".
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Size        *string          `json:"size"`
	Price       *decimal.Decimal `json:"price"`
}

// CreateAddOnRequest is the payload for POST /menuitems/{id}/addons.
type CreateAddOnRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateAddOnRequest is the partial payload for PUT /addons/{id}.
type UpdateAddOnRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}
