package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourier/internal/models"
)

// fakeCatalog resolves lookups against in-memory slices, mirroring the
// store's matching semantics.
type fakeCatalog struct {
	items  []models.MenuItem
	addons []models.AddOn
}

func (f *fakeCatalog) MenuItemByNameSize(ctx context.Context, name, size string) (*models.MenuItem, error) {
	for i := range f.items {
		if f.items[i].Name == name && f.items[i].Size == strings.ToLower(size) {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) MenuItemsByName(ctx context.Context, name string) ([]models.MenuItem, error) {
	var matches []models.MenuItem
	for _, item := range f.items {
		if item.Name == name {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (f *fakeCatalog) AddOnByName(ctx context.Context, name string) (*models.AddOn, error) {
	for i := range f.addons {
		if f.addons[i].Name == name {
			return &f.addons[i], nil
		}
	}
	return nil, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func orderRequest(items ...models.OrderItemRequest) *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Customer: models.Customer{
			FirstName:   "Brian",
			LastName:    "Zimmer",
			PhoneNumber: "555-0100",
			Email:       "brian@example.com",
			Address:     "1 Main St",
			City:        "Fort Collins",
			State:       "CO",
			Zip:         "99999",
		},
		Items:       items,
		DeliveryFee: price("3.00"),
	}
}

func TestCompose_SingleItemNoSize(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{{ID: 1, Name: "Hamburger", Price: price("8.99")}},
	}

	order, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "Hamburger"},
	), catalog)

	require.NoError(t, err)
	assert.Equal(t, "8.99", order.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", order.Tax.StringFixed(2))
	assert.Equal(t, "11.99", order.Total().StringFixed(2))
	assert.Equal(t, models.StatusNew, order.Status)
}

func TestCompose_SubtotalAccumulatesItemsAndAddOns(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "Hamburger", Price: price("8.99")},
			{ID: 2, Name: "French fries", Size: "large", Price: price("4.99")},
		},
		addons: []models.AddOn{
			{ID: 1, Name: "Extra cheese", Price: price("1.50")},
			{ID: 2, Name: "Bacon", Price: price("2.00")},
		},
	}

	order, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{
			Name:   "Hamburger",
			AddOns: []models.OrderAddOnRequest{{Name: "Extra cheese"}, {Name: "Bacon"}},
		},
		models.OrderItemRequest{Name: "French fries", Size: "large"},
	), catalog)

	require.NoError(t, err)
	// 8.99 + 1.50 + 2.00 + 4.99
	assert.Equal(t, "17.48", order.Subtotal.StringFixed(2))
}

func TestCompose_EmptyOrderRejectedBeforeLookups(t *testing.T) {
	_, err := Compose(context.Background(), orderRequest(), &fakeCatalog{})

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeEmptyOrder, appErr.Code)
}

func TestCompose_UnknownItemIsItemNotFound(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{{ID: 1, Name: "Hamburger", Price: price("8.99")}},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "Cheeseburger"},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeItemNotFound, appErr.Code)
	assert.Equal(t, "Cheeseburger", appErr.Details["name"])
}

func TestCompose_UnknownSizeIsItemNotFoundNotAmbiguous(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "French fries", Size: "small", Price: price("2.99")},
			{ID: 2, Name: "French fries", Size: "large", Price: price("4.99")},
		},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "French fries", Size: "mega"},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeItemNotFound, appErr.Code)
}

func TestCompose_SizeMatchIsCaseNormalized(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "French fries", Size: "large", Price: price("4.99")},
			{ID: 2, Name: "French fries", Size: "small", Price: price("2.99")},
		},
	}

	order, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "French fries", Size: "Large"},
	), catalog)

	require.NoError(t, err)
	assert.Equal(t, "4.99", order.Subtotal.StringFixed(2))
}

func TestCompose_MultipleVariantsWithoutSizeIsAmbiguous(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "French fries", Size: "small", Price: price("2.99")},
			{ID: 2, Name: "French fries", Size: "large", Price: price("4.99")},
		},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "French fries"},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeAmbiguousItem, appErr.Code)
	assert.Equal(t, "French fries", appErr.Details["name"])
}

func TestCompose_SizedAndUnsizedVariantWithoutSizeIsAmbiguous(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "Lemonade", Price: price("1.99")},
			{ID: 2, Name: "Lemonade", Size: "large", Price: price("2.99")},
		},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "Lemonade"},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeAmbiguousItem, appErr.Code)
}

func TestCompose_SingleSizedVariantWithoutSizeIsItemNotFound(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{
			{ID: 1, Name: "French fries", Size: "large", Price: price("4.99")},
		},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{Name: "French fries"},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeItemNotFound, appErr.Code)
}

func TestCompose_UnknownAddOn(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{{ID: 1, Name: "Hamburger", Price: price("8.99")}},
	}

	_, err := Compose(context.Background(), orderRequest(
		models.OrderItemRequest{
			Name:   "Hamburger",
			AddOns: []models.OrderAddOnRequest{{Name: "Extra mayo"}},
		},
	), catalog)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeAddOnNotFound, appErr.Code)
	assert.Equal(t, map[string]interface{}{"name": "Extra mayo"}, appErr.Details)
}

func TestCompose_TaxAttachedByPostalCode(t *testing.T) {
	catalog := &fakeCatalog{
		items: []models.MenuItem{{ID: 1, Name: "Hamburger", Price: price("8.99")}},
	}

	req := orderRequest(models.OrderItemRequest{Name: "Hamburger"})
	req.Customer.Zip = "80523"

	order, err := Compose(context.Background(), req, catalog)

	require.NoError(t, err)
	assert.Equal(t, "2.25", order.Tax.StringFixed(2))
	// 8.99 + 2.25 + 3.00
	assert.Equal(t, "14.24", order.Total().StringFixed(2))
}
