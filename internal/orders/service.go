package orders

import (
	"context"
	"sort"

	"foodcourier/internal/catalog"
	"foodcourier/internal/logger"
	"foodcourier/internal/models"
	"foodcourier/internal/uow"
)

// listTokens maps the URL-facing status aliases to stored statuses. Only
// the kitchen ("new") and dispatch ("ready") work queues are exposed.
var listTokens = map[string]models.OrderStatus{
	"new":   models.StatusNew,
	"ready": models.StatusReadyForPickup,
}

func listTokenNames() []string {
	names := make([]string, 0, len(listTokens))
	for token := range listTokens {
		names = append(names, token)
	}
	sort.Strings(names)
	return names
}

// Service drives the order lifecycle: composition and persistence of new
// orders, reads, and status updates. Writes run through units of work so
// the matching confirmation events dispatch only on commit.
type Service struct {
	uow    *uow.Manager
	store  *Store
	logger *logger.Logger
}

// NewService creates an order service. store handles the read paths; writes
// build their own store over the unit-of-work transaction.
func NewService(manager *uow.Manager, store *Store, log *logger.Logger) *Service {
	return &Service{
		uow:    manager,
		store:  store,
		logger: log,
	}
}

// Create composes the requested order against the catalog, persists it, and
// queues the confirmation event. Composition and the insert share one
// transaction, so the prices an order captures are the prices the catalog
// held at commit time.
func (s *Service) Create(ctx context.Context, requestID string, req *models.CreateOrderRequest) (*models.Order, error) {
	u, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer u.Rollback(ctx)

	order, err := Compose(ctx, req, catalog.NewStore(u.Tx()))
	if err != nil {
		return nil, err
	}

	if err := NewStore(u.Tx()).CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	u.AddEvent(models.OrderCreatedEvent{
		OrderID:   order.ID,
		Recipient: order.Customer.Email,
		FirstName: order.Customer.FirstName,
		Total:     order.Total(),
	})

	if err := u.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "New order accepted", requestID, map[string]interface{}{
		"order_id": order.ID,
		"subtotal": order.Subtotal,
		"total":    order.Total(),
	})
	return order, nil
}

// Get fetches one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// ListByStatusToken resolves a URL status token ("new", "ready") and lists
// the matching orders oldest first. An unknown token is InvalidOrderState,
// with the detail listing the tokens this endpoint accepts rather than the
// full lifecycle.
func (s *Service) ListByStatusToken(ctx context.Context, token string) ([]models.Order, error) {
	status, ok := listTokens[token]
	if !ok {
		return nil, models.ErrInvalidStatusToken(token, listTokenNames())
	}
	return s.store.ListByStatus(ctx, status)
}

// UpdateStatus moves an order to a new status and queues the status-change
// event. Any status in the enumerated set is an accepted target.
func (s *Service) UpdateStatus(ctx context.Context, requestID string, id int64, rawStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	u, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer u.Rollback(ctx)

	order, err := NewStore(u.Tx()).UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	u.AddEvent(models.OrderStatusUpdatedEvent{OrderID: order.ID, Status: order.Status})

	if err := u.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", "Order moved to a new status", requestID, map[string]interface{}{
		"order_id": order.ID,
		"status":   string(order.Status),
	})
	return order, nil
}
