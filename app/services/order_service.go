package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ComandaApp/app/metrics"
	"ComandaApp/app/models"
	"ComandaApp/app/ticket"
)

// OrderNotifier receives order events for the live dashboards. The
// websocket hub implements it.
type OrderNotifier interface {
	BroadcastOrderNew(order models.Order)
	BroadcastOrderUpdate(order models.Order)
}

// OrderService owns the transient order snapshot. The webhook backend is
// the source of truth; the snapshot is replaced wholesale on every poll
// cycle and mutated optimistically in between, pending backend
// confirmation.
type OrderService struct {
	mu       sync.RWMutex
	backend  Backend
	delivery *DeliveryService
	notifier OrderNotifier
	orders   map[int]models.Order // keyed by backend row
	fetched  time.Time
}

// NewOrderService creates an order service. notifier may be nil.
func NewOrderService(backend Backend, delivery *DeliveryService, notifier OrderNotifier) *OrderService {
	return &OrderService{
		backend:  backend,
		delivery: delivery,
		notifier: notifier,
		orders:   make(map[int]models.Order),
	}
}

// Refresh replaces the snapshot with the backend's current orders and
// broadcasts what changed since the previous cycle.
func (s *OrderService) Refresh(ctx context.Context) error {
	fresh, err := s.backend.FetchOrders(ctx)
	if err != nil {
		metrics.OrdersPolled.WithLabelValues("error").Inc()
		return fmt.Errorf("error fetching orders: %w", err)
	}
	metrics.OrdersPolled.WithLabelValues("ok").Inc()

	s.mu.Lock()
	previous := s.orders
	s.orders = make(map[int]models.Order, len(fresh))
	for _, o := range fresh {
		s.orders[o.Row] = o
	}
	s.fetched = time.Now()
	s.mu.Unlock()

	if s.notifier == nil {
		return nil
	}

	for _, o := range fresh {
		old, known := previous[o.Row]
		switch {
		case !known:
			s.notifier.BroadcastOrderNew(o)
		case old.Status != o.Status:
			s.notifier.BroadcastOrderUpdate(o)
		}
	}
	return nil
}

// Orders returns the snapshot, optionally filtered by status, newest
// row first.
func (s *OrderService) Orders(status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row > out[j].Row })
	return out
}

// Get returns one order from the snapshot.
func (s *OrderService) Get(row int) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[row]
	return o, ok
}

// Checkout validates a cart submission, serializes it into the
// backend's detail format and creates the order. The created order is
// not added to the snapshot; the next poll picks it up with its
// backend-assigned row.
func (s *OrderService) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	var order models.Order

	if len(req.Items) == 0 {
		return order, fmt.Errorf("cart is empty")
	}
	if req.Name == "" {
		return order, fmt.Errorf("customer name is required")
	}

	items := make([]ticket.Item, 0, len(req.Items))
	subtotal := 0
	for _, ci := range req.Items {
		qty := ci.Quantity
		if qty < 1 {
			qty = 1
		}
		name := ci.Name
		if ci.Notes != "" {
			name = fmt.Sprintf("%s (%s)", ci.Name, ci.Notes)
		}
		line := qty * ci.UnitPrice
		items = append(items, ticket.Item{
			Quantity: fmt.Sprintf("%d", qty),
			Name:     name,
			Price:    line,
		})
		subtotal += line
	}

	fee := 0
	if req.Area != "" {
		var err error
		fee, err = s.delivery.Quote(ctx, req.Area)
		if err != nil {
			return order, err
		}
	}

	detail := ticket.SerializeDetails(items)
	if req.Comments != "" {
		detail += "; - 1, (" + req.Comments + "), 0"
	}

	order = models.Order{
		Timestamp:   time.Now().Format("2006-01-02 15:04:05"),
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Detail:      detail,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Payment:     req.Payment,
		Status:      models.StatusPidiendo,
	}

	if err := s.backend.CreateOrder(ctx, order); err != nil {
		return order, fmt.Errorf("error creating order: %w", err)
	}
	return order, nil
}

// UpdateStatus changes an order's status optimistically: the snapshot is
// mutated first so the dashboards react immediately, and rolled back if
// the backend POST fails, leaving the caller to surface the error and
// ask for a manual retry.
func (s *OrderService) UpdateStatus(ctx context.Context, row int, status models.OrderStatus) error {
	s.mu.Lock()
	order, ok := s.orders[row]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("order row %d not found", row)
	}
	previous := order.Status
	order.Status = status
	s.orders[row] = order
	s.mu.Unlock()

	if err := s.backend.UpdateOrderStatus(ctx, row, status); err != nil {
		// Revert the optimistic change.
		s.mu.Lock()
		if current, still := s.orders[row]; still {
			current.Status = previous
			s.orders[row] = current
		}
		s.mu.Unlock()
		metrics.StatusUpdates.WithLabelValues("error").Inc()
		return fmt.Errorf("error updating order %d to %q: %w", row, status, err)
	}

	metrics.StatusUpdates.WithLabelValues("ok").Inc()
	if s.notifier != nil {
		s.notifier.BroadcastOrderUpdate(order)
	}
	return nil
}
