package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ComandaApp/app/models"
)

func newTestOrderService(backend *fakeBackend, notifier *fakeNotifier) *OrderService {
	delivery := NewDeliveryService(backend, time.Minute, nil)
	var n OrderNotifier
	if notifier != nil {
		n = notifier
	}
	return NewOrderService(backend, delivery, n)
}

func TestRefreshBroadcastsChanges(t *testing.T) {
	backend := newFakeBackend()
	notifier := &fakeNotifier{}
	svc := newTestOrderService(backend, notifier)
	ctx := context.Background()

	backend.orders = []models.Order{
		{Row: 1, Name: "Ana", Detail: "x", Status: models.StatusPidiendo},
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(notifier.created) != 1 || notifier.created[0].Row != 1 {
		t.Fatalf("first poll should announce the new order, got %+v", notifier.created)
	}

	// Second cycle: row 1 changed status, row 2 is new.
	backend.orders = []models.Order{
		{Row: 1, Name: "Ana", Detail: "x", Status: models.StatusConfirmado},
		{Row: 2, Name: "Luis", Detail: "y", Status: models.StatusPidiendo},
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(notifier.created) != 2 || notifier.created[1].Row != 2 {
		t.Errorf("new order not announced: %+v", notifier.created)
	}
	if len(notifier.updated) != 1 || notifier.updated[0].Status != models.StatusConfirmado {
		t.Errorf("status change not announced: %+v", notifier.updated)
	}

	// Third cycle: nothing changed, nothing announced.
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(notifier.created) != 2 || len(notifier.updated) != 1 {
		t.Error("unchanged poll should not re-announce")
	}
}

func TestRefreshError(t *testing.T) {
	backend := newFakeBackend()
	backend.fetchOrdersErr = errors.New("backend down")
	svc := newTestOrderService(backend, nil)

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestOrdersFilterAndOrder(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestOrderService(backend, nil)
	backend.orders = []models.Order{
		{Row: 1, Detail: "a", Status: models.StatusPidiendo},
		{Row: 3, Detail: "c", Status: models.StatusConfirmado},
		{Row: 2, Detail: "b", Status: models.StatusPidiendo},
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	all := svc.Orders("")
	if len(all) != 3 || all[0].Row != 3 || all[1].Row != 2 || all[2].Row != 1 {
		t.Errorf("orders not newest first: %+v", all)
	}

	pending := svc.Orders(models.StatusPidiendo)
	if len(pending) != 2 {
		t.Errorf("status filter returned %d orders, want 2", len(pending))
	}
}

func TestCheckout(t *testing.T) {
	backend := newFakeBackend()
	backend.areas = []models.DeliveryArea{{Name: "Laureles", Fee: 5000}}
	svc := newTestOrderService(backend, nil)

	order, err := svc.Checkout(context.Background(), models.CheckoutRequest{
		Name:    "Ana",
		Phone:   "3001234567",
		Address: "Calle 1 # 2-3",
		Area:    "laureles",
		Payment: "efectivo",
		Items: []models.CheckoutItem{
			{Name: "Bandeja paisa", Quantity: 2, UnitPrice: 25000, Notes: "sin cebolla"},
			{Name: "Jugo", Quantity: 1, UnitPrice: 6000},
		},
		Comments: "timbre dañado",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.Subtotal != 56000 {
		t.Errorf("subtotal = %d, want 56000", order.Subtotal)
	}
	if order.DeliveryFee != 5000 {
		t.Errorf("delivery fee = %d, want 5000", order.DeliveryFee)
	}
	if order.Status != models.StatusPidiendo {
		t.Errorf("status = %q, want %q", order.Status, models.StatusPidiendo)
	}

	wantDetail := "- 2, Bandeja paisa (sin cebolla), 50000; - 1, Jugo, 6000; - 1, (timbre dañado), 0"
	if order.Detail != wantDetail {
		t.Errorf("detail = %q\n    want %q", order.Detail, wantDetail)
	}

	if len(backend.createdOrders) != 1 {
		t.Fatalf("backend received %d orders, want 1", len(backend.createdOrders))
	}
}

func TestCheckoutValidation(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestOrderService(backend, nil)
	ctx := context.Background()

	if _, err := svc.Checkout(ctx, models.CheckoutRequest{Name: "Ana"}); err == nil {
		t.Error("empty cart should be rejected")
	}
	if _, err := svc.Checkout(ctx, models.CheckoutRequest{
		Items: []models.CheckoutItem{{Name: "Jugo", Quantity: 1, UnitPrice: 6000}},
	}); err == nil {
		t.Error("missing name should be rejected")
	}

	_, err := svc.Checkout(ctx, models.CheckoutRequest{
		Name: "Ana",
		Area: "Marte",
		Items: []models.CheckoutItem{{Name: "Jugo", Quantity: 1, UnitPrice: 6000}},
	})
	if !errors.Is(err, ErrUnknownArea) {
		t.Errorf("unknown area err = %v, want ErrUnknownArea", err)
	}
	if len(backend.createdOrders) != 0 {
		t.Error("no order should reach the backend on validation failure")
	}
}

func TestUpdateStatusOptimistic(t *testing.T) {
	backend := newFakeBackend()
	notifier := &fakeNotifier{}
	svc := newTestOrderService(backend, notifier)
	backend.orders = []models.Order{{Row: 5, Detail: "x", Status: models.StatusConfirmado}}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	notifier.created = nil

	if err := svc.UpdateStatus(context.Background(), 5, models.StatusImpreso); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	o, ok := svc.Get(5)
	if !ok || o.Status != models.StatusImpreso {
		t.Errorf("snapshot not updated: %+v", o)
	}
	if len(backend.statusUpdates) != 1 || backend.statusUpdates[0].Row != 5 {
		t.Errorf("backend updates = %+v", backend.statusUpdates)
	}
	if len(notifier.updated) != 1 {
		t.Errorf("update not broadcast: %+v", notifier.updated)
	}
}

func TestUpdateStatusRevertsOnBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestOrderService(backend, nil)
	backend.orders = []models.Order{{Row: 5, Detail: "x", Status: models.StatusConfirmado}}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	backend.updateStatusErr = errors.New("sheet locked")
	err := svc.UpdateStatus(context.Background(), 5, models.StatusImpreso)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "sheet locked") {
		t.Errorf("backend cause lost: %v", err)
	}

	o, _ := svc.Get(5)
	if o.Status != models.StatusConfirmado {
		t.Errorf("optimistic change not reverted: status = %q", o.Status)
	}
}

func TestUpdateStatusUnknownRow(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestOrderService(backend, nil)

	if err := svc.UpdateStatus(context.Background(), 99, models.StatusImpreso); err == nil {
		t.Fatal("expected an error for an unknown row")
	}
	if len(backend.statusUpdates) != 0 {
		t.Error("no backend call should happen for an unknown row")
	}
}
