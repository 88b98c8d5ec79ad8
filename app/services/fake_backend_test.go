package services

import (
	"context"
	"sync"

	"ComandaApp/app/models"
)

// fakeBackend is an in-memory stand-in for the webhook client.
type fakeBackend struct {
	mu sync.Mutex

	menu    []models.MenuItem
	areas   []models.DeliveryArea
	clients []models.Client
	orders  []models.Order
	sales   []models.SaleRecord

	fetchMenuErr    error
	fetchOrdersErr  error
	updateStatusErr error
	createOrderErr  error
	uploadErr       error

	fetchMenuCalls  int
	fetchAreasCalls int
	fetchOrderCalls int

	createdOrders  []models.Order
	statusUpdates  []models.StatusUpdate
	availabilities map[int]bool
	savedAreas     []models.DeliveryArea
	savedClients   []models.Client

	uploadedWAV []byte
	uploadText  string
	onUpload    func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{availabilities: make(map[int]bool)}
}

func (f *fakeBackend) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchMenuCalls++
	if f.fetchMenuErr != nil {
		return nil, f.fetchMenuErr
	}
	return f.menu, nil
}

func (f *fakeBackend) UpdateMenuAvailability(ctx context.Context, id int, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availabilities[id] = available
	return nil
}

func (f *fakeBackend) FetchDeliveryAreas(ctx context.Context) ([]models.DeliveryArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchAreasCalls++
	return f.areas, nil
}

func (f *fakeBackend) SaveDeliveryArea(ctx context.Context, area models.DeliveryArea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedAreas = append(f.savedAreas, area)
	return nil
}

func (f *fakeBackend) FetchClients(ctx context.Context) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients, nil
}

func (f *fakeBackend) SaveClient(ctx context.Context, client models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedClients = append(f.savedClients, client)
	return nil
}

func (f *fakeBackend) FetchOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchOrderCalls++
	if f.fetchOrdersErr != nil {
		return nil, f.fetchOrdersErr
	}
	return f.orders, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, order models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createOrderErr != nil {
		return f.createOrderErr
	}
	f.createdOrders = append(f.createdOrders, order)
	return nil
}

func (f *fakeBackend) UpdateOrderStatus(ctx context.Context, row int, status models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.statusUpdates = append(f.statusUpdates, models.StatusUpdate{Row: row, Status: status})
	return nil
}

func (f *fakeBackend) FetchSales(ctx context.Context, from, to string) ([]models.SaleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sales, nil
}

func (f *fakeBackend) UploadDictation(ctx context.Context, wav []byte, filename string) (string, error) {
	if f.onUpload != nil {
		f.onUpload()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedWAV = wav
	return f.uploadText, nil
}

// fakeNotifier records broadcast order events.
type fakeNotifier struct {
	mu      sync.Mutex
	created []models.Order
	updated []models.Order
}

func (n *fakeNotifier) BroadcastOrderNew(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, order)
}

func (n *fakeNotifier) BroadcastOrderUpdate(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, order)
}
