package services

import (
	"context"

	"ComandaApp/app/models"
)

// Backend is the slice of the webhook client the services use. Tests
// substitute a fake; production wires *webhook.Client.
type Backend interface {
	FetchMenu(ctx context.Context) ([]models.MenuItem, error)
	UpdateMenuAvailability(ctx context.Context, id int, available bool) error
	FetchDeliveryAreas(ctx context.Context) ([]models.DeliveryArea, error)
	SaveDeliveryArea(ctx context.Context, area models.DeliveryArea) error
	FetchClients(ctx context.Context) ([]models.Client, error)
	SaveClient(ctx context.Context, client models.Client) error
	FetchOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, order models.Order) error
	UpdateOrderStatus(ctx context.Context, row int, status models.OrderStatus) error
	FetchSales(ctx context.Context, from, to string) ([]models.SaleRecord, error)
	UploadDictation(ctx context.Context, wav []byte, filename string) (string, error)
}
