package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"ComandaApp/app/ticket"

	"github.com/shopspring/decimal"
)

// DailyTotal is one day of aggregated sales.
type DailyTotal struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int    `json:"revenue"`
}

// ItemCount is an aggregated dish count across the period.
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int    `json:"revenue"`
}

// SalesSummary is what the analytics dashboard renders.
type SalesSummary struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	Orders        int             `json:"orders"`
	Revenue       int             `json:"revenue"`
	DeliveryFees  int             `json:"delivery_fees"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	Daily         []DailyTotal    `json:"daily"`
	ByPayment     map[string]int  `json:"by_payment"`
	TopItems      []ItemCount     `json:"top_items"`
}

// SalesService aggregates the backend's historical sales for the
// analytics dashboard.
type SalesService struct {
	backend Backend
}

// NewSalesService creates a sales analytics service.
func NewSalesService(backend Backend) *SalesService {
	return &SalesService{backend: backend}
}

// Summary aggregates sales between from and to (inclusive,
// "2006-01-02"). Item counts come from reparsing each sale's detail
// string, so malformed rows degrade per the parser rules instead of
// breaking the whole report.
func (s *SalesService) Summary(ctx context.Context, from, to string) (*SalesSummary, error) {
	sales, err := s.backend.FetchSales(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error fetching sales: %w", err)
	}

	summary := &SalesSummary{
		From:      from,
		To:        to,
		ByPayment: make(map[string]int),
	}

	daily := make(map[string]*DailyTotal)
	itemTotals := make(map[string]*ItemCount)

	for _, sale := range sales {
		total := sale.Total()
		summary.Orders++
		summary.Revenue += total
		summary.DeliveryFees += sale.DeliveryFee

		payment := sale.Payment
		if payment == "" {
			payment = "sin especificar"
		}
		summary.ByPayment[payment] += total

		day, ok := daily[sale.Date]
		if !ok {
			day = &DailyTotal{Date: sale.Date}
			daily[sale.Date] = day
		}
		day.Orders++
		day.Revenue += total

		for _, it := range ticket.ParseDetails(sale.Detail) {
			entry, ok := itemTotals[it.Name]
			if !ok {
				entry = &ItemCount{Name: it.Name}
				itemTotals[it.Name] = entry
			}
			entry.Quantity += it.QuantityNum()
			entry.Revenue += it.Price
		}
	}

	if summary.Orders > 0 {
		summary.AverageTicket = decimal.NewFromInt(int64(summary.Revenue)).
			Div(decimal.NewFromInt(int64(summary.Orders))).
			Round(2)
	}

	summary.Daily = make([]DailyTotal, 0, len(daily))
	for _, d := range daily {
		summary.Daily = append(summary.Daily, *d)
	}
	sort.Slice(summary.Daily, func(i, j int) bool { return summary.Daily[i].Date < summary.Daily[j].Date })

	summary.TopItems = make([]ItemCount, 0, len(itemTotals))
	for _, it := range itemTotals {
		summary.TopItems = append(summary.TopItems, *it)
	}
	sort.Slice(summary.TopItems, func(i, j int) bool {
		if summary.TopItems[i].Quantity != summary.TopItems[j].Quantity {
			return summary.TopItems[i].Quantity > summary.TopItems[j].Quantity
		}
		return summary.TopItems[i].Name < summary.TopItems[j].Name
	})
	if len(summary.TopItems) > 20 {
		summary.TopItems = summary.TopItems[:20]
	}

	return summary, nil
}

// ExportCSV streams the raw sales rows for the period as CSV, for
// download from the analytics dashboard.
func (s *SalesService) ExportCSV(ctx context.Context, from, to string, w io.Writer) error {
	sales, err := s.backend.FetchSales(ctx, from, to)
	if err != nil {
		return fmt.Errorf("error fetching sales: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"fecha", "detalle", "subtotal", "domicilio", "total", "pago"}); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}

	for _, sale := range sales {
		record := []string{
			sale.Date,
			sale.Detail,
			strconv.Itoa(sale.Subtotal),
			strconv.Itoa(sale.DeliveryFee),
			strconv.Itoa(sale.Total()),
			sale.Payment,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing csv: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
