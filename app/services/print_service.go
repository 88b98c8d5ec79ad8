package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"ComandaApp/app/metrics"
	"ComandaApp/app/models"
	"ComandaApp/app/ticket"

	"gorm.io/gorm"
)

// PrintOptions selects how a ticket is rendered.
type PrintOptions struct {
	// Kitchen tickets print the item section in double height and skip
	// the price columns.
	Kitchen bool
	// Target records which print path the client intends to use:
	// "rawbt" or "browser". Log bookkeeping only; the dispatch payload
	// always carries both.
	Target string
}

// PrintService turns orders into ticket dispatches: detail parsing,
// fixed-width layout, ESC/POS encoding and the RawBT/browser payloads.
type PrintService struct {
	orders          *OrderService
	db              *gorm.DB
	cols            int
	restaurantName  string
	restaurantAddr  string
	restaurantPhone string
	trackingBaseURL string
}

// NewPrintService creates a print service rendering cols-wide tickets
// (42 for 72mm paper, 32 for 42mm). db may be nil to skip the print job
// log.
func NewPrintService(orders *OrderService, db *gorm.DB, cols int, name, addr, phone, trackingBaseURL string) *PrintService {
	if cols < 1 {
		cols = ticket.Cols
	}
	return &PrintService{
		orders:          orders,
		db:              db,
		cols:            cols,
		restaurantName:  name,
		restaurantAddr:  addr,
		restaurantPhone: phone,
		trackingBaseURL: trackingBaseURL,
	}
}

// BuildTicket lays an order out as fixed-width ticket lines.
func (s *PrintService) BuildTicket(order models.Order, kitchen bool) *ticket.Lines {
	lines := &ticket.Lines{}
	sep := strings.Repeat("=", s.cols)

	// Header
	lines.Header = append(lines.Header, ticket.Center(s.restaurantName, s.cols))
	if s.restaurantAddr != "" {
		lines.Header = append(lines.Header, ticket.Center(s.restaurantAddr, s.cols))
	}
	if s.restaurantPhone != "" {
		lines.Header = append(lines.Header, ticket.Center("Tel: "+s.restaurantPhone, s.cols))
	}
	lines.Header = append(lines.Header, sep)
	lines.Header = append(lines.Header, ticket.WrapLabelValue("Orden", strconv.Itoa(order.Row), s.cols)...)
	if order.Timestamp != "" {
		lines.Header = append(lines.Header, ticket.WrapLabelValue("Fecha", order.Timestamp, s.cols)...)
	}
	lines.Header = append(lines.Header, ticket.WrapLabelValue("Cliente", order.Name, s.cols)...)
	if order.Phone != "" {
		lines.Header = append(lines.Header, ticket.WrapLabelValue("Tel", order.Phone, s.cols)...)
	}
	if order.Address != "" {
		lines.Header = append(lines.Header, ticket.WrapLabelValue("Dirección", order.Address, s.cols)...)
	}
	lines.Header = append(lines.Header, sep)

	// Itemized detail
	for _, it := range ticket.ParseDetails(order.Detail) {
		label := fmt.Sprintf("%d x %s", it.QuantityNum(), it.Name)
		if kitchen {
			lines.Detail = append(lines.Detail, ticket.Wrap(label, s.cols)...)
			continue
		}
		// The last label line shares the row with the right-aligned
		// price, so it wraps to the width left of the money column.
		avail := s.cols - len([]rune(ticket.FormatMoney(it.Price))) - 1
		wrapped := ticket.Wrap(label, avail)
		lines.Detail = append(lines.Detail, wrapped[:len(wrapped)-1]...)
		lines.Detail = append(lines.Detail, ticket.TotalLine(wrapped[len(wrapped)-1], it.Price, s.cols))
	}

	// Totals and footer
	lines.Footer = append(lines.Footer, sep)
	if !kitchen {
		lines.Footer = append(lines.Footer, ticket.TotalLine("Subtotal", order.Subtotal, s.cols))
		if order.DeliveryFee > 0 {
			lines.Footer = append(lines.Footer, ticket.TotalLine("Domicilio", order.DeliveryFee, s.cols))
		}
		lines.Footer = append(lines.Footer, ticket.TotalLine("TOTAL", order.Total(), s.cols))
		if order.Payment != "" {
			lines.Footer = append(lines.Footer, ticket.WrapLabelValue("Pago", order.Payment, s.cols)...)
		}
		lines.Footer = append(lines.Footer, "")
		lines.Footer = append(lines.Footer, ticket.Center("¡Gracias por su compra!", s.cols))
	} else if order.Payment != "" {
		lines.Footer = append(lines.Footer, ticket.WrapLabelValue("Pago", order.Payment, s.cols)...)
	}

	return lines
}

// Dispatch renders and encodes the ticket for an order and optimistically
// marks it "impreso". The client performs the actual RawBT navigation or
// browser print; a failed status POST rolls the order back and is
// returned so the dashboard can ask for a retry.
func (s *PrintService) Dispatch(ctx context.Context, row int, opts PrintOptions) (*ticket.Dispatch, error) {
	order, ok := s.orders.Get(row)
	if !ok {
		return nil, fmt.Errorf("order row %d not found", row)
	}

	lines := s.BuildTicket(order, opts.Kitchen)

	trackingURL := ""
	if s.trackingBaseURL != "" {
		trackingURL = fmt.Sprintf("%s/%d", strings.TrimRight(s.trackingBaseURL, "/"), order.Row)
	}

	title := fmt.Sprintf("Orden %d - %s", order.Row, s.restaurantName)
	dispatch, err := ticket.BuildDispatch(title, lines, opts.Kitchen, trackingURL)
	if err != nil {
		s.logJob(order.Row, opts.Target, 0, err)
		return nil, fmt.Errorf("error building ticket: %w", err)
	}

	target := opts.Target
	if target == "" {
		target = "rawbt"
	}
	metrics.TicketsRendered.WithLabelValues(target).Inc()

	if err := s.orders.UpdateStatus(ctx, order.Row, models.StatusImpreso); err != nil {
		s.logJob(order.Row, target, dispatch.ByteSize, err)
		return nil, err
	}

	s.logJob(order.Row, target, dispatch.ByteSize, nil)
	return dispatch, nil
}

func (s *PrintService) logJob(row int, target string, size int, jobErr error) {
	if s.db == nil {
		return
	}

	job := models.PrintJob{
		OrderRow:  row,
		Target:    target,
		ByteSize:  size,
		Succeeded: jobErr == nil,
	}
	if jobErr != nil {
		job.Error = jobErr.Error()
	}

	if err := s.db.Create(&job).Error; err != nil {
		// Bookkeeping only; never fail a print because of it.
		log.Printf("Warning: could not log print job: %v", err)
	}
}
