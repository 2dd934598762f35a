package services

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/models"
)

// invoicesPerPage is the fixed page size of the invoice listing.
const invoicesPerPage = 6

// latestInvoiceCount is how many invoices the dashboard overview shows.
const latestInvoiceCount = 5

// DashboardService answers the read-side queries behind the dashboard:
// filtered listing with pagination, aggregate cards, latest invoices,
// revenue and single-invoice lookup.
type DashboardService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewDashboardService(db *gorm.DB, m *metrics.Metrics, log zerolog.Logger) *DashboardService {
	return &DashboardService{db: db, metrics: m, log: log}
}

// InvoiceRow is one row of the filtered invoice listing, joined with
// customer display fields.
type InvoiceRow struct {
	ID       string               `json:"id"`
	Amount   int64                `json:"amount"`
	Date     string               `json:"date"`
	Status   models.InvoiceStatus `json:"status"`
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	ImageURL string               `json:"image_url"`
}

// LatestInvoice is a display-ready summary row for the overview panel.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// CardData aggregates the four summary figures shown on the overview.
type CardData struct {
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// InvoiceForm is the editable projection of an invoice; Amount is converted
// back to major units for form display.
type InvoiceForm struct {
	ID         string               `json:"id"`
	CustomerID string               `json:"customer_id"`
	Amount     float64              `json:"amount"`
	Status     models.InvoiceStatus `json:"status"`
}

// invoiceSearchScope is the single definition of the listing filter: a
// case-insensitive substring match across customer name and email, and the
// invoice amount, date and status rendered as text. Both the row fetch and
// the page count apply this same scope so they cannot drift apart.
//
// Written portably (lower(...) LIKE, CAST) so the sqlite test harness
// exercises the exact scope Postgres runs.
func invoiceSearchScope(query string) func(*gorm.DB) *gorm.DB {
	like := "%" + strings.ToLower(query) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where(`lower(customers.name) LIKE ? OR
				lower(customers.email) LIKE ? OR
				CAST(invoices.amount AS TEXT) LIKE ? OR
				invoices.date LIKE ? OR
				lower(invoices.status) LIKE ?`,
				like, like, like, like, like)
	}
}

// listingOrder sorts newest first with id as a deterministic tie-break so
// pagination stays stable across pages when dates collide.
const listingOrder = "invoices.date DESC, invoices.id DESC"

// FetchFiltered returns one page of invoices matching query, joined with
// customer data, newest first.
func (s *DashboardService) FetchFiltered(ctx context.Context, query string, page int) ([]InvoiceRow, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("invoices_filtered"))
	defer timer.ObserveDuration()

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * invoicesPerPage

	var rows []InvoiceRow
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Scopes(invoiceSearchScope(query)).
		Select("invoices.id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Order(listingOrder).
		Limit(invoicesPerPage).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Int("page", page).Msg("failed to fetch invoices")
		return nil, ErrDataFetch
	}
	return rows, nil
}

// FetchPages returns the total page count for the listing under the same
// filter predicate as FetchFiltered.
func (s *DashboardService) FetchPages(ctx context.Context, query string) (int, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("invoices_pages"))
	defer timer.ObserveDuration()

	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Scopes(invoiceSearchScope(query)).
		Count(&total).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to count invoices")
		return 0, ErrDataFetch
	}
	pages := (total + invoicesPerPage - 1) / invoicesPerPage
	return int(pages), nil
}

// FetchCardData runs the three overview aggregates concurrently; they are
// independent reads with no shared state, so they may proceed in parallel.
// Statuses outside pending/paid fall into neither sum.
func (s *DashboardService) FetchCardData(ctx context.Context) (CardData, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("card_data"))
	defer timer.ObserveDuration()

	var (
		invoiceCount  int64
		customerCount int64
		sums          struct {
			Paid    int64
			Pending int64
		}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).Count(&invoiceCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Customer{}).Count(&customerCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Raw(`
			SELECT
				COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
				COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
			FROM invoices`).Scan(&sums).Error
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("failed to fetch card data")
		return CardData{}, ErrDataFetch
	}
	return CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    FormatCurrency(sums.Paid),
		TotalPendingInvoices: FormatCurrency(sums.Pending),
	}, nil
}

// FetchLatest returns the five most recent invoices with customer display
// fields and the amount pre-formatted as currency.
func (s *DashboardService) FetchLatest(ctx context.Context) ([]LatestInvoice, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("latest_invoices"))
	defer timer.ObserveDuration()

	var raw []struct {
		ID       string
		Name     string
		Email    string
		ImageURL string
		Amount   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Select("invoices.id, customers.name, customers.email, customers.image_url, invoices.amount").
		Order(listingOrder).
		Limit(latestInvoiceCount).
		Scan(&raw).Error
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch latest invoices")
		return nil, ErrDataFetch
	}
	latest := make([]LatestInvoice, 0, len(raw))
	for _, r := range raw {
		latest = append(latest, LatestInvoice{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Amount:   FormatCurrency(r.Amount),
		})
	}
	return latest, nil
}

// FetchByID looks up a single invoice for the edit form, converting the
// stored cents back to major units. Returns ErrNotFound when id is unknown.
func (s *DashboardService) FetchByID(ctx context.Context, id string) (*InvoiceForm, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("invoice_by_id"))
	defer timer.ObserveDuration()

	var inv models.Invoice
	err := s.db.WithContext(ctx).
		Select("id, customer_id, amount, status").
		Where("id = ?", id).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to fetch invoice")
		return nil, ErrDataFetch
	}
	return &InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     float64(inv.Amount) / 100,
		Status:     inv.Status,
	}, nil
}

// FetchRevenue returns all seeded monthly revenue entries.
func (s *DashboardService) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("revenue"))
	defer timer.ObserveDuration()

	var revenue []models.Revenue
	if err := s.db.WithContext(ctx).Find(&revenue).Error; err != nil {
		s.log.Error().Err(err).Msg("failed to fetch revenue")
		return nil, ErrDataFetch
	}
	return revenue, nil
}
