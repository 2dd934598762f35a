package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/models"
)

// CustomerService answers the customer-side read queries. Customers are
// read-only from the dashboard's perspective.
type CustomerService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewCustomerService(db *gorm.DB, m *metrics.Metrics, log zerolog.Logger) *CustomerService {
	return &CustomerService{db: db, metrics: m, log: log}
}

// CustomerField is the minimal projection used to populate select inputs.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerRow is one row of the customers table with per-customer invoice
// aggregates, totals pre-formatted as currency.
type CustomerRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// FetchAll returns every customer, ordered by name, for form selects.
func (s *CustomerService) FetchAll(ctx context.Context) ([]CustomerField, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("customers_all"))
	defer timer.ObserveDuration()

	var fields []CustomerField
	err := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select("id, name").
		Order("name ASC").
		Scan(&fields).Error
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch customers")
		return nil, ErrDataFetch
	}
	return fields, nil
}

// FetchFiltered returns the customers table filtered by a case-insensitive
// substring match on name or email, with invoice counts and pending/paid
// totals aggregated per customer.
func (s *CustomerService) FetchFiltered(ctx context.Context, query string) ([]CustomerRow, error) {
	timer := prometheus.NewTimer(s.metrics.QueryDuration.WithLabelValues("customers_filtered"))
	defer timer.ObserveDuration()

	like := "%" + query + "%"
	var raw []struct {
		ID            string
		Name          string
		Email         string
		ImageURL      string
		TotalInvoices int64
		TotalPending  int64
		TotalPaid     int64
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE lower(customers.name) LIKE lower(?) OR lower(customers.email) LIKE lower(?)
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`, like, like).
		Scan(&raw).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to fetch customer table")
		return nil, ErrDataFetch
	}
	rows := make([]CustomerRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, CustomerRow{
			ID:            r.ID,
			Name:          r.Name,
			Email:         r.Email,
			ImageURL:      r.ImageURL,
			TotalInvoices: r.TotalInvoices,
			TotalPending:  FormatCurrency(r.TotalPending),
			TotalPaid:     FormatCurrency(r.TotalPaid),
		})
	}
	return rows, nil
}
