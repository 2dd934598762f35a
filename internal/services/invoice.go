package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/models"
	"github.com/diewo77/go-dashboard/internal/validation"
)

// InvoiceListingPath is the view-cache prefix for the invoice listing;
// every mutation invalidates it so the next read recomputes from source.
const InvoiceListingPath = "/dashboard/invoices"

// InvoiceService performs invoice mutations against an injected database
// handle. Amounts arrive in major units from validation and are stored in
// cents; ids and dates are assigned server-side at creation.
type InvoiceService struct {
	db      *gorm.DB
	cache   cache.ViewCache
	metrics *metrics.Metrics
	log     zerolog.Logger
	// now is swappable in tests to pin the creation date.
	now func() time.Time
}

func NewInvoiceService(db *gorm.DB, viewCache cache.ViewCache, m *metrics.Metrics, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{db: db, cache: viewCache, metrics: m, log: log, now: time.Now}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Create inserts a new invoice with a server-assigned id and today's date.
// On success the invoice listing cache is invalidated; the caller is
// expected to navigate to the listing view.
func (s *InvoiceService) Create(ctx context.Context, in validation.InvoiceInput) (*models.Invoice, error) {
	inv := &models.Invoice{
		CustomerID: in.CustomerID,
		Amount:     toCents(in.Amount),
		Status:     in.Status,
		Date:       s.now().UTC().Format("2006-01-02"),
	}
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		s.log.Error().Err(err).Str("customer_id", in.CustomerID).Msg("failed to create invoice")
		s.metrics.MutationFailure("create")
		return nil, ErrPersistence
	}
	s.metrics.MutationSuccess("create")
	s.cache.Invalidate(ctx, InvoiceListingPath)
	return inv, nil
}

// Update rewrites the customer reference, amount and status of the invoice
// matching id. Id and date are immutable; re-applying an identical payload
// leaves the row unchanged.
func (s *InvoiceService) Update(ctx context.Context, id string, in validation.InvoiceInput) error {
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"customer_id": in.CustomerID,
			"amount":      toCents(in.Amount),
			"status":      in.Status,
		}).Error
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		s.metrics.MutationFailure("update")
		return ErrPersistence
	}
	s.metrics.MutationSuccess("update")
	s.cache.Invalidate(ctx, InvoiceListingPath)
	return nil
}

// Delete removes the invoice matching id. Deletion is idempotent: a missing
// id affects zero rows and still reports success.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")
		s.metrics.MutationFailure("delete")
		return ErrPersistence
	}
	s.metrics.MutationSuccess("delete")
	s.cache.Invalidate(ctx, InvoiceListingPath)
	return nil
}
