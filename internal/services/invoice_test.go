package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/models"
	"github.com/diewo77/go-dashboard/internal/validation"
)

func TestCreateStoresCentsAndStampsDate(t *testing.T) {
	conn := setupTestDB(t)
	customer := seedCustomer(t, conn, "Acme", "billing@acme.test")
	viewCache := cache.NewMemory(time.Minute)
	svc := newTestInvoiceService(conn, viewCache)
	svc.now = fixedClock("2024-03-15")

	// Cached listing pages must go stale after the mutation.
	listingKey := InvoiceListingPath + "?q=&page=1"
	viewCache.Set(context.Background(), listingKey, []byte(`{"cached":true}`))

	inv, err := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: customer.ID,
		Amount:     250,
		Status:     models.InvoiceStatusPending,
	})
	require.NoError(t, err)
	require.NotEmpty(t, inv.ID)

	var stored models.Invoice
	require.NoError(t, conn.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, int64(25000), stored.Amount)
	assert.Equal(t, models.InvoiceStatusPending, stored.Status)
	assert.Equal(t, "2024-03-15", stored.Date)
	assert.Equal(t, customer.ID, stored.CustomerID)

	_, ok := viewCache.Get(context.Background(), listingKey)
	assert.False(t, ok, "listing cache should be invalidated after create")
}

func TestCreateThenFetchRoundTripsAmount(t *testing.T) {
	conn := setupTestDB(t)
	customer := seedCustomer(t, conn, "Acme", "billing@acme.test")
	svc := newTestInvoiceService(conn, cache.NewMemory(time.Minute))
	dash := newTestDashboardService(conn)

	inv, err := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: customer.ID,
		Amount:     50.00,
		Status:     models.InvoiceStatusPaid,
	})
	require.NoError(t, err)

	form, err := dash.FetchByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.00, form.Amount)
	assert.Equal(t, models.InvoiceStatusPaid, form.Status)
	assert.Equal(t, customer.ID, form.CustomerID)
}

func TestUpdateIsIdempotentAndPreservesIDAndDate(t *testing.T) {
	conn := setupTestDB(t)
	customer := seedCustomer(t, conn, "Acme", "billing@acme.test")
	other := seedCustomer(t, conn, "Globex", "ap@globex.test")
	inv := seedInvoice(t, conn, customer.ID, 1000, models.InvoiceStatusPending, "2024-01-01")
	svc := newTestInvoiceService(conn, cache.NewMemory(time.Minute))

	in := validation.InvoiceInput{CustomerID: other.ID, Amount: 99.99, Status: models.InvoiceStatusPaid}
	require.NoError(t, svc.Update(context.Background(), inv.ID, in))
	require.NoError(t, svc.Update(context.Background(), inv.ID, in))

	var stored models.Invoice
	require.NoError(t, conn.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, other.ID, stored.CustomerID)
	assert.Equal(t, int64(9999), stored.Amount)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
	assert.Equal(t, "2024-01-01", stored.Date, "date is immutable after creation")

	var count int64
	conn.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteIsIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	customer := seedCustomer(t, conn, "Acme", "billing@acme.test")
	inv := seedInvoice(t, conn, customer.ID, 1000, models.InvoiceStatusPending, "2024-01-01")
	svc := newTestInvoiceService(conn, cache.NewMemory(time.Minute))

	require.NoError(t, svc.Delete(context.Background(), inv.ID))

	// Deleting rows that no longer exist still reports success, twice over.
	require.NoError(t, svc.Delete(context.Background(), inv.ID))
	require.NoError(t, svc.Delete(context.Background(), "no-such-id"))

	var count int64
	conn.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteInvalidatesListingCacheOnly(t *testing.T) {
	conn := setupTestDB(t)
	customer := seedCustomer(t, conn, "Acme", "billing@acme.test")
	inv := seedInvoice(t, conn, customer.ID, 1000, models.InvoiceStatusPending, "2024-01-01")
	viewCache := cache.NewMemory(time.Minute)
	svc := newTestInvoiceService(conn, viewCache)

	ctx := context.Background()
	viewCache.Set(ctx, InvoiceListingPath+"?q=acme&page=2", []byte("listing"))
	viewCache.Set(ctx, "/dashboard/customers?q=", []byte("customers"))

	require.NoError(t, svc.Delete(ctx, inv.ID))

	_, ok := viewCache.Get(ctx, InvoiceListingPath+"?q=acme&page=2")
	assert.False(t, ok)
	_, ok = viewCache.Get(ctx, "/dashboard/customers?q=")
	assert.True(t, ok, "unrelated views stay cached")
}
