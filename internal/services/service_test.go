package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Customer{}, &models.Invoice{}, &models.Revenue{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWith(prometheus.NewRegistry())
}

func newTestInvoiceService(conn *gorm.DB, viewCache cache.ViewCache) *InvoiceService {
	return NewInvoiceService(conn, viewCache, newTestMetrics(), zerolog.Nop())
}

func newTestDashboardService(conn *gorm.DB) *DashboardService {
	return NewDashboardService(conn, newTestMetrics(), zerolog.Nop())
}

func seedCustomer(t *testing.T, conn *gorm.DB, name, email string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, Email: email, ImageURL: "/customers/" + name + ".png"}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedInvoice(t *testing.T, conn *gorm.DB, customerID string, amount int64, status models.InvoiceStatus, date string) models.Invoice {
	t.Helper()
	inv := models.Invoice{CustomerID: customerID, Amount: amount, Status: status, Date: date}
	if err := conn.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func fixedClock(date string) func() time.Time {
	ts, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return ts }
}
