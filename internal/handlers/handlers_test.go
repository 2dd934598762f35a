package handlers

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
	"github.com/diewo77/go-dashboard/internal/services"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

func newTestInvoiceHandler(t *testing.T, conn *gorm.DB) (*InvoiceHandler, *cache.Memory) {
	t.Helper()
	m := metrics.NewWith(prometheus.NewRegistry())
	viewCache := cache.NewMemory(time.Minute)
	invoiceSvc := services.NewInvoiceService(conn, viewCache, m, zerolog.Nop())
	dashboardSvc := services.NewDashboardService(conn, m, zerolog.Nop())
	return NewInvoiceHandler(invoiceSvc, dashboardSvc, viewCache, m, zerolog.Nop()), viewCache
}

func seedTestCustomer(t *testing.T, conn *gorm.DB, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, Email: name + "@test", ImageURL: "/customers/" + name + ".png"}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}
