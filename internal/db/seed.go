package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-dashboard/internal/models"
)

// Fixture rows use stable ids so repeated seeding is a no-op.
var seedUsers = []struct {
	ID, Name, Email, Password string
}{
	{"410544b2-4001-4271-9855-fec4b6a6442a", "User", "user@nextmail.com", "123456"},
}

var seedCustomers = []models.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var seedInvoices = []models.Invoice{
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-111111111111", CustomerID: seedCustomers[0].ID, Amount: 15795, Status: models.InvoiceStatusPending, Date: "2022-12-06"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-222222222222", CustomerID: seedCustomers[1].ID, Amount: 20348, Status: models.InvoiceStatusPending, Date: "2022-11-14"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-333333333333", CustomerID: seedCustomers[4].ID, Amount: 3040, Status: models.InvoiceStatusPaid, Date: "2022-10-29"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-444444444444", CustomerID: seedCustomers[3].ID, Amount: 44800, Status: models.InvoiceStatusPaid, Date: "2023-09-10"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-555555555555", CustomerID: seedCustomers[5].ID, Amount: 34577, Status: models.InvoiceStatusPending, Date: "2023-08-05"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-666666666666", CustomerID: seedCustomers[2].ID, Amount: 54246, Status: models.InvoiceStatusPending, Date: "2023-07-16"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-777777777777", CustomerID: seedCustomers[0].ID, Amount: 666, Status: models.InvoiceStatusPending, Date: "2023-06-27"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-888888888888", CustomerID: seedCustomers[3].ID, Amount: 32545, Status: models.InvoiceStatusPaid, Date: "2023-06-09"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-999999999999", CustomerID: seedCustomers[4].ID, Amount: 1250, Status: models.InvoiceStatusPaid, Date: "2023-06-17"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-aaaaaaaaaaaa", CustomerID: seedCustomers[5].ID, Amount: 8546, Status: models.InvoiceStatusPaid, Date: "2023-06-07"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-bbbbbbbbbbbb", CustomerID: seedCustomers[1].ID, Amount: 500, Status: models.InvoiceStatusPaid, Date: "2023-08-19"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-cccccccccccc", CustomerID: seedCustomers[5].ID, Amount: 8945, Status: models.InvoiceStatusPaid, Date: "2023-06-03"},
	{ID: "b3f5e8a0-34c1-4f6e-9d6e-dddddddddddd", CustomerID: seedCustomers[2].ID, Amount: 1000, Status: models.InvoiceStatusPaid, Date: "2022-06-05"},
}

var seedRevenue = []models.Revenue{
	{Month: "Jan", Revenue: 2000}, {Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200}, {Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300}, {Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500}, {Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500}, {Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000}, {Month: "Dec", Revenue: 4800},
}

// Seed inserts fixture users, customers, invoices and revenue inside one
// transaction. Existing rows are left untouched, so Seed is idempotent and
// safe to run at every startup in development.
func Seed(conn *gorm.DB) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			user := models.User{ID: u.ID, Name: u.Name, Email: u.Email, Password: string(hash)}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		customers := make([]models.Customer, len(seedCustomers))
		copy(customers, seedCustomers)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&customers).Error; err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
		invoices := make([]models.Invoice, len(seedInvoices))
		copy(invoices, seedInvoices)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&invoices).Error; err != nil {
			return fmt.Errorf("seed invoices: %w", err)
		}
		revenue := make([]models.Revenue, len(seedRevenue))
		copy(revenue, seedRevenue)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&revenue).Error; err != nil {
			return fmt.Errorf("seed revenue: %w", err)
		}
		return nil
	})
}
