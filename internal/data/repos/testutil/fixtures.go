package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
)

func SeedCustomer(tb testing.TB, ctx context.Context, tx *gorm.DB, companyName string) *types.Customer {
	tb.Helper()
	c := &types.Customer{
		ID:          uuid.New(),
		CompanyName: companyName,
		Industry:    "Software",
		Status:      "Active",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID *uuid.UUID, email string, isPrimary bool) *types.Contact {
	tb.Helper()
	c := &types.Contact{
		ID:         uuid.New(),
		FirstName:  "Jamie",
		LastName:   "Doe",
		Email:      email,
		IsPrimary:  isPrimary,
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

func SeedOpportunity(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID *uuid.UUID, status string, amount string, closingDate *time.Time) *types.Opportunity {
	tb.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		tb.Fatalf("seed opportunity amount: %v", err)
	}
	o := &types.Opportunity{
		ID:          uuid.New(),
		Name:        "Deal",
		Status:      status,
		Amount:      amt,
		ClosingDate: closingDate,
		CustomerID:  customerID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed opportunity: %v", err)
	}
	return o
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, status string, scheduledDate *time.Time) *types.Activity {
	tb.Helper()
	a := &types.Activity{
		ID:            uuid.New(),
		Type:          "Call",
		Status:        status,
		ScheduledDate: scheduledDate,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, code string, listPrice string) *types.Product {
	tb.Helper()
	price, err := decimal.NewFromString(listPrice)
	if err != nil {
		tb.Fatalf("seed product price: %v", err)
	}
	p := &types.Product{
		ID:        uuid.New(),
		Code:      code,
		Name:      "Widget",
		Category:  "Hardware",
		Status:    "Active",
		ListPrice: price,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}
