package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemoUserID is the single account every wallet route acts on.
const DemoUserID int64 = 1

// DemoDataset is the fixture a fresh store is seeded with.
type DemoDataset struct {
	User           *User
	PaymentMethods []*PaymentMethod
	Transactions   []*Transaction
}

// Demo returns the demo fixture with timestamps relative to now.
func Demo(now time.Time) DemoDataset {
	avatar := "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=100"
	visaExpiry := "12/25"
	mastercardExpiry := "08/26"
	bankName := "Bank of America"

	return DemoDataset{
		User: &User{
			ID:        DemoUserID,
			Username:  "johnsmith",
			Email:     "john.smith@email.com",
			Name:      "John Smith",
			Avatar:    &avatar,
			Balance:   decimal.RequireFromString("1284.50"),
			CreatedAt: now,
		},
		PaymentMethods: []*PaymentMethod{
			{ID: 1, UserID: DemoUserID, Kind: PaymentMethodCard, Provider: "visa", LastFour: "4242", ExpiryDate: &visaExpiry, IsPrimary: true, IsActive: true},
			{ID: 2, UserID: DemoUserID, Kind: PaymentMethodCard, Provider: "mastercard", LastFour: "8888", ExpiryDate: &mastercardExpiry, IsActive: true},
			{ID: 3, UserID: DemoUserID, Kind: PaymentMethodBank, Provider: "bank", LastFour: "1234", BankName: &bankName, IsActive: true},
		},
		Transactions: []*Transaction{
			{
				ID:          1,
				UserID:      DemoUserID,
				Amount:      decimal.RequireFromString("125.00"),
				Description: "Payment Received",
				Status:      StatusCompleted,
				Details:     ReceiveDetails{SenderName: "Sarah Johnson"},
				CreatedAt:   now.Add(-30 * time.Minute),
			},
			{
				ID:          2,
				UserID:      DemoUserID,
				Amount:      decimal.RequireFromString("42.50"),
				Description: "Dinner split",
				Status:      StatusCompleted,
				Details:     SendDetails{RecipientName: "Mike Wilson"},
				CreatedAt:   now.Add(-24 * time.Hour),
			},
			{
				ID:          3,
				UserID:      DemoUserID,
				Amount:      decimal.RequireFromString("89.99"),
				Description: "Amazon Purchase",
				Status:      StatusCompleted,
				Details:     PurchaseDetails{MerchantName: "Amazon", OrderID: "AMZ-789456"},
				CreatedAt:   now.Add(-48 * time.Hour),
			},
			{
				ID:          4,
				UserID:      DemoUserID,
				Amount:      decimal.RequireFromString("500.00"),
				Description: "Added Money",
				Status:      StatusCompleted,
				Details:     AddMoneyDetails{},
				CreatedAt:   now.Add(-72 * time.Hour),
			},
		},
	}
}
