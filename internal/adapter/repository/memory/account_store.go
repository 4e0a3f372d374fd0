// Package memory provides the in-process store the wallet runs on by default.
// Records are copied on the way in and out so callers never share state with
// the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// AccountStore implements usecase.AccountStore.
type AccountStore struct {
	mu                  sync.RWMutex
	users               map[int64]*domain.User
	paymentMethods      map[int64]*domain.PaymentMethod
	nextUserID          int64
	nextPaymentMethodID int64
	now                 func() time.Time
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		users:               make(map[int64]*domain.User),
		paymentMethods:      make(map[int64]*domain.PaymentMethod),
		nextUserID:          1,
		nextPaymentMethodID: 1,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// GetUser retrieves a user by ID.
func (s *AccountStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return copyUser(user), nil
}

// GetUserByEmail scans users for a case-insensitive email match.
func (s *AccountStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = domain.NormalizeEmail(email)
	for _, user := range s.users {
		if domain.NormalizeEmail(user.Email) == email {
			return copyUser(user), nil
		}
	}

	return nil, domain.ErrUserNotFound
}

// CreateUser inserts a user with a fresh ID.
func (s *AccountStore) CreateUser(_ context.Context, input domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflicts(input.Username, input.Email) {
		return nil, domain.ErrUserAlreadyExists
	}

	balance := decimal.Zero
	if input.Balance != nil {
		balance = domain.RoundMoney(*input.Balance)
	}

	user := &domain.User{
		ID:        s.nextUserID,
		Username:  input.Username,
		Email:     input.Email,
		Name:      input.Name,
		Avatar:    input.Avatar,
		Balance:   balance,
		CreatedAt: s.now(),
	}
	s.nextUserID++
	s.users[user.ID] = user

	return copyUser(user), nil
}

// UpdateBalance replaces a user's balance.
func (s *AccountStore) UpdateBalance(_ context.Context, userID int64, balance decimal.Decimal) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	user.Balance = domain.RoundMoney(balance)

	return copyUser(user), nil
}

// ListActivePaymentMethods returns the user's active methods in ID order.
func (s *AccountStore) ListActivePaymentMethods(_ context.Context, userID int64) ([]*domain.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	methods := make([]*domain.PaymentMethod, 0)
	for _, pm := range s.paymentMethods {
		if pm.UserID == userID && pm.IsActive {
			methods = append(methods, copyPaymentMethod(pm))
		}
	}

	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })

	return methods, nil
}

// CreatePaymentMethod inserts a payment method with a fresh ID.
func (s *AccountStore) CreatePaymentMethod(_ context.Context, input domain.NewPaymentMethod) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pm := input.Build(s.nextPaymentMethodID)
	s.nextPaymentMethodID++
	s.paymentMethods[pm.ID] = pm

	return copyPaymentMethod(pm), nil
}

// DeactivatePaymentMethod clears the active flag of one of the user's methods.
func (s *AccountStore) DeactivatePaymentMethod(_ context.Context, userID, id int64) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pm, ok := s.paymentMethods[id]
	if !ok || pm.UserID != userID {
		return nil, domain.ErrPaymentMethodNotFound
	}

	pm.IsActive = false

	return copyPaymentMethod(pm), nil
}

// Seed loads the demo user and payment methods, keeping their IDs.
func (s *AccountStore) Seed(_ context.Context, data domain.DemoDataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.User != nil {
		s.users[data.User.ID] = copyUser(data.User)
		if data.User.ID >= s.nextUserID {
			s.nextUserID = data.User.ID + 1
		}
	}

	for _, pm := range data.PaymentMethods {
		s.paymentMethods[pm.ID] = copyPaymentMethod(pm)
		if pm.ID >= s.nextPaymentMethodID {
			s.nextPaymentMethodID = pm.ID + 1
		}
	}

	return nil
}

func (s *AccountStore) conflicts(username, email string) bool {
	email = domain.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Username == username || domain.NormalizeEmail(user.Email) == email {
			return true
		}
	}
	return false
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.Avatar != nil {
		avatar := *u.Avatar
		c.Avatar = &avatar
	}
	return &c
}

func copyPaymentMethod(pm *domain.PaymentMethod) *domain.PaymentMethod {
	c := *pm
	if pm.ExpiryDate != nil {
		expiry := *pm.ExpiryDate
		c.ExpiryDate = &expiry
	}
	if pm.BankName != nil {
		bank := *pm.BankName
		c.BankName = &bank
	}
	return &c
}
