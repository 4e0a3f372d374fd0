package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gowallet/internal/domain"
)

const transactionColumns = `id, user_id, type, amount, description, recipient_name, recipient_email,
	merchant_name, order_id, payment_method_id, source_description, status, created_at`

// Ledger implements usecase.TransactionLedger on the transactions table.
type Ledger struct {
	db      DB
	retrier *Retrier
	now     func() time.Time
}

// NewLedger creates a new Ledger.
func NewLedger(db DB, retrier *Retrier) *Ledger {
	return &Ledger{
		db:      db,
		retrier: retrier,
		now:     dbNow,
	}
}

// Append validates the draft and inserts it. The database assigns the ID.
func (l *Ledger) Append(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	tx := draft.Materialize(0, l.now())
	flat := domain.Flatten(tx.Details)

	err := l.retrier.Retry(ctx, func() error {
		return l.db.QueryRow(ctx,
			`INSERT INTO transactions (user_id, type, amount, description, recipient_name, recipient_email,
				merchant_name, order_id, payment_method_id, source_description, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			tx.UserID,
			string(tx.Type()),
			decimalToNumeric(tx.Amount),
			tx.Description,
			ptrToText(flat.RecipientName),
			ptrToText(flat.RecipientEmail),
			ptrToText(flat.MerchantName),
			ptrToText(flat.OrderID),
			ptrToInt8(flat.PaymentMethodID),
			ptrToText(flat.Source),
			string(tx.Status),
			tx.CreatedAt,
		).Scan(&tx.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	return tx, nil
}

// ListByUser returns the user's transactions newest first, ties broken by ID.
func (l *Ledger) ListByUser(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	rows, err := l.db.Query(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 ORDER BY created_at DESC, id ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx             domain.Transaction
		txType         string
		amount         pgtype.Numeric
		recipientName  pgtype.Text
		recipientEmail pgtype.Text
		merchantName   pgtype.Text
		orderID        pgtype.Text
		paymentMethod  pgtype.Int8
		source         pgtype.Text
		status         string
	)

	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&txType,
		&amount,
		&tx.Description,
		&recipientName,
		&recipientEmail,
		&merchantName,
		&orderID,
		&paymentMethod,
		&source,
		&status,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	details, err := domain.Unflatten(domain.TransactionType(txType), domain.FlatDetails{
		RecipientName:   textToPtr(recipientName),
		RecipientEmail:  textToPtr(recipientEmail),
		MerchantName:    textToPtr(merchantName),
		OrderID:         textToPtr(orderID),
		PaymentMethodID: int8ToPtr(paymentMethod),
		Source:          textToPtr(source),
	})
	if err != nil {
		return nil, err
	}

	tx.Amount = domain.RoundMoney(numericToDecimal(amount))
	tx.Status = domain.TransactionStatus(status)
	tx.Details = details

	return &tx, nil
}
