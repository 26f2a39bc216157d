package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JSebastianB25/Web-Project/internal/domain"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// PaymentMethodRepository defines the interface for payment method data access
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) error
	Update(ctx context.Context, method *domain.PaymentMethod) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.PaymentMethod, error)
	List(ctx context.Context) ([]*domain.PaymentMethod, error)
}

type paymentMethodRepository struct {
	db *sql.DB
}

// NewPaymentMethodRepository creates a new instance of PaymentMethodRepository
func NewPaymentMethodRepository(db *sql.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

// Create inserts a new payment method and fills in the generated id
func (r *paymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (method)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, method.Method).Scan(&method.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return nil
}

// Update updates an existing payment method
func (r *paymentMethodRepository) Update(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET method = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, method.ID, method.Method)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}

	return nil
}

// Delete removes a payment method
func (r *paymentMethodRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM payment_methods WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}

	return nil
}

// FindByID retrieves a payment method by ID
func (r *paymentMethodRepository) FindByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, method
		FROM payment_methods
		WHERE id = $1
	`

	method := &domain.PaymentMethod{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&method.ID, &method.Method)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to find payment method by ID: %w", err)
	}

	return method, nil
}

// List retrieves all payment methods ordered by name
func (r *paymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	query := `
		SELECT id, method
		FROM payment_methods
		ORDER BY method ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := []*domain.PaymentMethod{}
	for rows.Next() {
		method := &domain.PaymentMethod{}
		if err := rows.Scan(&method.ID, &method.Method); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, method)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}
