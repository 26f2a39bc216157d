package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JSebastianB25/Web-Project/internal/domain"
)

var (
	ErrPermissionNotFound = errors.New("permission not found")
)

// PermissionRepository defines the interface for permission data access
type PermissionRepository interface {
	Create(ctx context.Context, permission *domain.Permission) error
	Update(ctx context.Context, permission *domain.Permission) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Permission, error)
	List(ctx context.Context) ([]*domain.Permission, error)
}

type permissionRepository struct {
	db *sql.DB
}

// NewPermissionRepository creates a new instance of PermissionRepository
func NewPermissionRepository(db *sql.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

// Create inserts a new permission and fills in the generated id
func (r *permissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	query := `
		INSERT INTO permissions (name, description, role_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, permission.Name, permission.Description, permission.RoleID).Scan(&permission.ID)
	if err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	return nil
}

// Update updates an existing permission
func (r *permissionRepository) Update(ctx context.Context, permission *domain.Permission) error {
	query := `
		UPDATE permissions
		SET name = $2, description = $3, role_id = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, permission.ID, permission.Name, permission.Description, permission.RoleID)
	if err != nil {
		return fmt.Errorf("failed to update permission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPermissionNotFound
	}

	return nil
}

// Delete removes a permission
func (r *permissionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM permissions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPermissionNotFound
	}

	return nil
}

// FindByID retrieves a permission by ID
func (r *permissionRepository) FindByID(ctx context.Context, id int64) (*domain.Permission, error) {
	query := `
		SELECT id, name, description, role_id
		FROM permissions
		WHERE id = $1
	`

	permission := &domain.Permission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&permission.ID, &permission.Name, &permission.Description, &permission.RoleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to find permission by ID: %w", err)
	}

	return permission, nil
}

// List retrieves all permissions ordered by name
func (r *permissionRepository) List(ctx context.Context) ([]*domain.Permission, error) {
	query := `
		SELECT id, name, description, role_id
		FROM permissions
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	permissions := []*domain.Permission{}
	for rows.Next() {
		permission := &domain.Permission{}
		if err := rows.Scan(&permission.ID, &permission.Name, &permission.Description, &permission.RoleID); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, permission)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permissions: %w", err)
	}

	return permissions, nil
}
