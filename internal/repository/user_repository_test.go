package repository

import (
	"context"
	"testing"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedRoleWithPermission(t *testing.T, roleName, permissionName string) *domain.Role {
	t.Helper()
	ctx := context.Background()

	role := &domain.Role{Name: roleName}
	require.NoError(t, NewRoleRepository(testDB).Create(ctx, role))

	permission := &domain.Permission{
		Name:        permissionName,
		Description: "test permission",
		RoleID:      role.ID,
	}
	require.NoError(t, NewPermissionRepository(testDB).Create(ctx, permission))

	return role
}

func TestUserCreateAndFind_AttachesRoleAndPermissions(t *testing.T) {
	resetTables(t)
	role := seedRoleWithPermission(t, "Administrador", "manage_users")

	repo := NewUserRepository(testDB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2pass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Email:        "admin@example.com",
		RoleID:       &role.ID,
		IsStaff:      true,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, found.Role)
	assert.Equal(t, "Administrador", found.Role.Name)
	require.Len(t, found.Role.Permissions, 1)
	assert.Equal(t, "manage_users", found.Role.Permissions[0].Name)

	// stored hash verifies against the original password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte("hunter2pass")))
}

func TestUserCreate_DuplicateUsernameRejected(t *testing.T) {
	resetTables(t)

	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := &domain.User{
		Username:     "repetido",
		PasswordHash: "hash",
		Email:        "uno@example.com",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, user))

	dup := &domain.User{
		Username:     "repetido",
		PasswordHash: "hash",
		Email:        "dos@example.com",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrUserAlreadyExists)
}

func TestUserUpdate_EmptyHashKeepsPassword(t *testing.T) {
	resetTables(t)

	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := &domain.User{
		Username:     "cajero",
		PasswordHash: "original-hash",
		Email:        "cajero@example.com",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, user))

	user.Email = "cajero2@example.com"
	user.PasswordHash = ""
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cajero2@example.com", found.Email)
	assert.Equal(t, "original-hash", found.PasswordHash)

	// a non-empty hash replaces the stored one
	user.PasswordHash = "new-hash"
	require.NoError(t, repo.Update(ctx, user))

	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
}

func TestUserDelete(t *testing.T) {
	resetTables(t)

	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := &domain.User{
		Username:     "temporal",
		PasswordHash: "hash",
		Email:        "temporal@example.com",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
}
