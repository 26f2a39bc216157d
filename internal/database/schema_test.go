package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_roles_table.sql",
		"00002_create_permissions_table.sql",
		"00003_create_users_table.sql",
		"00004_create_refresh_tokens_table.sql",
		"00005_create_catalog_tables.sql",
		"00006_create_clients_table.sql",
		"00007_create_products_table.sql",
		"00008_create_invoices_table.sql",
		"00009_create_invoice_items_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"roles":           "00001_create_roles_table.sql",
		"permissions":     "00002_create_permissions_table.sql",
		"users":           "00003_create_users_table.sql",
		"refresh_tokens":  "00004_create_refresh_tokens_table.sql",
		"suppliers":       "00005_create_catalog_tables.sql",
		"brands":          "00005_create_catalog_tables.sql",
		"categories":      "00005_create_catalog_tables.sql",
		"payment_methods": "00005_create_catalog_tables.sql",
		"clients":         "00006_create_clients_table.sql",
		"products":        "00007_create_products_table.sql",
		"invoices":        "00008_create_invoices_table.sql",
		"invoice_items":   "00009_create_invoice_items_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestUsersTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00003_create_users_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read users migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"username VARCHAR",
		"password_hash VARCHAR",
		"email VARCHAR",
		"role_id BIGINT",
		"is_staff BOOLEAN",
		"is_active BOOLEAN",
		"created_at TIMESTAMP",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Users table missing required column definition: %s", column)
		}
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00007_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"reference VARCHAR(50) PRIMARY KEY",
		"name VARCHAR",
		"cost_price DECIMAL",
		"sale_price DECIMAL",
		"stock INTEGER",
		"supplier_id BIGINT",
		"category_id BIGINT",
		"brand_id BIGINT",
		"image_url VARCHAR",
		"active BOOLEAN",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}

	// The database enforces that stock never goes negative
	if !strings.Contains(contentStr, "CHECK (stock >= 0)") {
		t.Error("Products table missing non-negative stock check")
	}

	if !strings.Contains(contentStr, "CREATE SEQUENCE IF NOT EXISTS product_reference_seq") {
		t.Error("Products migration missing product_reference_seq sequence")
	}
}

func TestInvoicesTableHasNumberSequence(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00008_create_invoices_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read invoices migration: %v", err)
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, "CREATE SEQUENCE IF NOT EXISTS invoice_number_seq") {
		t.Error("Invoices migration missing invoice_number_seq sequence")
	}
	if !strings.Contains(contentStr, "invoice_number VARCHAR(20) UNIQUE NOT NULL") {
		t.Error("Invoices table missing unique invoice_number column")
	}
	if !strings.Contains(contentStr, "status VARCHAR(50) NOT NULL DEFAULT 'Pending'") {
		t.Error("Invoices table missing Pending status default")
	}
}

func TestInvoiceItemsTableHasQuantityCheck(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00009_create_invoice_items_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read invoice_items migration: %v", err)
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, "CHECK (quantity > 0)") {
		t.Error("Invoice items table missing positive quantity check")
	}
	if !strings.Contains(contentStr, "ON DELETE CASCADE") {
		t.Error("Invoice items table should cascade when the invoice is removed")
	}
}
