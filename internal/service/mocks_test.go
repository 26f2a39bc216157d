package service

import (
	"context"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
)

// Mock repositories for testing

type mockUserRepository struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	existing, ok := m.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if user.PasswordHash == "" {
		user.PasswordHash = existing.PasswordHash
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockProductRepository struct {
	products map[string]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[string]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.Reference] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.Reference]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.Reference] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, reference string) error {
	if _, ok := m.products[reference]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, reference)
	return nil
}

func (m *mockProductRepository) FindByReference(ctx context.Context, reference string) (*domain.Product, error) {
	product, ok := m.products[reference]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockProductRepository) ListForSale(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.products {
		if p.Active && p.Stock > 0 {
			products = append(products, p)
		}
	}
	return products, nil
}

// mockInvoiceRepository records the arguments CreateWithItems received and
// serves canned invoices for the mailer tests.
type mockInvoiceRepository struct {
	repository.InvoiceRepository

	invoices     map[int64]*domain.Invoice
	details      map[int64]*domain.InvoiceDetail
	created      *domain.Invoice
	createdItems []*domain.InvoiceItem
	createErr    error
}

func newMockInvoiceRepository() *mockInvoiceRepository {
	return &mockInvoiceRepository{
		invoices: make(map[int64]*domain.Invoice),
		details:  make(map[int64]*domain.InvoiceDetail),
	}
}

func (m *mockInvoiceRepository) FindByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, repository.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (m *mockInvoiceRepository) CreateWithItems(ctx context.Context, invoice *domain.Invoice, items []*domain.InvoiceItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	invoice.ID = 1
	invoice.InvoiceNumber = "00000000001"
	m.created = invoice
	m.createdItems = items
	return nil
}

func (m *mockInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	if _, ok := m.invoices[invoice.ID]; !ok {
		return repository.ErrInvoiceNotFound
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceRepository) FindDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	detail, ok := m.details[id]
	if !ok {
		return nil, repository.ErrInvoiceNotFound
	}
	return detail, nil
}
