package domain

// Supplier represents a product supplier
type Supplier struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Contact string `json:"contact" db:"contact"`
}

// Brand represents a product brand
type Brand struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	ImageURL string `json:"image_url" db:"image_url"`
}

// Category represents a product category
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PaymentMethod represents an accepted form of payment
type PaymentMethod struct {
	ID     int64  `json:"id" db:"id"`
	Method string `json:"method" db:"method"`
}

// Client represents a customer invoices are issued to
type Client struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Phone string `json:"phone" db:"phone"`
	Email string `json:"email" db:"email"`
}
