package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
)

var (
	ErrClientHasNoEmail = errors.New("client has no email address")
	ErrRenderFailed     = errors.New("failed to render invoice pdf")
	ErrSendFailed       = errors.New("failed to send invoice email")
)

// InvoiceRenderer renders an invoice to a PDF file at path
type InvoiceRenderer interface {
	Render(detail *domain.InvoiceDetail, path string) error
}

// MessageSender delivers an email with an attached file
type MessageSender interface {
	Send(to, subject, body, attachmentPath string) error
}

// InvoiceMailer renders an invoice to PDF and sends it to the client's
// email address as an attachment.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, invoiceID int64) (recipient string, err error)
}

type invoiceMailer struct {
	invoiceRepo repository.InvoiceRepository
	renderer    InvoiceRenderer
	sender      MessageSender
	companyName string
}

// NewInvoiceMailer creates a new instance of InvoiceMailer
func NewInvoiceMailer(
	invoiceRepo repository.InvoiceRepository,
	renderer InvoiceRenderer,
	sender MessageSender,
	companyName string,
) InvoiceMailer {
	return &invoiceMailer{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		sender:      sender,
		companyName: companyName,
	}
}

// SendInvoice looks up the invoice, renders it to a temporary PDF file and
// emails it. The temporary file is removed whether or not the send succeeds.
func (s *invoiceMailer) SendInvoice(ctx context.Context, invoiceID int64) (string, error) {
	detail, err := s.invoiceRepo.FindDetail(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	if detail.ClientEmail == "" {
		return "", ErrClientHasNoEmail
	}

	dir, err := os.MkdirTemp("", "invoice-pdf-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, fmt.Sprintf("factura_%s.pdf", detail.InvoiceNumber))
	if err := s.renderer.Render(detail, path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	subject := fmt.Sprintf("Tu factura %s de %s", detail.InvoiceNumber, s.companyName)
	// plain text: the mailer sends text/plain bodies
	body := fmt.Sprintf(
		"Hola %s,\n\nAdjuntamos tu factura %s.\nGracias por tu compra.\n\n%s",
		detail.ClientName, detail.InvoiceNumber, s.companyName,
	)

	if err := s.sender.Send(detail.ClientEmail, subject, body, path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return detail.ClientEmail, nil
}
