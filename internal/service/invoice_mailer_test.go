package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	err   error
	path  string
	calls int
}

func (r *stubRenderer) Render(detail *domain.InvoiceDetail, path string) error {
	r.calls++
	r.path = path
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(path, []byte("%PDF-1.4"), 0o644)
}

type stubSender struct {
	err            error
	to             string
	subject        string
	body           string
	attachmentPath string
	calls          int
}

func (s *stubSender) Send(to, subject, body, attachmentPath string) error {
	s.calls++
	s.to = to
	s.subject = subject
	s.body = body
	s.attachmentPath = attachmentPath
	if s.err != nil {
		return s.err
	}
	// the attachment must exist at send time
	if _, err := os.Stat(attachmentPath); err != nil {
		return err
	}
	return nil
}

func mailerFixture(email string) *mockInvoiceRepository {
	repo := newMockInvoiceRepository()
	repo.details[1] = &domain.InvoiceDetail{
		Invoice: domain.Invoice{
			ID:            1,
			InvoiceNumber: "00000000042",
			Total:         50.00,
			Status:        domain.InvoiceStatusCompleted,
		},
		ClientName:  "Cliente Prueba",
		ClientEmail: email,
	}
	return repo
}

func TestSendInvoice_RendersAndSends(t *testing.T) {
	renderer := &stubRenderer{}
	sender := &stubSender{}
	mailer := NewInvoiceMailer(mailerFixture("cliente@example.com"), renderer, sender, "Keeplic")

	recipient, err := mailer.SendInvoice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "cliente@example.com", recipient)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "cliente@example.com", sender.to)
	assert.Contains(t, sender.subject, "00000000042")
	assert.Equal(t, renderer.path, sender.attachmentPath)

	// the body goes out as text/plain, so it must carry no markup
	assert.Contains(t, sender.body, "Cliente Prueba")
	assert.Contains(t, sender.body, "00000000042")
	assert.NotContains(t, sender.body, "<")

	// the transient file is gone after sending
	_, statErr := os.Stat(sender.attachmentPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSendInvoice_InvoiceNotFound(t *testing.T) {
	mailer := NewInvoiceMailer(newMockInvoiceRepository(), &stubRenderer{}, &stubSender{}, "Keeplic")

	_, err := mailer.SendInvoice(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrInvoiceNotFound)
}

func TestSendInvoice_ClientWithoutEmail(t *testing.T) {
	renderer := &stubRenderer{}
	mailer := NewInvoiceMailer(mailerFixture(""), renderer, &stubSender{}, "Keeplic")

	_, err := mailer.SendInvoice(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClientHasNoEmail)
	assert.Zero(t, renderer.calls, "nothing is rendered without a recipient")
}

func TestSendInvoice_RenderFailure(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("bad layout")}
	sender := &stubSender{}
	mailer := NewInvoiceMailer(mailerFixture("cliente@example.com"), renderer, sender, "Keeplic")

	_, err := mailer.SendInvoice(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Zero(t, sender.calls, "nothing is sent when rendering fails")
}

func TestSendInvoice_SendFailureStillCleansUp(t *testing.T) {
	renderer := &stubRenderer{}
	sender := &stubSender{err: errors.New("smtp down")}
	mailer := NewInvoiceMailer(mailerFixture("cliente@example.com"), renderer, sender, "Keeplic")

	_, err := mailer.SendInvoice(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSendFailed)

	_, statErr := os.Stat(renderer.path)
	assert.True(t, os.IsNotExist(statErr), "the transient file is removed even when sending fails")
}
