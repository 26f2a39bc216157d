package pdf

import (
	"fmt"

	"github.com/JSebastianB25/Web-Project/internal/config"
	"github.com/JSebastianB25/Web-Project/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

// Renderer produces invoice PDF documents with the company letterhead.
type Renderer struct {
	company config.CompanyConfig
}

// NewRenderer creates a Renderer for the given company letterhead
func NewRenderer(company config.CompanyConfig) *Renderer {
	return &Renderer{company: company}
}

// Render writes the invoice document to path. The layout is a company
// header, invoice/client metadata, the line-item table, the total and the
// warranty policy text.
func (r *Renderer) Render(detail *domain.InvoiceDetail, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Company header
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 180, 92)
	pdf.CellFormat(0, 10, r.company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 5, r.company.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s | %s | %s", r.company.Phone, r.company.Email, r.company.Website), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 180, 92)
	pdf.CellFormat(0, 12, "FACTURA DE VENTA", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	// Invoice and client metadata, two columns
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 6, fmt.Sprintf("No. Factura: %s", detail.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Cliente: %s", detail.ClientName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("Fecha: %s", detail.IssuedAt.Format("02/01/2006 15:04:05")), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Telefono: %s", detail.ClientPhone), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Estado: %s", detail.Status), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Email: %s", detail.ClientEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Forma de Pago: %s", detail.PaymentMethodName), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Atendido por: %s", detail.Username), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line-item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(0, 180, 92)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(40, 8, "Referencia", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 8, "Producto", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "Cantidad", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Precio Unitario", "1", 0, "C", true, 0, "")
	pdf.CellFormat(33, 8, "Subtotal", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range detail.DetailItems {
		pdf.CellFormat(40, 8, item.ProductReference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, fmt.Sprintf("$%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(33, 8, fmt.Sprintf("$%.2f", item.Subtotal), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 180, 92)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Factura: $%.2f", detail.Total), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	if r.company.Policy != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "POLITICAS DE GARANTIA Y DEVOLUCION:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, r.company.Policy, "", "J", false)
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Gracias por tu compra!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s | %s | %s", r.company.Name, r.company.Phone, r.company.Email), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Este es un documento generado automaticamente y es valido sin firma.", "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
