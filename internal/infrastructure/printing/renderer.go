package printing

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/storesync/backend/internal/application/printing"
)

const qrImageSize = 160

// HTMLInvoiceRenderer renders invoices as self-contained HTML documents. The
// QR code image is embedded as a PNG data URI so the document prints without
// fetching anything.
type HTMLInvoiceRenderer struct {
	tmpl *template.Template
}

// NewHTMLInvoiceRenderer creates a new HTMLInvoiceRenderer
func NewHTMLInvoiceRenderer() (*HTMLInvoiceRenderer, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
	}).Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &HTMLInvoiceRenderer{tmpl: tmpl}, nil
}

// RenderInvoice renders the invoice document.
func (r *HTMLInvoiceRenderer) RenderInvoice(_ context.Context, data printing.InvoiceData) (string, error) {
	qrDataURI, err := encodeQRDataURI(data.StatusURL)
	if err != nil {
		return "", fmt.Errorf("encode status QR: %w", err)
	}

	var buf bytes.Buffer
	err = r.tmpl.Execute(&buf, struct {
		printing.InvoiceData
		QRDataURI template.URL
	}{InvoiceData: data, QRDataURI: template.URL(qrDataURI)})
	if err != nil {
		return "", fmt.Errorf("execute invoice template: %w", err)
	}
	return buf.String(), nil
}

// encodeQRDataURI encodes the given content as a PNG data URI.
func encodeQRDataURI(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Ensure HTMLInvoiceRenderer implements printing.Renderer
var _ printing.Renderer = (*HTMLInvoiceRenderer)(nil)
