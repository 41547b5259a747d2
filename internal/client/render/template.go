// Package render produces printable invoice documents, as HTML and as PDF
// via headless Chrome.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/client/models"
)

// Document is the renderable view of an invoice. Provisional records carry a
// draft marking instead of an invoice number: only numbers assigned by the
// server may appear on an issued document.
type Document struct {
	Identity models.Identity
	Customer string
	Date     string
	Items    []models.LineItem
	Total    float64
}

// DocumentFromQueued builds a Document from a locally stored record.
func DocumentFromQueued(q *models.QueuedInvoice) *Document {
	return &Document{
		Identity: q.Identity(),
		Customer: q.Customer,
		Date:     q.Date,
		Items:    q.Items,
		Total:    q.Total,
	}
}

// DocumentFromServer builds a Document from a server-confirmed invoice.
func DocumentFromServer(inv *api.ServerInvoice) *Document {
	return &Document{
		Identity: models.Identity{Confirmed: true, Number: inv.InvoiceNumber},
		Customer: inv.Customer,
		Date:     inv.Date,
		Items:    inv.Items,
		Total:    inv.Total,
	}
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #202124; margin: 40px; }
  .head { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .title { font-size: 26px; font-weight: 600; }
  .draft { color: #b00020; border: 2px dashed #b00020; padding: 4px 12px; font-size: 14px; }
  .meta { font-size: 13px; color: #5f6368; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th { text-align: left; border-bottom: 2px solid #202124; padding: 8px 4px; }
  td { border-bottom: 1px solid #e0e0e0; padding: 8px 4px; }
  td.num, th.num { text-align: right; }
  .total { margin-top: 16px; text-align: right; font-size: 16px; font-weight: 600; }
</style>
</head>
<body>
  <div class="head">
    <div>
      {{if .Identity.Confirmed -}}
      <div class="title">Invoice #{{.Identity.Number}}</div>
      {{- else -}}
      <div class="title">Invoice</div>
      <div class="draft">DRAFT &mdash; awaiting number assignment</div>
      {{- end}}
    </div>
    <div class="meta">
      <div>Customer: {{.Customer}}</div>
      <div>Date: {{.Date}}</div>
    </div>
  </div>
  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr>
    {{range .Items -}}
    <tr>
      <td>{{.Name}}</td>
      <td class="num">{{.Qty}}</td>
      <td class="num">{{money .Price}}</td>
      <td class="num">{{money .Subtotal}}</td>
    </tr>
    {{end -}}
  </table>
  <div class="total">Total: {{money .Total}}</div>
</body>
</html>
`))

// HTML renders the document to a standalone HTML page.
func HTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering invoice template: %w", err)
	}
	return buf.String(), nil
}
