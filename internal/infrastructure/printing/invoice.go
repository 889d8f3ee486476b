package printing

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/infrastructure/config"
)

// invoiceTemplate is the A4 tax invoice layout
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.InvoiceNo}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #222; }
  .header { text-align: center; border-bottom: 2px solid #222; padding-bottom: 8px; }
  .header h1 { margin: 0; font-size: 20px; }
  .header p { margin: 2px 0; }
  .meta { display: flex; justify-content: space-between; margin: 12px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.items th, table.items td { border: 1px solid #999; padding: 6px; text-align: left; }
  table.items th { background: #eee; }
  .num { text-align: right; }
  .totals { margin-top: 12px; width: 40%; margin-left: auto; }
  .totals td { padding: 4px; }
  .totals .grand { font-weight: bold; border-top: 1px solid #222; }
  .footer { margin-top: 24px; text-align: center; font-size: 11px; color: #666; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.ShopName}}</h1>
    {{if .ShopAddress}}<p>{{.ShopAddress}}</p>{{end}}
    {{if .ShopPhone}}<p>Phone: {{.ShopPhone}}</p>{{end}}
    {{if .ShopGSTIN}}<p>GSTIN: {{.ShopGSTIN}}</p>{{end}}
    <p><strong>TAX INVOICE</strong></p>
  </div>

  <div class="meta">
    <div>
      <p><strong>Billed To:</strong> {{.CustomerName}}</p>
      <p><strong>Mobile:</strong> {{.CustomerMobile}}</p>
      {{if .CustomerEmail}}<p><strong>Email:</strong> {{.CustomerEmail}}</p>{{end}}
      {{if .CustomerAddress}}<p><strong>Address:</strong> {{.CustomerAddress}}</p>{{end}}
    </div>
    <div>
      <p><strong>Invoice No:</strong> {{.InvoiceNo}}</p>
      <p><strong>Date:</strong> {{.BilledAt}}</p>
      <p><strong>Payment:</strong> {{.PaymentMode}}{{if .TransactionID}} ({{.TransactionID}}){{end}}</p>
    </div>
  </div>

  <table class="items">
    <tr>
      <th>#</th><th>Item</th><th>IMEI/Serial</th>
      <th class="num">Price</th><th class="num">Qty</th>
      <th class="num">GST %</th><th class="num">Amount</th>
    </tr>
    {{range .Items}}
    <tr>
      <td>{{.Index}}</td>
      <td>{{.Name}}</td>
      <td>{{.ImeiSerial}}</td>
      <td class="num">{{.Price}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{.GSTRate}}</td>
      <td class="num">{{.Amount}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td>GST</td><td class="num">{{.Tax}}</td></tr>
    {{if .HasDiscount}}<tr><td>Discount</td><td class="num">-{{.Discount}}</td></tr>{{end}}
    <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
  </table>

  <div class="footer">
    <p>Thank you for your business!</p>
  </div>
</body>
</html>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// invoiceLine is one rendered item row
type invoiceLine struct {
	Index      int
	Name       string
	ImeiSerial string
	Price      string
	Quantity   int
	GSTRate    string
	Amount     string
}

// invoiceData is the template context for an invoice
type invoiceData struct {
	ShopName        string
	ShopAddress     string
	ShopPhone       string
	ShopGSTIN       string
	InvoiceNo       string
	CustomerName    string
	CustomerMobile  string
	CustomerEmail   string
	CustomerAddress string
	BilledAt        string
	PaymentMode     string
	TransactionID   string
	Items           []invoiceLine
	Subtotal        string
	Tax             string
	Discount        string
	HasDiscount     bool
	Total           string
}

// InvoiceHTML renders the tax invoice for a bill as a standalone HTML document
func InvoiceHTML(bill *billing.Bill, shop config.ShopConfig) (string, error) {
	if bill == nil {
		return "", fmt.Errorf("bill is nil")
	}

	data := invoiceData{
		ShopName:        shop.Name,
		ShopAddress:     shop.Address,
		ShopPhone:       shop.Phone,
		ShopGSTIN:       shop.GSTIN,
		InvoiceNo:       bill.InvoiceNo,
		CustomerName:    bill.CustomerName,
		CustomerMobile:  bill.CustomerMobile,
		CustomerEmail:   bill.CustomerEmail,
		CustomerAddress: bill.CustomerAddress,
		BilledAt:        bill.BilledAt.Format("02 Jan 2006 15:04"),
		PaymentMode:     string(bill.PaymentMode),
		TransactionID:   bill.TransactionID,
		Subtotal:        bill.Subtotal.StringFixed(2),
		Tax:             bill.Tax.StringFixed(2),
		Discount:        bill.Discount.StringFixed(2),
		HasDiscount:     bill.Discount.GreaterThan(decimal.Zero),
		Total:           bill.Total.StringFixed(2),
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		data.Items = append(data.Items, invoiceLine{
			Index:      i + 1,
			Name:       item.Name,
			ImeiSerial: item.ImeiSerial,
			Price:      item.Price.StringFixed(2),
			Quantity:   item.Quantity,
			GSTRate:    item.GSTRate.StringFixed(2),
			Amount:     item.LineAmount().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering invoice template: %w", err)
	}
	return buf.String(), nil
}
