package printing

// invoiceTemplate is the built-in printable invoice layout.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
  h1 { font-size: 20px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
  th { background: #f4f4f4; }
  .total { text-align: right; font-weight: bold; margin-top: 12px; }
  .qr { margin-top: 24px; text-align: center; }
  .qr p { font-size: 11px; color: #666; }
</style>
</head>
<body>
  <h1>Invoice {{.Number}}</h1>
  <p>Date: {{formatDate .Date}}<br>
  Customer: {{.BillingName}}<br>
  Status: {{.Status}}</p>
  <table>
    <tr><th>Item</th><th>SKU</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.SKU}}</td>
      <td>{{.Quantity}}</td>
      <td>{{formatMoney .UnitPrice}}</td>
      <td>{{formatMoney .Total}}</td>
    </tr>
    {{end}}
  </table>
  <p class="total">Total: {{formatMoney .Total}}</p>
  <div class="qr">
    <img src="{{.QRDataURI}}" alt="Delivery status QR code">
    <p>Scan to update the delivery status of this order.</p>
  </div>
</body>
</html>
`
