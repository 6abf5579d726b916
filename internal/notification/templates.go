package notification

import (
	"bytes"
	"html/template"
	"strings"
)

const (
	SubjectOrderPlaced    = "Order Placed"
	SubjectOrderCancelled = "Confirmation of Order Cancellation"
	SubjectWelcome        = "Welcome to Your Food Ordering App"
)

var (
	orderPlacedTmpl = template.Must(template.New("placed").Parse(
		`<h1>Confirmation of Payment:</h1>` +
			`<h3>We are writing to confirm that your payment for the food order has been successfully processed.</h3>` +
			`<h3>Order ID #[{{.OrderID}}] Order Details # {{.Details}}, total amount paid # {{.Amount}}.</h3>` +
			`<h4>Thank you for choosing Food Ordering App.</h4>`))

	orderCancelledTmpl = template.Must(template.New("cancelled").Parse(
		`<h2>We are writing to confirm that your order with order ID #[{{.OrderID}}] has been successfully canceled.</h2>` +
			`<h3>Thank you for choosing Food Ordering App. We appreciate your understanding.</h3>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<h1>Your registration for Food Ordering App is now complete.</h1>` +
			`<h3>Welcome {{.Username}}. We look forward to serving you soon!</h3>`))
)

type orderPlacedData struct {
	OrderID uint
	Details string
	Amount  string
}

type orderCancelledData struct {
	OrderID uint
}

type welcomeData struct {
	Username string
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func joinDetails(details []string) string {
	return strings.Join(details, "; ")
}
