package domain

import "time"

// Receipt summarizes a checkout the backend accepted.
type Receipt struct {
	OrderID  string     `json:"orderId"`
	Items    []LineItem `json:"items"`
	Total    float64    `json:"total"`
	PlacedAt time.Time  `json:"placedAt"`
}

// Ticket is the printable PDF the backend issues for an order.
type Ticket struct {
	OrderID     string
	ContentType string
	Body        []byte
}

// TicketFileName is the download name shown to the customer.
func (t Ticket) TicketFileName() string {
	id := t.OrderID
	if len(id) > 8 {
		id = id[:8]
	}
	return "ticket-" + id + ".pdf"
}
