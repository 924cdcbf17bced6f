package http

import (
	"time"

	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Requests

// AddCartItemRequest quantity bounds mirror cart.MaxLineQuantity.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=9999"`
}

// SetCartItemQuantityRequest allows zero and negative quantities, which remove the line.
type SetCartItemQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=9999"`
}

type CheckoutRequest struct {
	CustomerComment string            `json:"customer_comment" validate:"max=2000"`
	ContactInfo     map[string]string `json:"contact_info"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

type OrderNoteRequest struct {
	Note string `json:"note"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// Responses

type CartLine struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    string  `json:"unit_price"`
	Subtotal     string  `json:"subtotal"`
	CurrentPrice *string `json:"current_price,omitempty"`
	IsAvailable  *bool   `json:"is_available,omitempty"`
}

type Cart struct {
	ID             string     `json:"id,omitempty"`
	UserID         string     `json:"user_id"`
	Lines          []CartLine `json:"lines"`
	TotalAmount    string     `json:"total_amount"`
	TotalItemCount int        `json:"total_item_count"`
}

type CheckoutValidation struct {
	CartID         string `json:"cart_id"`
	TotalAmount    string `json:"total_amount"`
	TotalItemCount int    `json:"total_item_count"`
}

type OrderLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type Order struct {
	ID              string            `json:"id"`
	Number          string            `json:"number"`
	UserID          string            `json:"user_id"`
	Status          string            `json:"status"`
	AllowedStatuses []string          `json:"allowed_statuses"`
	TotalAmount     string            `json:"total_amount"`
	TotalItemCount  int               `json:"total_item_count"`
	CustomerComment string            `json:"customer_comment"`
	ManagerComment  string            `json:"manager_comment"`
	ContactInfo     map[string]string `json:"contact_info"`
	Lines           []OrderLine       `json:"lines"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	ConfirmedAt     *time.Time        `json:"confirmed_at"`
	CompletedAt     *time.Time        `json:"completed_at"`
}

type OrderSummary struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	Status         string    `json:"status"`
	TotalAmount    string    `json:"total_amount"`
	TotalItemCount int       `json:"total_item_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Amounts are always rendered with two decimal places.
func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func cartFromDomain(c *cart.Cart) Cart {
	lines := make([]CartLine, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		lines = append(lines, CartLine{
			ProductID: l.ProductID().String(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().String(),
			Subtotal:  l.Subtotal().String(),
		})
	}

	return Cart{
		ID:             c.ID().String(),
		UserID:         c.UserID().String(),
		Lines:          lines,
		TotalAmount:    c.TotalAmount().String(),
		TotalItemCount: c.TotalItemCount(),
	}
}

func cartFromView(v queries.GetCartQueryResponse) Cart {
	lines := make([]CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		current := amount(l.CurrentPrice)
		available := l.IsAvailable
		lines = append(lines, CartLine{
			ProductID:    l.ProductID.String(),
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    amount(l.UnitPrice),
			Subtotal:     amount(l.Subtotal),
			CurrentPrice: &current,
			IsAvailable:  &available,
		})
	}

	response := Cart{
		UserID:         v.UserID.String(),
		Lines:          lines,
		TotalAmount:    amount(v.TotalAmount),
		TotalItemCount: v.TotalItemCount,
	}
	if v.Exists {
		response.ID = v.ID.String()
	}
	return response
}

func orderFromDomain(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			ProductID:   l.ProductID().String(),
			ProductName: l.ProductName(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice().String(),
			Subtotal:    l.Subtotal().String(),
		})
	}

	allowed := o.Status().AllowedTransitions()
	allowedNames := make([]string, 0, len(allowed))
	for _, s := range allowed {
		allowedNames = append(allowedNames, s.String())
	}

	return Order{
		ID:              o.ID().String(),
		Number:          o.Number().String(),
		UserID:          o.UserID().String(),
		Status:          o.Status().String(),
		AllowedStatuses: allowedNames,
		TotalAmount:     o.TotalAmount().String(),
		TotalItemCount:  o.TotalItemCount(),
		CustomerComment: o.CustomerComment(),
		ManagerComment:  o.ManagerComment(),
		ContactInfo:     contactInfo(o.ContactInfo()),
		Lines:           lines,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		ConfirmedAt:     o.ConfirmedAt(),
		CompletedAt:     o.CompletedAt(),
	}
}

func orderFromDetails(d queries.OrderDetails) Order {
	lines := make([]OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, OrderLine{
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   amount(l.UnitPrice),
			Subtotal:    amount(l.Subtotal),
		})
	}

	allowed := d.AllowedStatuses
	if allowed == nil {
		allowed = []string{}
	}

	return Order{
		ID:              d.ID.String(),
		Number:          d.Number,
		UserID:          d.UserID.String(),
		Status:          d.Status,
		AllowedStatuses: allowed,
		TotalAmount:     amount(d.TotalAmount),
		TotalItemCount:  d.TotalItemCount,
		CustomerComment: d.CustomerComment,
		ManagerComment:  d.ManagerComment,
		ContactInfo:     contactInfo(d.ContactInfo),
		Lines:           lines,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ConfirmedAt:     d.ConfirmedAt,
		CompletedAt:     d.CompletedAt,
	}
}

func orderSummariesFromView(rows []queries.OrderSummary) []OrderSummary {
	response := make([]OrderSummary, len(rows))
	for i, row := range rows {
		response[i] = OrderSummary{
			ID:             row.ID.String(),
			Number:         row.Number,
			Status:         row.Status,
			TotalAmount:    amount(row.TotalAmount),
			TotalItemCount: row.TotalItemCount,
			CreatedAt:      row.CreatedAt,
		}
	}
	return response
}

func contactInfo(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
