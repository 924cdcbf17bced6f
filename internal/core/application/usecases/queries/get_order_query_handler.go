package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderColumns = `
	id,
	order_number,
	user_id,
	status,
	total_amount,
	total_item_count,
	customer_comment,
	manager_comment,
	contact_info,
	created_at,
	updated_at,
	confirmed_at,
	completed_at`

// GetOrderQueryHandler reads one order with its lines.
// Returns ObjectNotFoundError when no order matches.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	db := h.db.WithContext(ctx)

	var row *sql.Row
	var key, value string
	if query.ByNumber() {
		key, value = "order number", query.Number().String()
		row = db.Raw(`SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, value).Row()
	} else {
		key, value = "order", query.OrderID().String()
		row = db.Raw(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID().Bytes()).Row()
	}

	details, orderID, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetails{}, errs.NewObjectNotFoundError(key, value)
	}
	if err != nil {
		return OrderDetails{}, err
	}

	details.Lines, err = h.lines(db, orderID)
	if err != nil {
		return OrderDetails{}, err
	}

	return details, nil
}

func (h GetOrderQueryHandler) lines(db *gorm.DB, orderID uuid.UUID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT product_id, product_name, quantity, unit_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var productID uuid.UUID

		if err = rows.Scan(&productID, &line.ProductName, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}

		line.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func scanOrder(row *sql.Row) (OrderDetails, uuid.UUID, error) {
	var details OrderDetails
	var id, userID uuid.UUID
	var contactInfo []byte
	var confirmedAt, completedAt sql.NullTime

	err := row.Scan(
		&id,
		&details.Number,
		&userID,
		&details.Status,
		&details.TotalAmount,
		&details.TotalItemCount,
		&details.CustomerComment,
		&details.ManagerComment,
		&contactInfo,
		&details.CreatedAt,
		&details.UpdatedAt,
		&confirmedAt,
		&completedAt,
	)
	if err != nil {
		return OrderDetails{}, uuid.Nil, err
	}

	if details.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderDetails{}, uuid.Nil, err
	}
	if details.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderDetails{}, uuid.Nil, err
	}

	details.ContactInfo = make(map[string]string)
	if len(contactInfo) > 0 {
		if err = json.Unmarshal(contactInfo, &details.ContactInfo); err != nil {
			return OrderDetails{}, uuid.Nil, err
		}
	}

	status, err := order.ParseStatus(details.Status)
	if err != nil {
		return OrderDetails{}, uuid.Nil, err
	}
	details.AllowedStatuses = make([]string, 0)
	for _, next := range status.AllowedTransitions() {
		details.AllowedStatuses = append(details.AllowedStatuses, next.String())
	}

	details.ConfirmedAt = nullTime(confirmedAt)
	details.CompletedAt = nullTime(completedAt)
	return details, id, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
