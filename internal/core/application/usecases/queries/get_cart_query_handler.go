package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordercore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads carts straight from the database.
// Lines are joined with products so a client sees names and availability; a line
// whose product row is gone is reported unavailable with an empty name.
type GetCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		UserID: query.UserID(),
		Lines:  make([]CartLineView, 0),
	}

	var cartID uuid.UUID
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, total_amount, total_item_count
		FROM carts
		WHERE user_id = ?
	`, query.UserID().Bytes()).Row()
	err := row.Scan(&cartID, &response.TotalAmount, &response.TotalItemCount)
	if errors.Is(err, sql.ErrNoRows) {
		return response, nil
	}
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(cartID[:])
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	response.Exists = true
	response.ID = id

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.product_id,
			COALESCE(p.name, ''),
			l.quantity,
			l.unit_price,
			COALESCE(p.price, 0),
			COALESCE(p.is_active, FALSE)
		FROM cart_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.cart_id = ?
		ORDER BY l.position
	`, cartID).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CartLineView
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&line.ProductName,
			&line.Quantity,
			&line.UnitPrice,
			&line.CurrentPrice,
			&line.IsAvailable,
		)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		line.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return GetCartQueryResponse{}, err
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		response.Lines = append(response.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
