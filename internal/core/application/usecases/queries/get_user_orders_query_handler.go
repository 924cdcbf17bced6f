package queries

import (
	"context"

	"ordercore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle returns an empty slice, never nil, for a user without orders.
// Ties on created_at are broken by order number so paging is stable.
func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			total_amount,
			total_item_count,
			created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, order_number DESC
		LIMIT ? OFFSET ?
	`, query.UserID().Bytes(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&summary.Number,
			&summary.Status,
			&summary.TotalAmount,
			&summary.TotalItemCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		summary.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
