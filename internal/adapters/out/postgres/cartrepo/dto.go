// Package cartrepo persists carts and their lines with gorm.
package cartrepo

import (
	"time"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the carts row. Totals are stored for reads but always recomputed from the
// lines when the aggregate is restored.
type CartDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:carts_user_id_key"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	TotalItemCount int             `gorm:"type:int;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Lines          []CartLineDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartLineDTO is one cart_lines row. Position keeps the order in which lines were added.
type CartLineDTO struct {
	CartID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"type:int;not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) CartDTO {
	cartID := c.ID().Bytes()
	lines := make([]CartLineDTO, 0, len(c.Lines()))
	for i, line := range c.Lines() {
		lines = append(lines, CartLineDTO{
			CartID:    cartID,
			ProductID: line.ProductID().Bytes(),
			Position:  i,
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Decimal(),
		})
	}

	return CartDTO{
		ID:             cartID,
		UserID:         c.UserID().Bytes(),
		TotalAmount:    c.TotalAmount().Decimal(),
		TotalItemCount: c.TotalItemCount(),
		Lines:          lines,
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(id, userID, lines)
}

func lineToDomain(dto CartLineDTO) (cart.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return cart.Line{}, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return cart.Line{}, err
	}

	return cart.NewLine(productID, dto.Quantity, price)
}
