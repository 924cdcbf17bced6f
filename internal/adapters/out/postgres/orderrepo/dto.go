// Package orderrepo persists orders and their line snapshots with gorm.
package orderrepo

import (
	"time"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is stored by name so the table stays readable
// without the enum.
type OrderDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderNumber     string            `gorm:"type:varchar(32);not null;uniqueIndex:orders_order_number_key"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status          string            `gorm:"type:varchar(16);not null"`
	TotalAmount     decimal.Decimal   `gorm:"type:numeric(20,2);not null"`
	TotalItemCount  int               `gorm:"type:int;not null"`
	CustomerComment string            `gorm:"type:text;not null"`
	ManagerComment  string            `gorm:"type:text;not null"`
	ContactInfo     map[string]string `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt       time.Time         `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime:false"`
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	Lines           []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one order_lines row. Rows are written once, with the order.
type OrderLineDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"type:int;primaryKey;autoIncrement:false"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"type:int;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:     orderID,
			Position:    i,
			ProductID:   line.ProductID().Bytes(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice().Decimal(),
		})
	}

	contactInfo := o.ContactInfo()
	if contactInfo == nil {
		contactInfo = map[string]string{}
	}

	return OrderDTO{
		ID:              orderID,
		OrderNumber:     o.Number().String(),
		UserID:          o.UserID().Bytes(),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount().Decimal(),
		TotalItemCount:  o.TotalItemCount(),
		CustomerComment: o.CustomerComment(),
		ManagerComment:  o.ManagerComment(),
		ContactInfo:     contactInfo,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		ConfirmedAt:     o.ConfirmedAt(),
		CompletedAt:     o.CompletedAt(),
		Lines:           lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.ParseNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		Number:          number,
		UserID:          userID,
		Status:          status,
		TotalAmount:     total,
		TotalItemCount:  dto.TotalItemCount,
		CustomerComment: dto.CustomerComment,
		ManagerComment:  dto.ManagerComment,
		ContactInfo:     dto.ContactInfo,
		Lines:           lines,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		ConfirmedAt:     dto.ConfirmedAt,
		CompletedAt:     dto.CompletedAt,
	})
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Line{}, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}

	return order.NewLine(productID, dto.ProductName, dto.Quantity, price)
}
