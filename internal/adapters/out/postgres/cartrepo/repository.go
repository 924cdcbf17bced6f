package cartrepo

import (
	"context"
	"errors"
	"time"

	"ordercore/internal/adapters/out/postgres/pgerrs"
	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const userUniqueConstraint = "carts_user_id_key"

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the cart inside a savepoint, so a second cart for the same user fails with
// ConflictError and leaves the enclosing transaction usable.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		return insertLines(tx, dto.Lines)
	})
	if pgerrs.IsUniqueViolation(err, userUniqueConstraint) {
		return errs.NewConflictErrorWithCause("cart user id", aggregate.UserID().String(), err)
	}
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the totals and replaces the whole line set.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CartDTO{}).
			Where("id = ?", dto.ID).
			Select("total_amount", "total_item_count", "updated_at").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("cart", aggregate.ID().String())
		}

		if err := tx.Where("cart_id = ?", dto.ID).Delete(&CartLineDTO{}).Error; err != nil {
			return err
		}
		return insertLines(tx, dto.Lines)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	return r.getByUser(r.db.WithContext(ctx), userID)
}

// GetByUserForUpdate locks the carts row with SELECT ... FOR UPDATE. Lines are read after
// the lock is taken, so they reflect every mutation committed before it.
func (r *GormCartRepository) GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	return r.getByUser(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *GormCartRepository) getByUser(db *gorm.DB, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("cart", userID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func insertLines(tx *gorm.DB, lines []CartLineDTO) error {
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}
