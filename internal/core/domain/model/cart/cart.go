package cart

import (
	"errors"
	"fmt"

	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
)

// Cart is the mutable per-user staging area for intended purchases.
//
// Cart follows these invariants:
//   - Has a valid identifier and owning user
//   - Holds at most one line per product, each with quantity >= 1
//   - totalAmount and totalItemCount are recomputed from the whole line set after
//     every mutation and are never set directly
type Cart struct {
	id     kernel.UUID
	userID kernel.UUID

	// lines keeps insertion order so the cart renders stably.
	lines []Line

	totalAmount    kernel.Money
	totalItemCount int

	isConstructed bool
}

// NewCart creates an empty cart owned by userID.
func NewCart(id kernel.UUID, userID kernel.UUID) (*Cart, error) {
	return RestoreCart(id, userID, nil)
}

// RestoreCart rebuilds a cart from persisted lines. Totals are recomputed, never read back.
func RestoreCart(id kernel.UUID, userID kernel.UUID, lines []Line) (*Cart, error) {
	c := &Cart{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setUserID(userID),
		c.setLines(lines),
	); err != nil {
		return nil, err
	}

	c.recalculate()
	return c, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) ID() kernel.UUID {
	return c.id
}

func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalAmount() kernel.Money {
	return c.totalAmount
}

func (c *Cart) TotalItemCount() int {
	return c.totalItemCount
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line for productID, if present.
func (c *Cart) Line(productID kernel.UUID) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Quantity returns the quantity held for productID, or 0 when the product is not in the cart.
func (c *Cart) Quantity(productID kernel.UUID) int {
	line, _ := c.Line(productID)
	return line.quantity
}

// AddItem adds quantity units of product. A product already in the cart has its quantity
// increased and keeps its locked price; a new line locks the product's current price.
//
// Returns:
//   - ValueIsInvalidError if quantity <= 0
//   - ValueIsOutOfRangeError if the resulting line quantity exceeds MaxLineQuantity
//   - ProductInactiveError if the product cannot be purchased
func (c *Cart) AddItem(product catalog.Product, quantity int) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if !product.IsActive() {
		return errs.NewProductInactiveError(product.ID().String())
	}

	if quantity > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}

	if i := c.indexOf(product.ID()); i >= 0 {
		merged := c.lines[i].quantity + quantity
		if merged > MaxLineQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", merged, 1, MaxLineQuantity)
		}
		c.lines[i] = c.lines[i].withQuantity(merged)
	} else {
		line, err := NewLine(product.ID(), quantity, product.Price())
		if err != nil {
			return err
		}
		c.lines = append(c.lines, line)
	}

	c.recalculate()
	return nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity of 0 or less
// removes the line and is a no-op when the line is already absent.
// Setting a positive quantity on a product that is not in the cart returns ObjectNotFoundError;
// AddItem is the only way to introduce a product and lock its price.
func (c *Cart) SetQuantity(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	if quantity > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}

	i := c.indexOf(productID)
	if i < 0 {
		return errs.NewObjectNotFoundError("cart line", productID)
	}

	c.lines[i] = c.lines[i].withQuantity(quantity)
	c.recalculate()
	return nil
}

// IncrementItem raises the line quantity by one.
func (c *Cart) IncrementItem(productID kernel.UUID) error {
	return c.SetQuantity(productID, c.Quantity(productID)+1)
}

// DecrementItem lowers the line quantity by one, removing the line when it reaches zero.
func (c *Cart) DecrementItem(productID kernel.UUID) error {
	return c.SetQuantity(productID, c.Quantity(productID)-1)
}

// RemoveItem drops the line for productID. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID kernel.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	c.recalculate()
}

// Clear empties the cart. The cart itself survives.
func (c *Cart) Clear() {
	c.lines = nil
	c.recalculate()
}

// SyncPrices reconciles locked prices with the catalog. products holds the current snapshot
// of every product the caller could resolve; lines whose product is absent from the map
// or inactive are removed, and lines whose price differs take the current price.
// It reports whether anything changed.
func (c *Cart) SyncPrices(products map[kernel.UUID]catalog.Product) bool {
	changed := false
	kept := c.lines[:0]

	for _, line := range c.lines {
		product, ok := products[line.productID]
		if !ok || !product.IsActive() {
			changed = true
			continue
		}
		if !line.unitPrice.IsEqual(product.Price()) {
			line = line.withUnitPrice(product.Price())
			changed = true
		}
		kept = append(kept, line)
	}

	c.lines = kept
	c.recalculate()
	return changed
}

// recalculate derives both totals from the current line set.
func (c *Cart) recalculate() {
	amount := kernel.Zero
	count := 0
	for _, line := range c.lines {
		amount = amount.Add(line.Subtotal())
		count += line.quantity
	}
	c.totalAmount = amount
	c.totalItemCount = count
}

func (c *Cart) indexOf(productID kernel.UUID) int {
	for i, line := range c.lines {
		if line.productID.IsEqual(productID) {
			return i
		}
	}
	return -1
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	c.userID = userID
	return nil
}

func (c *Cart) setLines(lines []Line) error {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	c.lines = make([]Line, 0, len(lines))

	for _, line := range lines {
		if line.quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("%d is not greater than 0", line.quantity),
			)
		}
		if _, dup := seen[line.productID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"cart lines",
				fmt.Errorf("product %s appears more than once", line.productID),
			)
		}
		seen[line.productID] = struct{}{}
		c.lines = append(c.lines, line)
	}
	return nil
}
