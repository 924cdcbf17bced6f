// Package services contains domain services: business rules that span more than one
// aggregate or value object and therefore belong to none of them.
//
// CheckoutValidator verifies a cart against current catalog snapshots before the cart is
// turned into an order.
package services
