package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"ordercore/internal/adapters/out/postgres/pgerrs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: "23505", ConstraintName: "carts_user_id_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "any constraint", err: violation, want: true},
		{name: "matching constraint", err: violation, constraint: "carts_user_id_key", want: true},
		{name: "other constraint", err: violation, constraint: "orders_order_number_key", want: false},
		{name: "wrapped", err: fmt.Errorf("insert: %w", violation), want: true},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerrs.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
