package create_order

import (
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
// Абонемент и ретрит покупаются в количестве 1, одинаковые строки не допускаются
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if len(req.Lines) == 0 || len(req.Lines) > domain.MaxOrderLines {
		return fmt.Errorf("%w: between 1 and %d lines required", ErrInvalidInput, domain.MaxOrderLines)
	}

	type key struct {
		t  domain.ProductType
		id int64
	}
	seen := make(map[key]bool, len(req.Lines))
	memberships := 0

	for i := range req.Lines {
		l := &req.Lines[i]
		t := domain.ProductType(l.ProductType)
		if !t.IsValid() {
			return fmt.Errorf("%w: line %d: unknown product type %q", ErrInvalidInput, i, l.ProductType)
		}
		if l.ObjectID <= 0 {
			return fmt.Errorf("%w: line %d: objectId must be positive", ErrInvalidInput, i)
		}
		if l.Quantity == 0 {
			l.Quantity = 1
		}
		if l.Quantity < 0 || (t != domain.ProductPackage && l.Quantity != 1) {
			return fmt.Errorf("%w: line %d: invalid quantity %d", ErrInvalidInput, i, l.Quantity)
		}

		k := key{t: t, id: l.ObjectID}
		if seen[k] {
			return fmt.Errorf("%w: line %d: duplicate product", ErrInvalidInput, i)
		}
		seen[k] = true

		if t == domain.ProductMembership {
			memberships++
		}
	}
	if memberships > 1 {
		return fmt.Errorf("%w: at most one membership per order", ErrInvalidInput)
	}
	return nil
}
