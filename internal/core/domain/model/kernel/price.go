package kernel

import (
	"fmt"

	"jobmarket/internal/pkg/errs"
)

// Price represents a monetary amount in the smallest currency unit.
// A valid price is strictly positive; the zero value is invalid and
// catches uninitialized prices.
type Price int64

// NewPrice creates a validated Price.
//
// Returns:
//   - Price: the price if the amount is positive
//   - error: a ValueIsInvalidError if the amount is zero or negative
func NewPrice(amount int64) (Price, error) {
	p := Price(amount)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

// Validate checks that the price is strictly positive.
func (p Price) Validate() error {
	if p <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is not greater than 0", int64(p)))
	}
	return nil
}

// Amount returns the raw amount in the smallest currency unit.
func (p Price) Amount() int64 {
	return int64(p)
}

// PriceRange is a value object describing the band of offer prices a
// worker is willing to take jobs in. It maintains the invariant that
// both bounds are positive and min is strictly below max.
//
// PriceRange must be created via NewPriceRange; the zero value fails
// validation.
type PriceRange struct {
	min Price
	max Price

	isConstructed bool
}

// NewPriceRange creates a validated PriceRange.
//
// Business rules:
//   - both bounds must be positive
//   - min must be strictly less than max
//
// Returns a ValueIsInvalidError describing the violated rule otherwise.
func NewPriceRange(minPrice, maxPrice Price) (PriceRange, error) {
	if err := minPrice.Validate(); err != nil {
		return PriceRange{}, err
	}
	if err := maxPrice.Validate(); err != nil {
		return PriceRange{}, err
	}
	if minPrice >= maxPrice {
		return PriceRange{}, errs.NewValueIsInvalidErrorWithCause("price range is invalid",
			fmt.Errorf("min %d is not less than max %d", minPrice.Amount(), maxPrice.Amount()))
	}

	return PriceRange{
		min:           minPrice,
		max:           maxPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the PriceRange was created via NewPriceRange.
func (r PriceRange) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("PriceRange must be created via NewPriceRange")
	}
	return nil
}

// Min returns the lower bound of the range.
func (r PriceRange) Min() Price {
	return r.min
}

// Max returns the upper bound of the range.
func (r PriceRange) Max() Price {
	return r.max
}

// Contains reports whether the given price falls inside the range,
// bounds inclusive.
func (r PriceRange) Contains(p Price) bool {
	return p >= r.min && p <= r.max
}

// IsEqual compares two price ranges by their bounds.
func (r PriceRange) IsEqual(other PriceRange) bool {
	return r.min == other.min && r.max == other.max
}
