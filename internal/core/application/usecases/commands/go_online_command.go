package commands

import (
	"errors"
	"slices"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/pkg/guard"
)

var (
	ErrGoOnlineCommandIsNotConstructed = errors.New(
		"GoOnlineCommand must be created via NewGoOnlineCommand constructor",
	)
	ErrCategoriesAreRequired = errors.New("at least one category is required")
)

// GoOnlineCommand represents the worker enabling offer surfacing with a
// category selection and a price range. The configuration is persisted
// so it survives restarts; the online flag itself is not.
type GoOnlineCommand struct { //nolint:recvcheck //using for validation
	categories []string
	priceRange kernel.PriceRange

	guard guard.ConstructorGuard
}

// NewGoOnlineCommand creates a command to put the worker online.
// Validates that at least one category is selected and the price range
// was properly constructed; deeper configuration rules (duplicates,
// blank ids) are enforced by the availability aggregate.
func NewGoOnlineCommand(categories []string, priceRange kernel.PriceRange) (GoOnlineCommand, error) {
	cmd := GoOnlineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCategories(categories),
		cmd.setPriceRange(priceRange),
	); err != nil {
		return GoOnlineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGoOnlineCommandIsNotConstructed if validation fails.
func (c GoOnlineCommand) Validate() error {
	return c.guard.Validate(ErrGoOnlineCommandIsNotConstructed)
}

// Categories returns a copy of the selected category ids.
func (c GoOnlineCommand) Categories() []string {
	return slices.Clone(c.categories)
}

// PriceRange returns the acceptable offer price band.
func (c GoOnlineCommand) PriceRange() kernel.PriceRange {
	return c.priceRange
}

func (c *GoOnlineCommand) setCategories(categories []string) error {
	if len(categories) == 0 {
		return ErrCategoriesAreRequired
	}

	c.categories = slices.Clone(categories)
	return nil
}

func (c *GoOnlineCommand) setPriceRange(priceRange kernel.PriceRange) error {
	if err := priceRange.Validate(); err != nil {
		return err
	}

	c.priceRange = priceRange
	return nil
}
