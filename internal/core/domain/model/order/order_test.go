package order_test

import (
	"testing"
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOffer(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewPrice(250000)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"cat-construction",
		"Construction work",
		"Chilonzor district, Tashkent",
		"Wall painting and floor covering",
		[]string{"https://img.example/1.jpg"},
		price,
		time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid offer with all valid parameters", func(t *testing.T) {
		o := validOffer(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Offered, o.Status())
		assert.Equal(t, "cat-construction", o.CategoryID())
		assert.Nil(t, o.RequesterName())
		assert.Nil(t, o.RequesterPhone())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID
		price, _ := kernel.NewPrice(100)

		o, err := order.NewOrder(invalidID, "c1", "n", "loc", "", nil, price, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty category", func(t *testing.T) {
		price, _ := kernel.NewPrice(100)

		o, err := order.NewOrder(kernel.NewUUID(), "", "n", "loc", "", nil, price, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with empty location", func(t *testing.T) {
		price, _ := kernel.NewPrice(100)

		o, err := order.NewOrder(kernel.NewUUID(), "c1", "n", "", "", nil, price, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with invalid price", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "c1", "n", "loc", "", nil, 0, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "price is invalid")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, "", "n", "", "", nil, -1, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "categoryID")
		assert.Contains(t, err.Error(), "price is invalid")
	})

	t.Run("images are copied, not aliased", func(t *testing.T) {
		price, _ := kernel.NewPrice(100)
		images := []string{"a.jpg", "b.jpg"}

		o, err := order.NewOrder(kernel.NewUUID(), "c1", "n", "loc", "", images, price, time.Now())
		require.NoError(t, err)

		images[0] = "mutated.jpg"
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, o.Images())
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	price, _ := kernel.NewPrice(100)
	name := "Alisher Karimov"
	phone := "+998901234567"
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("restores an approved order with contacts", func(t *testing.T) {
		o, err := order.RestoreOrder(id, "c1", "n", "loc", "", nil, price,
			order.Approved, &name, &phone, created, nil)

		require.NoError(t, err)
		assert.Equal(t, order.Approved, o.Status())
		assert.Equal(t, name, *o.RequesterName())
		assert.Equal(t, phone, *o.RequesterPhone())
	})

	t.Run("restores a completed order with completion timestamp", func(t *testing.T) {
		completed := created.Add(2 * time.Hour)

		o, err := order.RestoreOrder(id, "c1", "n", "loc", "", nil, price,
			order.Completed, &name, &phone, created, &completed)

		require.NoError(t, err)
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completed, *o.CompletedAt())
	})

	t.Run("rejects contacts on an offered order", func(t *testing.T) {
		_, err := order.RestoreOrder(id, "c1", "n", "loc", "", nil, price,
			order.Offered, &name, &phone, created, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an approved order without contacts", func(t *testing.T) {
		_, err := order.RestoreOrder(id, "c1", "n", "loc", "", nil, price,
			order.Approved, nil, nil, created, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, "c1", "n", "loc", "", nil, price,
			order.Unknown, nil, nil, created, nil)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		o := validOffer(t)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should accept an offered order", func(t *testing.T) {
		o := validOffer(t)

		err := o.Accept()

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Nil(t, o.RequesterName()) // contacts only arrive with confirmation
	})

	t.Run("should conflict on double accept", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		err := o.Accept()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Accepted, o.Status())
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("should confirm an accepted order and populate contacts", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		err := o.Confirm("Alisher Karimov", "+998901234567")

		require.NoError(t, err)
		assert.Equal(t, order.Approved, o.Status())
		require.NotNil(t, o.RequesterName())
		assert.Equal(t, "Alisher Karimov", *o.RequesterName())
		assert.Equal(t, "+998901234567", *o.RequesterPhone())
	})

	t.Run("should never confirm an offered order", func(t *testing.T) {
		o := validOffer(t)

		err := o.Confirm("Name", "+998900000000")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Offered, o.Status())
		assert.Nil(t, o.RequesterName())
	})

	t.Run("should require contact fields", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		require.Error(t, o.Confirm("", "+998900000000"))
		require.Error(t, o.Confirm("Name", ""))
		assert.Equal(t, order.Accepted, o.Status()) // unchanged
	})
}

func TestOrder_Complete(t *testing.T) {
	completedAt := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

	t.Run("should complete an approved order", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())
		require.NoError(t, o.Confirm("Name", "+998900000000"))

		err := o.Complete(completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
	})

	t.Run("should conflict while merely accepted", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		err := o.Complete(completedAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Nil(t, o.CompletedAt())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels an offered order", func(t *testing.T) {
		o := validOffer(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Rejected, o.Status())
	})

	t.Run("cancels an accepted order", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Rejected, o.Status())
	})

	t.Run("conflicts on a completed order", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())
		require.NoError(t, o.Confirm("Name", "+998900000000"))
		require.NoError(t, o.Complete(time.Now()))

		require.Error(t, o.Cancel())
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_Reoffer(t *testing.T) {
	t.Run("rolls an unconfirmed accept back to offered", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())

		err := o.Reoffer()

		require.NoError(t, err)
		assert.Equal(t, order.Offered, o.Status())
	})

	t.Run("conflicts once approved", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())
		require.NoError(t, o.Confirm("Name", "+998900000000"))

		require.Error(t, o.Reoffer())
		assert.Equal(t, order.Approved, o.Status())
	})
}

func TestOrder_ReopenForRollback(t *testing.T) {
	t.Run("undoes an optimistic completion", func(t *testing.T) {
		o := validOffer(t)
		require.NoError(t, o.Accept())
		require.NoError(t, o.Confirm("Name", "+998900000000"))
		require.NoError(t, o.Complete(time.Now()))

		err := o.ReopenForRollback()

		require.NoError(t, err)
		assert.Equal(t, order.Approved, o.Status())
		assert.Nil(t, o.CompletedAt())
		require.NotNil(t, o.RequesterName()) // contacts survive the rollback
	})

	t.Run("conflicts for non-completed orders", func(t *testing.T) {
		o := validOffer(t)

		require.Error(t, o.ReopenForRollback())
	})
}

func TestOrder_FullWorkflow(t *testing.T) {
	t.Run("should follow complete order lifecycle", func(t *testing.T) {
		o := validOffer(t)

		require.NoError(t, o.Accept())
		assert.Equal(t, order.Accepted, o.Status())

		require.NoError(t, o.Confirm("Alisher Karimov", "+998901234567"))
		assert.Equal(t, order.Approved, o.Status())

		completedAt := o.CreatedAt().Add(3 * time.Hour)
		require.NoError(t, o.Complete(completedAt))
		assert.Equal(t, order.Completed, o.Status())

		require.NoError(t, o.Validate())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
		assert.Equal(t, "Alisher Karimov", *o.RequesterName())
	})
}
