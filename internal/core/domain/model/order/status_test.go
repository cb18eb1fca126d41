package order_test

import (
	"testing"

	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Offered, order.Accepted, order.Approved, order.Completed, order.Rejected,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "unknown"},
		{order.Offered, "offered"},
		{order.Accepted, "accepted"},
		{order.Approved, "approved"},
		{order.Completed, "completed"},
		{order.Rejected, "rejected"},
		{order.Status(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses every valid wire name", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Offered, order.Accepted, order.Approved, order.Completed, order.Rejected,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("pending")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Rank(t *testing.T) {
	t.Run("ranks are monotonic along the forward lifecycle", func(t *testing.T) {
		assert.Less(t, order.Offered.Rank(), order.Accepted.Rank())
		assert.Less(t, order.Accepted.Rank(), order.Approved.Rank())
		assert.Less(t, order.Approved.Rank(), order.Completed.Rank())
	})

	t.Run("terminal statuses share the top rank", func(t *testing.T) {
		assert.Equal(t, order.Completed.Rank(), order.Rejected.Rank())
	})

	t.Run("unknown ranks below everything", func(t *testing.T) {
		assert.Equal(t, 0, order.Unknown.Rank())
	})
}

func TestStatus_IsActive(t *testing.T) {
	assert.False(t, order.Offered.IsActive())
	assert.True(t, order.Accepted.IsActive())
	assert.True(t, order.Approved.IsActive())
	assert.False(t, order.Completed.IsActive())
	assert.False(t, order.Rejected.IsActive())
}

func TestStatus_Accept(t *testing.T) {
	t.Run("offered can be accepted", func(t *testing.T) {
		newStatus, err := order.Offered.Accept()

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, newStatus)
	})

	t.Run("any other status conflicts", func(t *testing.T) {
		for _, s := range []order.Status{order.Accepted, order.Approved, order.Completed, order.Rejected} {
			_, err := s.Accept()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrConflict)
		}
	})
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("accepted can be confirmed", func(t *testing.T) {
		newStatus, err := order.Accepted.Confirm()

		require.NoError(t, err)
		assert.Equal(t, order.Approved, newStatus)
	})

	t.Run("confirm never succeeds from any other status", func(t *testing.T) {
		for _, s := range []order.Status{order.Offered, order.Approved, order.Completed, order.Rejected} {
			_, err := s.Confirm()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrConflict)
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("approved can be completed", func(t *testing.T) {
		newStatus, err := order.Approved.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.Completed, newStatus)
	})

	t.Run("completing a merely accepted order conflicts", func(t *testing.T) {
		_, err := order.Accepted.Complete()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "accepted is not a valid status to complete")
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("non-terminal statuses can be cancelled", func(t *testing.T) {
		for _, s := range []order.Status{order.Offered, order.Accepted, order.Approved} {
			newStatus, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Rejected, newStatus)
		}
	})

	t.Run("terminal statuses cannot be cancelled", func(t *testing.T) {
		for _, s := range []order.Status{order.Completed, order.Rejected} {
			_, err := s.Cancel()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_Reoffer(t *testing.T) {
	t.Run("accepted rolls back to offered", func(t *testing.T) {
		newStatus, err := order.Accepted.Reoffer()

		require.NoError(t, err)
		assert.Equal(t, order.Offered, newStatus)
	})

	t.Run("no other status can be reoffered", func(t *testing.T) {
		for _, s := range []order.Status{order.Offered, order.Approved, order.Completed, order.Rejected} {
			_, err := s.Reoffer()
			require.Error(t, err, s.String())
		}
	})
}
