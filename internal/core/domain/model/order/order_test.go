package order_test

import (
	"testing"
	"time"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlacedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 4250, testPlacedAt)
	require.NoError(t, err)
	return o
}

func restoreTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(),
		status, 4250, testPlacedAt, testPlacedAt, 3,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending with version 1", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.Deliverer())
		assert.EqualValues(t, 1, o.Version())
		assert.EqualValues(t, 4250, o.TotalCents())
		assert.Equal(t, testPlacedAt, o.PlacedAt())
		assert.Equal(t, testPlacedAt, o.UpdatedAt())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewOrder(zeroID, kernel.NewUUID(), kernel.NewUUID(), 100, testPlacedAt)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -1, testPlacedAt)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 100, time.Time{})
		require.Error(t, err)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores status, deliverer and version", func(t *testing.T) {
		delivererID := kernel.NewUUID()
		updatedAt := testPlacedAt.Add(2 * time.Hour)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &delivererID, kernel.NewUUID(),
			order.StatusShipped, 999, testPlacedAt, updatedAt, 7,
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status())
		require.NotNil(t, o.Deliverer())
		assert.True(t, delivererID.IsEqual(*o.Deliverer()))
		assert.Equal(t, updatedAt, o.UpdatedAt())
		assert.EqualValues(t, 7, o.Version())
	})

	t.Run("rejects a status outside the known set", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(),
			order.Status("lost"), 999, testPlacedAt, testPlacedAt, 1,
		)
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	now := testPlacedAt.Add(time.Hour)

	t.Run("valid transition updates status and timestamp", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusShipped, actor.RoleManager, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("missing edge leaves the order untouched", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusRefunded, actor.RoleAdmin, now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, testPlacedAt, o.UpdatedAt())
	})

	t.Run("unauthorized role leaves the order untouched", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusShipped, actor.RoleCustomer, now)

		require.ErrorIs(t, err, order.ErrTransitionForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("target equal to current is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.ChangeStatus(order.StatusPending, actor.RoleAdmin, now)
		require.Error(t, err)
	})
}

func TestOrder_AssignDeliverer(t *testing.T) {
	o := restoreTestOrder(t, order.StatusUnderReview)
	delivererID := kernel.NewUUID()

	require.NoError(t, o.AssignDeliverer(delivererID))
	require.NotNil(t, o.Deliverer())
	assert.True(t, delivererID.IsEqual(*o.Deliverer()))

	var zeroID kernel.UUID
	require.Error(t, o.AssignDeliverer(zeroID))
}

func TestOrder_ChangeDeliveryAddress(t *testing.T) {
	o := newTestOrder(t)
	addressID := kernel.NewUUID()

	require.NoError(t, o.ChangeDeliveryAddress(addressID))
	assert.True(t, addressID.IsEqual(o.DeliveryAddressID()))
}

func TestNewHistory(t *testing.T) {
	t.Run("creates a valid entry", func(t *testing.T) {
		performedBy := kernel.NewUUID()
		h, err := order.NewHistory(
			kernel.NewUUID(), kernel.NewUUID(), order.StatusShipped,
			&performedBy, "Status transitioned to Shipped", testPlacedAt,
		)

		require.NoError(t, err)
		require.NoError(t, h.Validate())
		assert.Equal(t, order.StatusShipped, h.Status())
		assert.Equal(t, "Status transitioned to Shipped", h.Action())
		require.NotNil(t, h.PerformedBy())
	})

	t.Run("performed-by may be nil", func(t *testing.T) {
		h, err := order.NewHistory(
			kernel.NewUUID(), kernel.NewUUID(), order.StatusUnderReview,
			nil, "Customer requested refund. Status transitioned to Under Review.", testPlacedAt,
		)

		require.NoError(t, err)
		assert.Nil(t, h.PerformedBy())
	})

	t.Run("rejects zero timestamp and unknown status", func(t *testing.T) {
		_, err := order.NewHistory(kernel.NewUUID(), kernel.NewUUID(), order.StatusShipped, nil, "x", time.Time{})
		require.Error(t, err)

		_, err = order.NewHistory(kernel.NewUUID(), kernel.NewUUID(), order.Status("lost"), nil, "x", testPlacedAt)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var h order.History
		require.ErrorIs(t, h.Validate(), order.ErrHistoryIsNotConstructed)
	})
}
