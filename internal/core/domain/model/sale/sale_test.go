package sale_test

import (
	"testing"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID string, quantity int, unitPrice float64) sale.Item {
	t.Helper()
	item, err := sale.NewItem(productID, quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func TestNewSale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completed sale has total and no expiration", func(t *testing.T) {
		items := []sale.Item{
			mustItem(t, "prod-s1", 2, 100),
			mustItem(t, "prod-s2", 1, 50.5),
		}

		s, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(), items,
			sale.DeliveryMethodPickup, sale.StatusCompleted, nil, now,
		)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.InDelta(t, 250.5, s.Total(), 0.0001)
		assert.Nil(t, s.ExpiresAt())
		assert.Nil(t, s.DispatchID())
		assert.Equal(t, now, s.CreatedAt())
		assert.Len(t, s.Items(), 2)
	})

	t.Run("pending sale expires fifteen minutes after creation", func(t *testing.T) {
		s, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(),
			[]sale.Item{mustItem(t, "prod-s1", 2, 100)},
			sale.DeliveryMethodPickup, sale.StatusPending, nil, now,
		)

		require.NoError(t, err)
		require.NotNil(t, s.ExpiresAt())
		assert.Equal(t, now.Add(15*time.Minute), *s.ExpiresAt())
		assert.InDelta(t, 200.0, s.Total(), 0.0001)
	})

	t.Run("carries the supplied delivery date", func(t *testing.T) {
		deliveryDate := now.AddDate(0, 0, 8)

		s, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(),
			[]sale.Item{mustItem(t, "prod-s1", 1, 10)},
			sale.DeliveryMethodDispatch, sale.StatusCompleted, &deliveryDate, now,
		)

		require.NoError(t, err)
		require.NotNil(t, s.DeliveryDate())
		assert.Equal(t, deliveryDate, *s.DeliveryDate())
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			sale.DeliveryMethodPickup, sale.StatusCompleted, nil, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid identifiers and enums", func(t *testing.T) {
		items := []sale.Item{mustItem(t, "prod-s1", 1, 10)}

		_, err := sale.NewSale(
			kernel.UUID{}, kernel.NewUUID(), items,
			sale.DeliveryMethodPickup, sale.StatusCompleted, nil, now,
		)
		require.Error(t, err)

		_, err = sale.NewSale(
			kernel.NewUUID(), kernel.UUID{}, items,
			sale.DeliveryMethodPickup, sale.StatusCompleted, nil, now,
		)
		require.Error(t, err)

		_, err = sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(), items,
			sale.DeliveryMethodUnknown, sale.StatusCompleted, nil, now,
		)
		require.Error(t, err)

		_, err = sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(), items,
			sale.DeliveryMethodPickup, sale.StatusUnknown, nil, now,
		)
		require.Error(t, err)
	})

	t.Run("items are copied, not aliased", func(t *testing.T) {
		items := []sale.Item{mustItem(t, "prod-s1", 1, 10)}

		s, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(), items,
			sale.DeliveryMethodPickup, sale.StatusCompleted, nil, now,
		)
		require.NoError(t, err)

		items[0] = mustItem(t, "prod-other", 9, 999)
		assert.Equal(t, "prod-s1", s.Items()[0].ProductID())
	})
}

func TestSaleComplete(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newPendingSale := func(t *testing.T) *sale.Sale {
		t.Helper()
		s, err := sale.NewSale(
			kernel.NewUUID(), kernel.NewUUID(),
			[]sale.Item{mustItem(t, "prod-s1", 1, 10)},
			sale.DeliveryMethodPickup, sale.StatusPending, nil, now,
		)
		require.NoError(t, err)
		return s
	}

	t.Run("pending sale completes and clears expiration", func(t *testing.T) {
		s := newPendingSale(t)

		err := s.Complete(now.Add(5 * time.Minute))

		require.NoError(t, err)
		assert.Equal(t, sale.StatusCompleted, s.Status())
		assert.Nil(t, s.ExpiresAt())
	})

	t.Run("expired pending sale cannot complete", func(t *testing.T) {
		s := newPendingSale(t)

		err := s.Complete(now.Add(16 * time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		sc := &errs.StateConflictError{}
		require.ErrorAs(t, err, &sc)
		assert.ErrorIs(t, sc.Cause, sale.ErrSaleExpired)
		assert.Equal(t, sale.StatusPending, s.Status())
	})

	t.Run("completed sale cannot complete again", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Complete(now))

		err := s.Complete(now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		sc := &errs.StateConflictError{}
		require.ErrorAs(t, err, &sc)
		assert.ErrorIs(t, sc.Cause, sale.ErrSaleNotPending)
	})
}

func TestSaleIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s, err := sale.NewSale(
		kernel.NewUUID(), kernel.NewUUID(),
		[]sale.Item{mustItem(t, "prod-s1", 1, 10)},
		sale.DeliveryMethodPickup, sale.StatusPending, nil, now,
	)
	require.NoError(t, err)

	assert.False(t, s.IsExpired(now))
	assert.False(t, s.IsExpired(now.Add(15*time.Minute)))
	assert.True(t, s.IsExpired(now.Add(15*time.Minute+time.Second)))

	require.NoError(t, s.Complete(now))
	assert.False(t, s.IsExpired(now.Add(time.Hour)))
}

func TestSaleAttachDispatchID(t *testing.T) {
	now := time.Now()

	s, err := sale.NewSale(
		kernel.NewUUID(), kernel.NewUUID(),
		[]sale.Item{mustItem(t, "prod-s1", 1, 10)},
		sale.DeliveryMethodDispatch, sale.StatusCompleted, nil, now,
	)
	require.NoError(t, err)

	require.Error(t, s.AttachDispatchID(""))
	assert.Nil(t, s.DispatchID())

	require.NoError(t, s.AttachDispatchID("1042"))
	require.NotNil(t, s.DispatchID())
	assert.Equal(t, "1042", *s.DispatchID())
}

func TestRestoreSale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []sale.Item{mustItem(t, "prod-s1", 2, 100)}

	t.Run("restores a completed sale with dispatch id", func(t *testing.T) {
		dispatchID := "77"

		s, err := sale.RestoreSale(
			kernel.NewUUID(), kernel.NewUUID(), items, 200,
			sale.DeliveryMethodDispatch, sale.StatusCompleted,
			nil, nil, &dispatchID, now,
		)

		require.NoError(t, err)
		assert.Equal(t, "77", *s.DispatchID())
		assert.InDelta(t, 200.0, s.Total(), 0.0001)
	})

	t.Run("rejects pending sale without expiration", func(t *testing.T) {
		_, err := sale.RestoreSale(
			kernel.NewUUID(), kernel.NewUUID(), items, 200,
			sale.DeliveryMethodPickup, sale.StatusPending,
			nil, nil, nil, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects completed sale with expiration", func(t *testing.T) {
		expiresAt := now.Add(15 * time.Minute)

		_, err := sale.RestoreSale(
			kernel.NewUUID(), kernel.NewUUID(), items, 200,
			sale.DeliveryMethodPickup, sale.StatusCompleted,
			&expiresAt, nil, nil, now,
		)

		require.Error(t, err)
	})
}

func TestSaleValidate_ZeroValue(t *testing.T) {
	var s sale.Sale

	err := s.Validate()

	require.Error(t, err)
	assert.Equal(t, sale.ErrSaleIsNotConstructed, err)
}
