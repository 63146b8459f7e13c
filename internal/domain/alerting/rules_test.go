package alerting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/domain/alerting"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

func TestEvaluateStock_DecisionTable(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		minStock int64
		wantType entity.AlertType
		wantSev  entity.Severity
		wantOK   bool
	}{
		{"zero quantity is out of stock", 0, 5, entity.AlertOutOfStock, entity.SeverityCritical, true},
		{"at threshold is low stock", 5, 5, entity.AlertLowStock, entity.SeverityWarning, true},
		{"below threshold is low stock", 2, 5, entity.AlertLowStock, entity.SeverityWarning, true},
		{"above threshold clears", 6, 5, "", "", false},
		{"zero threshold still flags empty stock", 0, 0, entity.AlertOutOfStock, entity.SeverityCritical, true},
		{"one unit with zero threshold is fine", 1, 0, "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cond, ok := alerting.EvaluateStock(tc.quantity, tc.minStock)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantType, cond.Type)
				assert.Equal(t, tc.wantSev, cond.Severity)
			}
		})
	}
}

func TestEvaluateQuoteExpiry_SeverityBoundaries(t *testing.T) {
	now := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)

	t.Run("exactly one day left is critical", func(t *testing.T) {
		cond, ok := alerting.EvaluateQuoteExpiry(now.Add(24*time.Hour), now)
		require.True(t, ok)
		assert.Equal(t, entity.SeverityCritical, cond.Severity)
		assert.Equal(t, 1, cond.DaysLeft)
		assert.False(t, cond.Overdue)
	})

	t.Run("exactly two days left is warning", func(t *testing.T) {
		cond, ok := alerting.EvaluateQuoteExpiry(now.Add(48*time.Hour), now)
		require.True(t, ok)
		assert.Equal(t, entity.SeverityWarning, cond.Severity)
		assert.Equal(t, 2, cond.DaysLeft)
	})

	t.Run("ten days left yields no condition", func(t *testing.T) {
		_, ok := alerting.EvaluateQuoteExpiry(now.Add(10*24*time.Hour), now)
		assert.False(t, ok)
	})

	t.Run("window edge at seven days is warning", func(t *testing.T) {
		cond, ok := alerting.EvaluateQuoteExpiry(now.Add(alerting.ExpiryWarningWindow), now)
		require.True(t, ok)
		assert.Equal(t, entity.SeverityWarning, cond.Severity)
		assert.Equal(t, 7, cond.DaysLeft)
	})
}

// Partial days round up: 6.1 days remaining must report 7.
func TestEvaluateQuoteExpiry_PartialDaysRoundUp(t *testing.T) {
	now := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)
	remaining := time.Duration(6.1 * 24 * float64(time.Hour))

	cond, ok := alerting.EvaluateQuoteExpiry(now.Add(remaining), now)
	require.True(t, ok)
	assert.Equal(t, 7, cond.DaysLeft)
	assert.Equal(t, entity.SeverityWarning, cond.Severity)
}

func TestEvaluateQuoteExpiry_PastDueIsAlwaysCritical(t *testing.T) {
	now := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)

	t.Run("one hour overdue", func(t *testing.T) {
		cond, ok := alerting.EvaluateQuoteExpiry(now.Add(-time.Hour), now)
		require.True(t, ok)
		assert.Equal(t, entity.SeverityCritical, cond.Severity)
		assert.True(t, cond.Overdue)
	})

	t.Run("long overdue stays flat critical", func(t *testing.T) {
		cond, ok := alerting.EvaluateQuoteExpiry(now.Add(-90*24*time.Hour), now)
		require.True(t, ok)
		assert.Equal(t, entity.SeverityCritical, cond.Severity)
		assert.True(t, cond.Overdue)
	})
}
