package notifier

import (
	"strings"
	"testing"

	"pricewatch/internal/models"
	"pricewatch/internal/store"
)

func testObservation() *models.PriceObservation {
	return &models.PriceObservation{
		ProductName:      "Crib X",
		NewPrice:         100000,
		InstallmentPrice: 95000,
		OldPrice:         120000,
		Timestamp:        "2024-05-10 14:30:00",
	}
}

func TestBuildMessage(t *testing.T) {
	t.Run("first_record", func(t *testing.T) {
		msg := BuildMessage(testObservation(), nil)

		if !strings.Contains(msg, "first recorded price") {
			t.Errorf("expected first-record variant, got:\n%s", msg)
		}
		if !strings.Contains(msg, "*Crib X*") {
			t.Errorf("expected emphasized product name, got:\n%s", msg)
		}
		if !strings.Contains(msg, "Current price: R$ 100000") {
			t.Errorf("expected current price line, got:\n%s", msg)
		}
		if !strings.Contains(msg, "Installment price: R$ 95000") {
			t.Errorf("expected installment price line, got:\n%s", msg)
		}
	})

	t.Run("new_high", func(t *testing.T) {
		max := &store.MaxResult{Price: 90000, Timestamp: "2024-01-01 10:00:00"}
		msg := BuildMessage(testObservation(), max)

		if !strings.Contains(msg, "New highest price recorded!") {
			t.Errorf("expected new-high variant, got:\n%s", msg)
		}
	})

	t.Run("below_previous_max", func(t *testing.T) {
		max := &store.MaxResult{Price: 150000, Timestamp: "2024-01-01 10:00:00"}
		msg := BuildMessage(testObservation(), max)

		if !strings.Contains(msg, "Highest recorded price: R$ 150000 at 2024-01-01 10:00:00") {
			t.Errorf("expected previous-max variant with timestamp, got:\n%s", msg)
		}
	})

	t.Run("equal_to_max_is_not_new_high", func(t *testing.T) {
		max := &store.MaxResult{Price: 100000, Timestamp: "2024-01-01 10:00:00"}
		msg := BuildMessage(testObservation(), max)

		if strings.Contains(msg, "New highest price") {
			t.Errorf("price equal to max must not be a new high, got:\n%s", msg)
		}
	})
}
