package testutil

import (
	"testing"

	"gorm.io/gorm"

	"pricewatch/internal/models"
)

// CreateTestObservation inserts one observation row for the given
// product with sensible defaults.
func CreateTestObservation(t *testing.T, db *gorm.DB, productName string, newPrice int64, timestamp string) *models.PriceObservation {
	t.Helper()

	obs := &models.PriceObservation{
		ProductName:      productName,
		NewPrice:         newPrice,
		InstallmentPrice: newPrice,
		Timestamp:        timestamp,
	}
	if err := db.Create(obs).Error; err != nil {
		t.Fatalf("failed to create test observation: %v", err)
	}
	return obs
}
