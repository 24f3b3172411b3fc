// Package store persists price observations and answers history queries.
// The prices table is append-only: rows are inserted once and never
// updated or deleted.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/logger"
	"pricewatch/internal/models"
)

// MaxResult is the historical maximum for one product: the highest
// new_price ever recorded and the timestamp of that row. Among equal
// maxima the row the query returns first wins; only the magnitude is
// reported downstream.
type MaxResult struct {
	Price     int64  `json:"price"`
	Timestamp string `json:"timestamp"`
}

// ProductSummary describes one tracked product for the read API.
type ProductSummary struct {
	ProductName  string `json:"product_name"`
	LatestPrice  int64  `json:"latest_price"`
	LatestSeenAt string `json:"latest_seen_at"`
	Observations int64  `json:"observations"`
}

// Store is the repository over the prices table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema idempotently creates the prices table if absent. Safe to
// call on every process start.
func (s *Store) EnsureSchema() error {
	if err := s.db.AutoMigrate(&models.PriceObservation{}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Insert appends one observation row. A nil or invalid observation is a
// no-op with a warning; the extractor discards these upstream, so this
// is the last line of defense before the table.
func (s *Store) Insert(obs *models.PriceObservation) error {
	if !obs.Valid() {
		logger.Get().Warnw("skipping insert of invalid observation")
		return nil
	}
	if err := s.db.Create(obs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MaxPrice returns the highest new_price ever recorded for the exact
// productName string and the timestamp of that row. Returns (nil, nil)
// when the product has no history yet.
func (s *Store) MaxPrice(productName string) (*MaxResult, error) {
	var obs models.PriceObservation
	err := s.db.
		Where("product_name = ?", productName).
		Order("new_price DESC").
		First(&obs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &MaxResult{Price: obs.NewPrice, Timestamp: obs.Timestamp}, nil
}

// Products lists every tracked product with its most recent observation.
func (s *Store) Products() ([]ProductSummary, error) {
	var names []string
	if err := s.db.Model(&models.PriceObservation{}).
		Distinct("product_name").
		Order("product_name").
		Pluck("product_name", &names).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summaries := make([]ProductSummary, 0, len(names))
	for _, name := range names {
		var latest models.PriceObservation
		if err := s.db.
			Where("product_name = ?", name).
			Order("id DESC").
			First(&latest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := s.db.Model(&models.PriceObservation{}).
			Where("product_name = ?", name).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		summaries = append(summaries, ProductSummary{
			ProductName:  name,
			LatestPrice:  latest.NewPrice,
			LatestSeenAt: latest.Timestamp,
			Observations: count,
		})
	}
	return summaries, nil
}

// HistoryQuery holds the paging parameters for History, bindable from a
// request query string.
type HistoryQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// HistoryPage is one page of a product's observation rows, newest first.
type HistoryPage struct {
	Data       []models.PriceObservation `json:"data"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalItems int64                     `json:"total_items"`
	TotalPages int                       `json:"total_pages"`
}

// History returns the observation rows for one product, newest first.
// Unset paging parameters default to the first page of 20 rows.
// Returns ErrProductNotFound when the product has no rows.
func (s *Store) History(productName string, q HistoryQuery) (HistoryPage, error) {
	var empty HistoryPage

	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}

	var total int64
	if err := s.db.Model(&models.PriceObservation{}).
		Where("product_name = ?", productName).
		Count(&total).Error; err != nil {
		return empty, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if total == 0 {
		return empty, apperrors.ErrProductNotFound
	}

	rows := []models.PriceObservation{}
	if err := s.db.
		Where("product_name = ?", productName).
		Order("id DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&rows).Error; err != nil {
		return empty, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return HistoryPage{
		Data:       rows,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	}, nil
}
