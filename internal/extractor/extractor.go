// Package extractor turns raw product page HTML into price observations.
package extractor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/logger"
	"pricewatch/internal/models"
)

// Structural selectors of the monitored product pages.
const (
	titleSelector    = "h1.ui-pdp-title"
	priceSelector    = "span.andes-money-amount__fraction"
	oldPriceSelector = "span.andes-price__original-value"
)

// minPriceNodes is the required number of money-fraction nodes: the
// displayed price and the installment price. Pages with fewer are
// rejected rather than guessed at — a single stray fraction node on a
// promotional layout must not become an observation.
const minPriceNodes = 2

// Extractor extracts a PriceObservation from raw HTML. It never panics
// past its boundary: every structural or numeric failure is returned as
// an AppError and the observation is discarded.
type Extractor struct {
	// thousandsSep is the punctuation stripped from price text before
	// numeric conversion. The monitored site uses pt-BR formatting.
	thousandsSep string

	// now is the clock used to stamp observations; replaceable in tests.
	now func() time.Time
}

// New creates an Extractor with the pt-BR thousands separator and the
// system clock.
func New() *Extractor {
	return &Extractor{
		thousandsSep: ".",
		now:          time.Now,
	}
}

// Extract parses the content and returns the observation, or an error
// when the observation cannot be formed. The timestamp is stamped at
// extraction time, local wall clock, second precision.
func (e *Extractor) Extract(html string) (*models.PriceObservation, error) {
	if strings.TrimSpace(html) == "" {
		logger.Get().Warnw("empty page content received for extraction")
		return nil, apperrors.ErrEmptyContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPageStructure, err)
	}

	name := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrPageStructure, "product title node not found")
	}

	prices := doc.Find(priceSelector)
	if prices.Length() < minPriceNodes {
		return nil, apperrors.WithMessage(apperrors.ErrPriceNodesMissing,
			fmt.Sprintf("found %d price nodes, need %d", prices.Length(), minPriceNodes))
	}

	newPrice, err := e.parsePrice(prices.Eq(0).Text())
	if err != nil {
		return nil, err
	}
	installmentPrice, err := e.parsePrice(prices.Eq(1).Text())
	if err != nil {
		return nil, err
	}

	var oldPrice int64
	if sel := doc.Find(oldPriceSelector).First(); sel.Length() > 0 {
		oldPrice, err = e.parsePrice(sel.Text())
		if err != nil {
			return nil, err
		}
	}

	return &models.PriceObservation{
		ProductName:      name,
		OldPrice:         oldPrice,
		NewPrice:         newPrice,
		InstallmentPrice: installmentPrice,
		Timestamp:        e.now().Format(models.TimestampLayout),
	}, nil
}

// parsePrice strips thousands-separator punctuation and converts the
// node text to a positive integer.
func (e *Extractor) parsePrice(text string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), e.thousandsSep, "")
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPriceParse, fmt.Errorf("price text %q: %w", text, err))
	}
	if v <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrPriceParse,
			fmt.Sprintf("price must be positive, got %d", v))
	}
	return v, nil
}
