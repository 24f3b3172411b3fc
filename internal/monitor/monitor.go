// Package monitor orchestrates the poll loop: fetch each configured URL,
// extract an observation, compare against the stored maximum, notify,
// persist. One cycle is one full pass over the URL list; failures are
// contained to the URL that produced them.
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/models"
	"pricewatch/internal/notifier"
	"pricewatch/internal/observability"
	"pricewatch/internal/store"
)

// Fetcher retrieves raw page content for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns raw page content into an observation.
type Extractor interface {
	Extract(html string) (*models.PriceObservation, error)
}

// Store is the subset of the price store the loop needs.
type Store interface {
	Insert(obs *models.PriceObservation) error
	MaxPrice(productName string) (*store.MaxResult, error)
}

// CycleResult contains the outcome of one cycle.
type CycleResult struct {
	URLsProcessed        int
	Recorded             int
	FetchFailures        int
	ExtractionFailures   int
	NotificationFailures int
	Duration             time.Duration
}

// Monitor runs the price-tracking loop over a fixed URL list.
type Monitor struct {
	fetcher   Fetcher
	extractor Extractor
	store     Store
	notifier  notifier.Notifier
	urls      []string
	interval  time.Duration
	logger    *zap.SugaredLogger
}

// New creates a Monitor. All collaborators are injected; nothing here is
// ambient process state.
func New(f Fetcher, e Extractor, s Store, n notifier.Notifier, urls []string, interval time.Duration, logger *zap.SugaredLogger) *Monitor {
	return &Monitor{
		fetcher:   f,
		extractor: e,
		store:     s,
		notifier:  n,
		urls:      urls,
		interval:  interval,
		logger:    logger,
	}
}

// Run executes an immediate first cycle and then one cycle per interval
// tick until ctx is cancelled. URLs within a cycle are processed
// strictly sequentially; cycles never overlap.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Infow("monitor started",
		"urls", len(m.urls),
		"interval", m.interval.String(),
	)

	m.runCycleLogged(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Infow("monitor stopping", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			m.runCycleLogged(ctx)
		}
	}
}

func (m *Monitor) runCycleLogged(ctx context.Context) {
	result := m.RunCycle(ctx)
	m.logger.Infow("cycle completed",
		"urls_processed", result.URLsProcessed,
		"recorded", result.Recorded,
		"fetch_failures", result.FetchFailures,
		"extraction_failures", result.ExtractionFailures,
		"notification_failures", result.NotificationFailures,
		"duration", result.Duration.String(),
	)
}

// RunCycle processes every configured URL once. A cancelled context
// stops mid-list; rows already inserted this cycle stay persisted.
func (m *Monitor) RunCycle(ctx context.Context) *CycleResult {
	start := time.Now()
	cycleID := uuid.New().String()
	result := &CycleResult{}

	for _, url := range m.urls {
		select {
		case <-ctx.Done():
			result.Duration = time.Since(start)
			return result
		default:
		}

		m.processURL(ctx, cycleID, url, result)
		result.URLsProcessed++
	}

	result.Duration = time.Since(start)
	observability.CycleDuration.Observe(result.Duration.Seconds())
	return result
}

// processURL runs the fetch → extract → compare → notify → insert
// pipeline for one URL. Every failure is logged and ends this URL's
// iteration only.
func (m *Monitor) processURL(ctx context.Context, cycleID, url string, result *CycleResult) {
	html, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		m.logger.Errorw("fetch failed", "cycle_id", cycleID, "url", url, "error", err)
		observability.FetchFailures.Inc()
		result.FetchFailures++
		return
	}

	obs, err := m.extractor.Extract(html)
	if err != nil {
		// A shortage of price nodes signals selector/layout drift and is
		// logged distinctly from other structural failures.
		if errors.Is(err, apperrors.ErrPriceNodesMissing) {
			m.logger.Errorw("price nodes missing, possible layout drift",
				"cycle_id", cycleID, "url", url, "error", err)
		} else {
			m.logger.Errorw("extraction failed", "cycle_id", cycleID, "url", url, "error", err)
		}
		observability.ExtractionFailures.Inc()
		result.ExtractionFailures++
		return
	}

	max, err := m.store.MaxPrice(obs.ProductName)
	if err != nil {
		m.logger.Errorw("max price query failed",
			"cycle_id", cycleID, "product", obs.ProductName, "error", err)
		return
	}

	// Notification is best-effort and must not block persistence.
	if err := m.notifier.Notify(ctx, obs, max); err != nil {
		m.logger.Errorw("notification failed",
			"cycle_id", cycleID, "product", obs.ProductName, "error", err)
		observability.NotificationFailures.Inc()
		result.NotificationFailures++
	}

	if err := m.store.Insert(obs); err != nil {
		m.logger.Errorw("insert failed",
			"cycle_id", cycleID, "product", obs.ProductName, "error", err)
		return
	}

	observability.ObservationsRecorded.Inc()
	result.Recorded++
	m.logger.Infow("observation recorded",
		"cycle_id", cycleID,
		"product", obs.ProductName,
		"new_price", obs.NewPrice,
		"installment_price", obs.InstallmentPrice,
		"old_price", obs.OldPrice,
	)
}
