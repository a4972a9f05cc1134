package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/dto"
	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

type certificationAlertProvider interface {
	Expiring(ctx context.Context, today time.Time) ([]CertificationDetail, error)
}

type workerLister interface {
	ListAll(ctx context.Context) ([]models.Worker, error)
}

type unilavEventLister interface {
	ListAll(ctx context.Context) ([]models.UnilavEvent, error)
}

type siteLister interface {
	ListAll(ctx context.Context) ([]models.Site, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL           time.Duration
	MaxItemsPerSection int
}

// DashboardService composes the expiry dashboard from certification,
// contract and site deadlines.
type DashboardService struct {
	certifications certificationAlertProvider
	workers        workerLister
	events         unilavEventLister
	sites          siteLister
	cache          *CacheService
	logger         *zap.Logger
	cfg            DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Certifications certificationAlertProvider
	Workers        workerLister
	Events         unilavEventLister
	Sites          siteLister
	Cache          *CacheService
	Logger         *zap.Logger
	Config         DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.MaxItemsPerSection <= 0 {
		cfg.MaxItemsPerSection = 50
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		certifications: params.Certifications,
		workers:        params.Workers,
		events:         params.Events,
		sites:          params.Sites,
		cache:          params.Cache,
		logger:         logger,
		cfg:            cfg,
	}
}

// Overview returns the expiry dashboard for the reference date and indicates
// cache utilisation.
func (s *DashboardService) Overview(ctx context.Context, date time.Time) (*dto.ExpiryDashboardResponse, bool, error) {
	day := NormalizeDate(date)
	cacheKey := fmt.Sprintf("dash:expiry:%s", day.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.ExpiryDashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx, day)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, day time.Time) (*dto.ExpiryDashboardResponse, error) {
	names, err := s.workerNames(ctx)
	if err != nil {
		return nil, err
	}

	certSection, err := s.certificationSection(ctx, day, names)
	if err != nil {
		return nil, err
	}
	contractSection, err := s.contractSection(ctx, day, names)
	if err != nil {
		return nil, err
	}
	siteSection, err := s.siteSection(ctx, day)
	if err != nil {
		return nil, err
	}

	summary := &dto.ExpiryDashboardResponse{
		ReferenceDate:  day.Format("2006-01-02"),
		Certifications: certSection,
		Contracts:      contractSection,
		Sites:          siteSection,
	}
	summary.Totals = dto.ExpiryTotals{
		Expired:  len(certSection.Expired) + len(contractSection.Expired) + len(siteSection.Expired),
		Upcoming: len(certSection.Upcoming) + len(contractSection.Upcoming) + len(siteSection.Upcoming),
	}
	return summary, nil
}

func (s *DashboardService) workerNames(ctx context.Context) (map[string]string, error) {
	names := map[string]string{}
	if s.workers == nil {
		return names, nil
	}
	workers, err := s.workers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list workers")
	}
	for _, worker := range workers {
		names[worker.ID] = worker.FirstName + " " + worker.LastName
	}
	return names, nil
}

func (s *DashboardService) certificationSection(ctx context.Context, day time.Time, names map[string]string) (dto.ExpirySection, error) {
	section := dto.ExpirySection{}
	if s.certifications == nil {
		return section, nil
	}
	alerts, err := s.certifications.Expiring(ctx, day)
	if err != nil {
		return section, err
	}
	items := make([]dto.ExpiryItem, 0, len(alerts))
	for _, alert := range alerts {
		if alert.ExpiryDate == nil {
			continue
		}
		label := alert.Name
		if name, ok := names[alert.WorkerID]; ok {
			label = name + ": " + alert.Name
		}
		items = append(items, dto.ExpiryItem{
			ID:            alert.ID,
			WorkerID:      alert.WorkerID,
			Label:         label,
			ExpiryDate:    alert.ExpiryDate.Format("2006-01-02"),
			DaysRemaining: alert.Expiry.DaysRemaining,
			Status:        alert.Expiry.Status,
		})
	}
	s.fillSection(&section, items)
	return section, nil
}

func (s *DashboardService) contractSection(ctx context.Context, day time.Time, names map[string]string) (dto.ExpirySection, error) {
	section := dto.ExpirySection{}
	if s.events == nil {
		return section, nil
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return section, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignment events")
	}

	byWorker := map[string][]models.UnilavEvent{}
	for _, ev := range events {
		byWorker[ev.WorkerID] = append(byWorker[ev.WorkerID], ev)
	}

	var items []dto.ExpiryItem
	for workerID, workerEvents := range byWorker {
		candidate := ActiveAssignment(workerID, day, workerEvents)
		if candidate == nil {
			candidate = latestEvent(workerID, workerEvents)
		}
		if candidate == nil {
			continue
		}
		end := candidate.EffectiveEnd()
		if end == nil {
			continue
		}
		classification := ClassifyExpiry(end, day)
		if classification.Status != models.ExpiryExpired && classification.Status != models.ExpiryUpcoming {
			continue
		}
		label := "contract end"
		if name, ok := names[workerID]; ok {
			label = name + ": contract end"
		}
		items = append(items, dto.ExpiryItem{
			ID:            candidate.ID,
			WorkerID:      workerID,
			Label:         label,
			ExpiryDate:    end.Format("2006-01-02"),
			DaysRemaining: classification.DaysRemaining,
			Status:        classification.Status,
		})
	}
	s.fillSection(&section, items)
	return section, nil
}

func (s *DashboardService) siteSection(ctx context.Context, day time.Time) (dto.ExpirySection, error) {
	section := dto.ExpirySection{}
	if s.sites == nil {
		return section, nil
	}
	sites, err := s.sites.ListAll(ctx)
	if err != nil {
		return section, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sites")
	}
	var items []dto.ExpiryItem
	for _, site := range sites {
		if site.EndDate == nil || site.Status == models.SiteStatusCompleted || site.Status == models.SiteStatusCancelled {
			continue
		}
		classification := ClassifyExpiry(site.EndDate, day)
		if classification.Status != models.ExpiryExpired && classification.Status != models.ExpiryUpcoming {
			continue
		}
		items = append(items, dto.ExpiryItem{
			ID:            site.ID,
			Label:         site.Name,
			ExpiryDate:    site.EndDate.Format("2006-01-02"),
			DaysRemaining: classification.DaysRemaining,
			Status:        classification.Status,
		})
	}
	s.fillSection(&section, items)
	return section, nil
}

// fillSection splits items by urgency, most pressing deadlines first.
func (s *DashboardService) fillSection(section *dto.ExpirySection, items []dto.ExpiryItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].DaysRemaining == items[j].DaysRemaining {
			return items[i].Label < items[j].Label
		}
		return items[i].DaysRemaining < items[j].DaysRemaining
	})
	for _, item := range items {
		switch item.Status {
		case models.ExpiryExpired:
			if len(section.Expired) < s.cfg.MaxItemsPerSection {
				section.Expired = append(section.Expired, item)
			}
		case models.ExpiryUpcoming:
			if len(section.Upcoming) < s.cfg.MaxItemsPerSection {
				section.Upcoming = append(section.Upcoming, item)
			}
		}
	}
}
