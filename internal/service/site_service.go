package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

type siteRepository interface {
	List(ctx context.Context, filter models.SiteFilter) ([]models.Site, int, error)
	FindByID(ctx context.Context, id string) (*models.Site, error)
	Create(ctx context.Context, site *models.Site) error
	Update(ctx context.Context, site *models.Site) error
	Delete(ctx context.Context, id string) error
}

// CreateSiteRequest represents payload for opening a work site.
type CreateSiteRequest struct {
	Name           string            `json:"name" validate:"required,max=200"`
	Address        *string           `json:"address" validate:"omitempty,max=300"`
	Client         *string           `json:"client" validate:"omitempty,max=200"`
	Status         models.SiteStatus `json:"status" validate:"required"`
	ContractAmount decimal.Decimal   `json:"contract_amount"`
	SafetyCharge   decimal.Decimal   `json:"safety_charge"`
	StartDate      *time.Time        `json:"start_date"`
	EndDate        *time.Time        `json:"end_date"`
}

// UpdateSiteRequest represents payload for updating a work site.
type UpdateSiteRequest struct {
	Name           string            `json:"name" validate:"required,max=200"`
	Address        *string           `json:"address" validate:"omitempty,max=300"`
	Client         *string           `json:"client" validate:"omitempty,max=200"`
	Status         models.SiteStatus `json:"status" validate:"required"`
	ContractAmount decimal.Decimal   `json:"contract_amount"`
	SafetyCharge   decimal.Decimal   `json:"safety_charge"`
	StartDate      *time.Time        `json:"start_date"`
	EndDate        *time.Time        `json:"end_date"`
}

// SiteDetail pairs a site with its derived works amount.
type SiteDetail struct {
	models.Site
	WorksAmount decimal.Decimal `json:"works_amount"`
}

// SiteService orchestrates work-site operations.
type SiteService struct {
	repo      siteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSiteService constructs a SiteService.
func NewSiteService(repo siteRepository, validate *validator.Validate, logger *zap.Logger) *SiteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiteService{repo: repo, validator: validate, logger: logger}
}

// List returns sites with derived works amounts plus pagination data.
func (s *SiteService) List(ctx context.Context, filter models.SiteFilter) ([]SiteDetail, *models.Pagination, error) {
	sites, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sites")
	}
	details := make([]SiteDetail, 0, len(sites))
	for _, site := range sites {
		details = append(details, SiteDetail{Site: site, WorksAmount: site.WorksAmount()})
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return details, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a site by id with its derived works amount.
func (s *SiteService) Get(ctx context.Context, id string) (*SiteDetail, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "site not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load site")
	}
	return &SiteDetail{Site: *site, WorksAmount: site.WorksAmount()}, nil
}

// Create opens a new work site.
func (s *SiteService) Create(ctx context.Context, req CreateSiteRequest) (*SiteDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid site payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported site status")
	}

	site := &models.Site{
		Name:           strings.TrimSpace(req.Name),
		Address:        req.Address,
		Client:         req.Client,
		Status:         req.Status,
		ContractAmount: req.ContractAmount,
		SafetyCharge:   req.SafetyCharge,
		StartDate:      normalizeOptionalDate(req.StartDate),
		EndDate:        normalizeOptionalDate(req.EndDate),
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create site")
	}
	return &SiteDetail{Site: *site, WorksAmount: site.WorksAmount()}, nil
}

// Update modifies an existing work site.
func (s *SiteService) Update(ctx context.Context, id string, req UpdateSiteRequest) (*SiteDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid site payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported site status")
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	site := detail.Site

	site.Name = strings.TrimSpace(req.Name)
	site.Address = req.Address
	site.Client = req.Client
	site.Status = req.Status
	site.ContractAmount = req.ContractAmount
	site.SafetyCharge = req.SafetyCharge
	site.StartDate = normalizeOptionalDate(req.StartDate)
	site.EndDate = normalizeOptionalDate(req.EndDate)

	if err := s.repo.Update(ctx, &site); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update site")
	}
	return &SiteDetail{Site: site, WorksAmount: site.WorksAmount()}, nil
}

// Delete removes a work site.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete site")
	}
	return nil
}
