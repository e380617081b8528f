// Package opportunities implements the scholarship, internship and
// volunteering catalog and its admin CRUD.
package opportunities

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/services/uploads"
	"Backend-UniClub/src/utils"

	"go.uber.org/zap"
)

const cachePrefixList = "opportunities:list:"

type Deps struct {
	Opportunities repositories.OpportunityRepository
	Uploader      uploads.Uploader
	Cache         *utils.Cache
	Folder        string
	Timeout       time.Duration
	Logger        *zap.Logger
}

type Service struct {
	Deps
}

func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{Deps: d}
}

func (s *Service) List(ctx context.Context, oppType string) ([]models.Opportunity, error) {
	key := cachePrefixList + utils.HashParams(oppType)
	var cached []models.Opportunity
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	list, err := s.Opportunities.List(ctx, oppType)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	s.Cache.Set(ctx, key, list)
	return list, nil
}

func (s *Service) Get(ctx context.Context, idHex string) (*models.Opportunity, error) {
	id, err := services.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Opportunities.Get(ctx, id)
}

func fill(o *models.Opportunity, form *models.OpportunityForm) {
	o.Type = form.Type
	o.Title = models.Localized{En: strings.TrimSpace(form.TitleEn), Mn: strings.TrimSpace(form.TitleMn)}
	o.Provider = models.Localized{En: form.ProviderEn, Mn: form.ProviderMn}
	o.Location = models.Localized{En: form.LocationEn, Mn: form.LocationMn}
	o.Description = models.Localized{En: form.DescriptionEn, Mn: form.DescriptionMn}
	o.Deadline = strings.TrimSpace(form.Deadline)
	o.Link = strings.TrimSpace(form.Link)
	o.Tags = utils.SplitComma(form.Tags)
	o.Requirements = models.LocalizedList{
		En: utils.SplitLines(form.RequirementsEn),
		Mn: utils.SplitLines(form.RequirementsMn),
	}
}

func (s *Service) upload(ctx context.Context, image *multipart.FileHeader) (string, error) {
	url, err := uploads.UploadFile(ctx, s.Uploader, path.Join(s.Folder, "opportunities"), image)
	if err != nil {
		return "", fmt.Errorf("upload opportunity image: %w", err)
	}
	return url, nil
}

func (s *Service) Create(ctx context.Context, form *models.OpportunityForm, image *multipart.FileHeader) (*models.Opportunity, error) {
	if image == nil {
		return nil, services.ErrImageRequired
	}
	o := &models.Opportunity{}
	fill(o, form)

	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	o.Image = url

	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Opportunities.Create(dbCtx, o); err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	return o, nil
}

func (s *Service) Update(ctx context.Context, form *models.OpportunityForm, image *multipart.FileHeader) (*models.Opportunity, error) {
	id, err := services.ParseID(form.ID)
	if err != nil {
		return nil, err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	existing, err := s.Opportunities.Get(dbCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}
	fill(existing, form)
	if image != nil {
		if existing.Image, err = s.upload(ctx, image); err != nil {
			return nil, err
		}
	}

	dbCtx, cancel = services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	updated, err := s.Opportunities.Update(dbCtx, existing)
	if err != nil {
		return nil, err
	}
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := services.ParseID(idHex)
	if err != nil {
		return err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Opportunities.Delete(dbCtx, id); err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	return nil
}
