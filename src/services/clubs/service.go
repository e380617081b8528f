// Package clubs implements the university chapter directory and its admin CRUD.
package clubs

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/services/uploads"
	"Backend-UniClub/src/utils"

	"go.uber.org/zap"
)

const cacheKeyList = "clubs:list"

type Deps struct {
	Clubs    repositories.ClubRepository
	Uploader uploads.Uploader
	Cache    *utils.Cache
	Site     config.Site
	Folder   string
	Timeout  time.Duration
	Logger   *zap.Logger
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

func (s *Service) List(ctx context.Context) ([]models.Club, error) {
	var cached []models.Club
	if s.Cache.Get(ctx, cacheKeyList, &cached) {
		return cached, nil
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	list, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	s.Cache.Set(ctx, cacheKeyList, list)
	return list, nil
}

// fill copies the form onto c. The club id must be one of the configured
// university codes.
func (s *Service) fill(c *models.Club, form *models.ClubForm) error {
	clubID := strings.ToUpper(strings.TrimSpace(form.ClubID))
	if !s.Site.IsUniversity(clubID) {
		return services.ErrUnknownUniversity
	}
	c.ClubID = clubID
	c.Name = models.Localized{En: strings.TrimSpace(form.NameEn), Mn: strings.TrimSpace(form.NameMn)}
	c.Description = models.Localized{En: form.DescriptionEn, Mn: form.DescriptionMn}
	c.Website = strings.TrimSpace(form.Website)
	c.Email = strings.TrimSpace(form.Email)
	return nil
}

func (s *Service) upload(ctx context.Context, image *multipart.FileHeader) (string, error) {
	url, err := uploads.UploadFile(ctx, s.Uploader, path.Join(s.Folder, "clubs"), image)
	if err != nil {
		return "", fmt.Errorf("upload club image: %w", err)
	}
	return url, nil
}

func (s *Service) Create(ctx context.Context, form *models.ClubForm, image *multipart.FileHeader) (*models.Club, error) {
	if image == nil {
		return nil, services.ErrImageRequired
	}
	c := &models.Club{}
	if err := s.fill(c, form); err != nil {
		return nil, err
	}
	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	c.Image = url

	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Clubs.Create(dbCtx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.ErrDuplicate
		}
		return nil, fmt.Errorf("create club: %w", err)
	}
	s.Cache.Del(ctx, cacheKeyList)
	return c, nil
}

func (s *Service) Update(ctx context.Context, form *models.ClubForm, image *multipart.FileHeader) (*models.Club, error) {
	id, err := services.ParseID(form.ID)
	if err != nil {
		return nil, err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	existing, err := s.Clubs.Get(dbCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}
	if err := s.fill(existing, form); err != nil {
		return nil, err
	}
	if image != nil {
		if existing.Image, err = s.upload(ctx, image); err != nil {
			return nil, err
		}
	}

	dbCtx, cancel = services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	updated, err := s.Clubs.Update(dbCtx, existing)
	if err != nil {
		return nil, err
	}
	s.Cache.Del(ctx, cacheKeyList)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := services.ParseID(idHex)
	if err != nil {
		return err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Clubs.Delete(dbCtx, id); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	s.Cache.Del(ctx, cacheKeyList)
	return nil
}
