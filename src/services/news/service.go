// Package news implements the news catalog and its admin CRUD.
package news

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

const cachePrefixList = "news:list:"

type Deps struct {
	News     repositories.NewsRepository
	Uploader uploads.Uploader
	Cache    *utils.Cache
	Folder   string
	Location *time.Location
	Timeout  time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

type Service struct {
	Deps
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	return &Service{Deps: d}
}

func (s *Service) List(ctx context.Context, tag string) ([]models.News, error) {
	key := cachePrefixList + utils.HashParams(tag)
	var cached []models.News
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	list, err := s.News.List(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	s.Cache.Set(ctx, key, list)
	return list, nil
}

func (s *Service) Get(ctx context.Context, idHex string) (*models.News, error) {
	id, err := services.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.News.Get(ctx, id)
}

// fill copies the form onto n. A blank publish date means now on create and
// leaves the stored date alone on update.
func (s *Service) fill(n *models.News, form *models.NewsForm) error {
	if strings.TrimSpace(form.PublishedDate) != "" {
		d, err := utils.ParseDateIn(form.PublishedDate, s.Location)
		if err != nil {
			return err
		}
		n.PublishedDate = d
	} else if n.PublishedDate.IsZero() {
		n.PublishedDate = s.Now()
	}

	n.Title = models.Localized{En: strings.TrimSpace(form.TitleEn), Mn: strings.TrimSpace(form.TitleMn)}
	n.Summary = models.Localized{En: form.SummaryEn, Mn: form.SummaryMn}
	n.Content = models.Localized{En: form.ContentEn, Mn: form.ContentMn}
	n.Author = strings.TrimSpace(form.Author)
	n.Tags = utils.SplitComma(form.Tags)
	n.Featured = form.Featured
	return nil
}

func (s *Service) upload(ctx context.Context, image *multipart.FileHeader) (string, error) {
	url, err := uploads.UploadFile(ctx, s.Uploader, path.Join(s.Folder, "news"), image)
	if err != nil {
		return "", fmt.Errorf("upload news image: %w", err)
	}
	return url, nil
}

func (s *Service) Create(ctx context.Context, form *models.NewsForm, image *multipart.FileHeader) (*models.News, error) {
	if image == nil {
		return nil, services.ErrImageRequired
	}
	n := &models.News{}
	if err := s.fill(n, form); err != nil {
		return nil, err
	}
	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	n.Image = url

	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.News.Create(dbCtx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	return n, nil
}

func (s *Service) Update(ctx context.Context, form *models.NewsForm, image *multipart.FileHeader) (*models.News, error) {
	id, err := services.ParseID(form.ID)
	if err != nil {
		return nil, err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	existing, err := s.News.Get(dbCtx, id)
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
	updated, err := s.News.Update(dbCtx, existing)
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
	if err := s.News.Delete(dbCtx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	return nil
}
