package news

import (
	"context"
	"testing"
	"time"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newService(repo *testutil.NewsRepo) *Service {
	return NewService(Deps{
		News:     repo,
		Uploader: &testutil.Uploader{},
		Folder:   "uniclub",
		Now:      func() time.Time { return fixedNow },
	})
}

func TestCreateNews(t *testing.T) {
	repo := testutil.NewNewsRepo()
	svc := newService(repo)
	ctx := context.Background()

	form := &models.NewsForm{TitleMn: "Мэдээ", Tags: "volunteer, environment,", Author: " Admin "}

	_, err := svc.Create(ctx, form, nil)
	assert.ErrorIs(t, err, services.ErrImageRequired)
	assert.Empty(t, repo.News)

	n, err := svc.Create(ctx, form, testutil.FileHeader(t, "cover.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"volunteer", "environment"}, n.Tags)
	assert.Equal(t, fixedNow, n.PublishedDate)
	assert.Equal(t, "Admin", n.Author)
	assert.Equal(t, "Мэдээ", n.Title.Get(models.LangEN))
}

func TestUpdateNews(t *testing.T) {
	published := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	existing := models.News{ID: primitive.NewObjectID(), PublishedDate: published, Image: "old.jpg"}
	repo := testutil.NewNewsRepo(existing)
	svc := newService(repo)

	n, err := svc.Update(context.Background(), &models.NewsForm{ID: existing.ID.Hex(), TitleEn: "Edited"}, nil)
	require.NoError(t, err)
	assert.Equal(t, published, n.PublishedDate)
	assert.Equal(t, "old.jpg", n.Image)
	assert.Equal(t, "Edited", n.Title.En)

	_, err = svc.Update(context.Background(), &models.NewsForm{ID: primitive.NewObjectID().Hex(), TitleEn: "x"}, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListNewsByTag(t *testing.T) {
	repo := testutil.NewNewsRepo(
		models.News{Tags: []string{"a"}, PublishedDate: fixedNow.Add(-time.Hour)},
		models.News{Tags: []string{"a", "b"}, PublishedDate: fixedNow},
		models.News{Tags: []string{"b"}},
	)
	svc := newService(repo)

	list, err := svc.List(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fixedNow, list[0].PublishedDate)
}
