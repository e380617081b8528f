package opportunities

import (
	"context"
	"testing"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateOpportunity(t *testing.T) {
	repo := testutil.NewOpportunityRepo()
	svc := NewService(Deps{Opportunities: repo, Uploader: &testutil.Uploader{}, Folder: "uniclub"})

	form := &models.OpportunityForm{
		Type:           models.OpportunityScholarship,
		TitleEn:        "Erasmus+",
		Tags:           "europe,exchange",
		RequirementsEn: "GPA 3.0\nIELTS 6.0\n",
		RequirementsMn: "",
	}

	_, err := svc.Create(context.Background(), form, nil)
	assert.ErrorIs(t, err, services.ErrImageRequired)

	o, err := svc.Create(context.Background(), form, testutil.FileHeader(t, "erasmus.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"GPA 3.0", "IELTS 6.0"}, o.Requirements.En)
	assert.Empty(t, o.Requirements.Mn)
	assert.Equal(t, []string{"GPA 3.0", "IELTS 6.0"}, o.Requirements.Get(models.LangMN))
	assert.Equal(t, []string{"europe", "exchange"}, o.Tags)
	assert.Len(t, repo.Items, 1)
}

func TestOpportunityTypeFilterAndDelete(t *testing.T) {
	keep := models.Opportunity{ID: primitive.NewObjectID(), Type: models.OpportunityInternship}
	repo := testutil.NewOpportunityRepo(keep, models.Opportunity{Type: models.OpportunityVolunteer})
	svc := NewService(Deps{Opportunities: repo, Uploader: &testutil.Uploader{}})
	ctx := context.Background()

	list, err := svc.List(ctx, models.OpportunityInternship)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, keep.ID.Hex()))
	require.NoError(t, svc.Delete(ctx, keep.ID.Hex()))
	assert.Len(t, repo.Items, 1)
}
