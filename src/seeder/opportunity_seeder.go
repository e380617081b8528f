package seeder

import (
	"context"
	"fmt"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"

	"go.uber.org/zap"
)

// SeedOpportunities inserts the default opportunity catalog when the
// collection is empty. Existing data is never touched.
func SeedOpportunities(ctx context.Context, repo repositories.OpportunityRepository, logger *zap.Logger) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count opportunities: %w", err)
	}
	if n > 0 {
		logger.Debug("opportunities already present, skipping seed", zap.Int64("count", n))
		return 0, nil
	}

	items := DefaultOpportunities()
	if err := repo.CreateMany(ctx, items); err != nil {
		return 0, fmt.Errorf("seed opportunities: %w", err)
	}
	logger.Info("seeded opportunities", zap.Int("count", len(items)))
	return len(items), nil
}

// DefaultOpportunities is the catalog shipped with a fresh install.
func DefaultOpportunities() []models.Opportunity {
	return []models.Opportunity{
		{
			Type:        models.OpportunityScholarship,
			Title:       models.Localized{En: "Global Leaders Scholarship", Mn: "Дэлхийн манлайлагч тэтгэлэг"},
			Provider:    models.Localized{En: "Youth Leadership Foundation", Mn: "Залуучуудын манлайллын сан"},
			Location:    models.Localized{En: "Ulaanbaatar", Mn: "Улаанбаатар"},
			Description: models.Localized{En: "Full tuition support for students active in community service.", Mn: "Олон нийтийн ажилд идэвхтэй оюутнуудад сургалтын төлбөрийн бүрэн дэмжлэг."},
			Deadline:    "2025-12-31",
			Tags:        []string{"leadership", "tuition"},
			Requirements: models.LocalizedList{
				En: []string{"GPA 3.2 or higher", "Two recommendation letters"},
				Mn: []string{"Голч дүн 3.2-оос дээш", "Хоёр зөвлөмж захидал"},
			},
		},
		{
			Type:        models.OpportunityInternship,
			Title:       models.Localized{En: "Summer Policy Internship", Mn: "Зуны бодлогын дадлага"},
			Provider:    models.Localized{En: "Civic Policy Institute", Mn: "Иргэний бодлогын хүрээлэн"},
			Location:    models.Localized{En: "Ulaanbaatar", Mn: "Улаанбаатар"},
			Description: models.Localized{En: "Eight weeks of research on youth policy.", Mn: "Залуучуудын бодлогын чиглэлээр найман долоо хоногийн судалгаа."},
			Deadline:    "2025-05-15",
			Tags:        []string{"policy", "research"},
			Requirements: models.LocalizedList{
				En: []string{"Third year or above", "Good written English"},
				Mn: []string{"Гуравдугаар курс болон түүнээс дээш", "Англи хэлний бичгийн сайн чадвар"},
			},
		},
		{
			Type:        models.OpportunityVolunteer,
			Title:       models.Localized{En: "Green Steppe Volunteers", Mn: "Ногоон тал сайн дурынхан"},
			Provider:    models.Localized{En: "Green Steppe NGO", Mn: "Ногоон тал ТББ"},
			Location:    models.Localized{En: "Tuv province", Mn: "Төв аймаг"},
			Description: models.Localized{En: "Weekend tree planting and waste clean-up trips.", Mn: "Амралтын өдрүүдэд мод тарих, хог цэвэрлэх аялал."},
			Deadline:    "Rolling",
			Tags:        []string{"environment"},
			Requirements: models.LocalizedList{
				En: []string{"Any university student"},
				Mn: []string{"Их сургуулийн аль ч оюутан"},
			},
		},
	}
}
