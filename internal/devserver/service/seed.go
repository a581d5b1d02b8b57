package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
)

var seedSkillLevels = []domain.SkillLevel{
	{Level: "Beginner", Description: "Just starting your climbing journey, you might know a few terms and styles. Climbing the lowest few difficulty grades."},
	{Level: "Intermediate", Description: "You've learned most of the terms, you've climbed a lot! Climbing the middle difficulty grades, maybe hitting the plateau!"},
	{Level: "Advanced", Description: "You climb regularly, you know how to visualise your beta, you know that everyone loves slopers and the moonboard is the G.O.A.T! Climbing the advanced grades!"},
}

var seedStyles = []domain.Style{
	{Name: "Slab", Description: "A style of climb usually on a flat vertical wall, focussing on balance, footwork and precision."},
	{Name: "Dyno", Description: "A style of climb focussing on powerful dynamic movement, often including jumping or running actions."},
	{Name: "Overhang", Description: "A style of climb where the wall is angled towards the climber, focusses on technique and stamina."},
	{Name: "Vertical", Description: "A style of climb at a variety of angles, where the majority of moves take the climber directly upward."},
	{Name: "Crimp", Description: "A style of climb which has holds only wide enough for the climbers fingertips."},
	{Name: "Traverse", Description: "A style of climb at a variety of angles, where the majority of moves are made laterally not upward."},
	{Name: "Coordination", Description: "A style of climb requiring precise timing and synchronised movements, usually involving all four limbs at the same time."},
}

type seedCompany struct {
	company domain.Company
	gyms    []domain.Gym
}

var seedCompanies = []seedCompany{
	{
		company: domain.Company{Name: "Company 1", Website: "https://example.com"},
		gyms: []domain.Gym{
			{Name: "The Gym", City: "Melbourne", StreetAddress: "123 Fake Street"},
			{Name: "The Gym 2", City: "Melbourne", StreetAddress: "456 New Fake Street"},
		},
	},
	{
		company: domain.Company{Name: "Company 2", Website: "https://test.com"},
		gyms: []domain.Gym{
			{Name: "The Other Gym", City: "Sydney", StreetAddress: "789 Fake Street"},
			{Name: "The Other Gym But In Melbourne", City: "Melbourne", StreetAddress: "1011 Fake Street"},
		},
	},
}

// Seed loads the reference catalog into an empty database. It reports
// whether anything was written.
func Seed(ctx context.Context, st store.Store, logger *slog.Logger) (bool, error) {
	empty, err := st.Catalog().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		logger.Debug("catalog already seeded")
		return false, nil
	}

	err = st.WithTx(ctx, func(tx store.Tx) error {
		for _, s := range seedSkillLevels {
			if _, err := tx.Catalog().CreateSkillLevel(ctx, s); err != nil {
				return err
			}
		}
		for _, s := range seedStyles {
			if _, err := tx.Catalog().CreateStyle(ctx, s); err != nil {
				return err
			}
		}
		for _, c := range seedCompanies {
			company, err := tx.Catalog().CreateCompany(ctx, c.company)
			if err != nil {
				return err
			}
			for _, g := range c.gyms {
				g.CompanyID = company.ID
				if _, err := tx.Catalog().CreateGym(ctx, g); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info("seeded catalog",
		slog.Int("skill_levels", len(seedSkillLevels)),
		slog.Int("styles", len(seedStyles)),
		slog.Int("companies", len(seedCompanies)),
	)
	return true, nil
}
