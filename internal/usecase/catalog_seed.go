package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robotopup/backend/internal/domain/model"
)

// DefaultCatalog returns the storefront's default categories and products,
// used by the seed operation and the cmd/seed utility.
func DefaultCatalog() ([]*model.Category, []*model.Product) {
	now := time.Now()

	categories := []*model.Category{
		{CategoryID: "c1", Name: "Diamond TopUp", Badge: "Free Fire", Description: "Fast delivery", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{CategoryID: "c2", Name: "Weekly & Monthly", Badge: "Pass", Description: "Membership packs", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{CategoryID: "c3", Name: "Special Deals", Badge: "Limited", Description: "Best offers", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}

	products := []*model.Product{
		{ProductID: "p1", CategoryID: "c1", CategoryName: "Diamond TopUp", Name: "50 Diamond", Diamonds: 50, Price: decimal.NewFromInt(45), Tag: "Hot"},
		{ProductID: "p2", CategoryID: "c1", CategoryName: "Diamond TopUp", Name: "240 Diamond", Diamonds: 240, Price: decimal.NewFromInt(185), Bonus: "+10 bonus"},
		{ProductID: "p3", CategoryID: "c1", CategoryName: "Diamond TopUp", Name: "560 Diamond", Diamonds: 560, Price: decimal.NewFromInt(430), Tag: "Best value"},
		{ProductID: "p4", CategoryID: "c1", CategoryName: "Diamond TopUp", Name: "1120 Diamond", Diamonds: 1120, Price: decimal.NewFromInt(780), Bonus: "+60 bonus"},
		{ProductID: "p5", CategoryID: "c2", CategoryName: "Weekly & Monthly", Name: "Weekly Membership", Diamonds: 0, Price: decimal.NewFromInt(160), Tag: "Weekly"},
		{ProductID: "p6", CategoryID: "c2", CategoryName: "Weekly & Monthly", Name: "Monthly Membership", Diamonds: 0, Price: decimal.NewFromInt(750), Tag: "Monthly"},
		{ProductID: "p7", CategoryID: "c3", CategoryName: "Special Deals", Name: "Level Up Pass", Diamonds: 0, Price: decimal.NewFromInt(349), Bonus: "Exclusive"},
	}
	for _, p := range products {
		p.IsActive = true
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	return categories, products
}
