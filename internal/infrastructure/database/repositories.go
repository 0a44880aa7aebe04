package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/robotopup/backend/internal/adapter/repository"
	domainRepo "github.com/robotopup/backend/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Payment  domainRepo.PaymentRepository
	Order    domainRepo.OrderRepository
	Product  domainRepo.ProductRepository
	Category domainRepo.CategoryRepository
	Sms      domainRepo.SmsRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Payment:  repository.NewPaymentRepository(db, logger),
		Order:    repository.NewOrderRepository(db, logger),
		Product:  repository.NewProductRepository(db, logger),
		Category: repository.NewCategoryRepository(db, logger),
		Sms:      repository.NewSmsRepository(db, logger),
	}
}
