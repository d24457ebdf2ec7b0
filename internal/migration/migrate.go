package migration

import (
	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
)

// Run creates or updates the schema for every table the service owns.
// AutoMigrate is additive: it never drops columns or data.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Blog{},
		&domain.Video{},
		&domain.User{},
		&domain.Submission{},
		&domain.ApprovalHistory{},
		&domain.AdminApprovalHistory{},
	)
}
