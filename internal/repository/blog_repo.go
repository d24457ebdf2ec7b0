package repository

import (
	"errors"
	"strings"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogRepository is the data access layer for published blogs
type BlogRepository interface {
	WithTx(tx *gorm.DB) BlogRepository
	FindByID(id uint64) (*domain.Blog, error)
	FindLatest(limit, offset int) ([]*domain.Blog, error)
	FindLatestInCategories(categories []string, limit int) ([]*domain.Blog, error)
	FindPage(page, size int) ([]*domain.Blog, int64, error)
	FindByCategoryPage(category string, page, size int) ([]*domain.Blog, int64, error)
	FindLatestByCategory(category string, limit int) ([]*domain.Blog, error)
	FindPopular(limit int) ([]*domain.Blog, error)
	FindRelated(category string, excludeID uint64, limit int) ([]*domain.Blog, error)
	FindPopularByCategory(category string, excludeID uint64, limit int) ([]*domain.Blog, error)
	Search(query string) ([]*domain.Blog, error)
	FindByEmailPage(email string, page, limit int) ([]*domain.Blog, int64, error)
	FindExcludingEmailPage(email string, page, limit int) ([]*domain.Blog, int64, error)
	FindAll() ([]*domain.Blog, error)
	Categories() ([]string, error)
	Create(blog *domain.Blog) error
	UpdateFields(id uint64, fields *domain.ContentFields) error
	Delete(id uint64) error
	IncrementViewCount(id uint64) (uint, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) WithTx(tx *gorm.DB) BlogRepository {
	return &blogRepository{db: tx}
}

func (r *blogRepository) FindByID(id uint64) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindLatest(limit, offset int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindLatestInCategories(categories []string, limit int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.Where("blog_category IN ?", categories).
		Order("created_at DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindPage(page, size int) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	if err := r.db.Model(&domain.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// Legacy blog grid uses 0-based pages
	err := r.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&blogs).Error
	return blogs, total, err
}

// categoryMatch folds both sides to lower case for the exact-match category
// filters. The legacy service reached for an anchored case-insensitive
// regex here; an equality comparison on folded strings does the same job
// without a regex engine in the query path.
func categoryMatch(db *gorm.DB, category string) *gorm.DB {
	return db.Where("LOWER(blog_category) = ?", strings.ToLower(category))
}

func (r *blogRepository) FindByCategoryPage(category string, page, size int) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	query := categoryMatch(r.db.Model(&domain.Blog{}), category)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(page * size).Limit(size).Find(&blogs).Error
	return blogs, total, err
}

func (r *blogRepository) FindLatestByCategory(category string, limit int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := categoryMatch(r.db, category).
		Order("created_at DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindPopular(limit int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.Order("blog_view_count DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindRelated(category string, excludeID uint64, limit int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := categoryMatch(r.db, category).Where("id != ?", excludeID).
		Order("created_at DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindPopularByCategory(category string, excludeID uint64, limit int) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := categoryMatch(r.db, category).Where("id != ?", excludeID).
		Order("blog_view_count DESC").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) Search(query string) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.
		Where("LOWER(blog_title) LIKE ? OR LOWER(blog_category) LIKE ? OR LOWER(blog_subheading) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) FindByEmailPage(email string, page, limit int) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	query := r.db.Model(&domain.Blog{}).Where("user_email = ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error
	return blogs, total, err
}

func (r *blogRepository) FindExcludingEmailPage(email string, page, limit int) ([]*domain.Blog, int64, error) {
	var blogs []*domain.Blog
	var total int64

	query := r.db.Model(&domain.Blog{}).Where("user_email != ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error
	return blogs, total, err
}

func (r *blogRepository) FindAll() ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&domain.Blog{}).Distinct().Pluck("blog_category", &categories).Error
	return categories, err
}

func (r *blogRepository) Create(blog *domain.Blog) error {
	return r.db.Create(blog).Error
}

func (r *blogRepository) UpdateFields(id uint64, fields *domain.ContentFields) error {
	return r.db.Model(&domain.Blog{ID: id}).Updates(fields).Error
}

func (r *blogRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Blog{}, id).Error
}

// IncrementViewCount bumps blog_view_count by one, creating the row with a
// count of 1 when it does not exist yet. The upsert is a single atomic
// statement, so concurrent view events never lose updates.
func (r *blogRepository) IncrementViewCount(id uint64) (uint, error) {
	var count uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		blog := domain.Blog{ID: id, BlogViewCount: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"blog_view_count": gorm.Expr("blog_view_count + 1"),
			}),
		}).Create(&blog).Error
		if err != nil {
			return err
		}

		// The upsert's row lock is held until commit, so this read returns
		// exactly the value this increment produced, not a later one.
		return tx.Model(&domain.Blog{}).Where("id = ?", id).
			Pluck("blog_view_count", &count).Error
	})
	return count, err
}
