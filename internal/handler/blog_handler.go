package handler

import (
	"errors"
	"net/http"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/middleware"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// wellnessCategories feed the "well" home sections
var wellnessCategories = []string{"Health", "Life", "Food", "Mind"}

// BlogHandler handles published-blog requests
type BlogHandler struct {
	blogRepo repository.BlogRepository
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repository.BlogRepository) *BlogHandler {
	return &BlogHandler{blogRepo: blogRepo}
}

// Home handles GET /home — the newest blog for the hero card
func (h *BlogHandler) Home(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatest(1, 0)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// WellHome handles GET /well/home — newest blog across the wellness categories
func (h *BlogHandler) WellHome(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatestInCategories(wellnessCategories, 1)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// SectionBlogs handles GET /section/blogs — the full blog grid (0-based pages)
func (h *BlogHandler) SectionBlogs(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 0)
	size := ginutil.QueryInt(c, "size", 45)

	blogs, total, err := h.blogRepo.FindPage(page, size)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogData": blogs, "totalCount": total})
}

// FeaturedBlogs handles GET /featured-blogs — rows 6..16 of the home feed
func (h *BlogHandler) FeaturedBlogs(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatest(11, 5)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// BlogDetails handles GET /blog-details/:id — the selected blog plus related
// and popular blogs from the same category.
func (h *BlogHandler) BlogDetails(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusNotFound, "Blog details data not found")
		return
	}

	selected, err := h.blogRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, common.ErrBlogNotFound) {
			common.Message(c, http.StatusNotFound, "Blog details data not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "server error", err)
		return
	}

	related, err := h.blogRepo.FindRelated(selected.BlogCategory, id, 8)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "server error", err)
		return
	}
	popular, err := h.blogRepo.FindPopularByCategory(selected.BlogCategory, id, 8)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selectedBlogForDetails": selected,
		"relatedBlogs":           related,
		"popularBlogs":           popular,
	})
}

// SectionByCategory handles GET /section/:category — category page with
// case-insensitive match (0-based pages).
func (h *BlogHandler) SectionByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		common.Message(c, http.StatusNotFound, "Category not found")
		return
	}
	page := ginutil.QueryInt(c, "page", 0)
	size := ginutil.QueryInt(c, "size", 45)

	blogs, total, err := h.blogRepo.FindByCategoryPage(category, page, size)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogData": blogs, "totalCount": total})
}

// categorySections groups the newest four blogs under each category
func (h *BlogHandler) categorySections(c *gin.Context, categories []string) {
	sections := map[string][]*domain.Blog{}
	for _, category := range categories {
		blogs, err := h.blogRepo.FindLatestByCategory(category, 4)
		if err != nil {
			common.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
			return
		}
		sections[category] = blogs
	}
	c.JSON(http.StatusOK, sections)
}

// HomeCategorySections handles GET /home-category-sections
func (h *BlogHandler) HomeCategorySections(c *gin.Context) {
	categories, err := h.blogRepo.Categories()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	h.categorySections(c, categories)
}

// WellHomeCategorySections handles GET /well/home-category-sections
func (h *BlogHandler) WellHomeCategorySections(c *gin.Context) {
	h.categorySections(c, wellnessCategories)
}

// LatestBlogs handles GET /latest-blogs — four blogs after the hero card
func (h *BlogHandler) LatestBlogs(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatest(4, 1)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// LatestBlogsInSearch handles GET /latest-blogs-in-search
func (h *BlogHandler) LatestBlogsInSearch(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatest(12, 0)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// Newsletters handles GET /newsletters
func (h *BlogHandler) Newsletters(c *gin.Context) {
	blogs, err := h.blogRepo.FindLatestByCategory("newsletters", 6)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// mostPopular serves the three most-popular feeds, which differ only in size
func (h *BlogHandler) mostPopular(c *gin.Context, limit int) {
	blogs, err := h.blogRepo.FindPopular(limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// MostPopular handles GET /most-popular
func (h *BlogHandler) MostPopular(c *gin.Context) { h.mostPopular(c, 3) }

// MostPopularForDashboard handles GET /most-popular-for-dashboard
func (h *BlogHandler) MostPopularForDashboard(c *gin.Context) { h.mostPopular(c, 4) }

// MostPopularForDetailsPage handles GET /most-popular-for-details-page
func (h *BlogHandler) MostPopularForDetailsPage(c *gin.Context) { h.mostPopular(c, 8) }

// Search handles GET /search?query= — case-insensitive substring match over
// title, category, and subheading.
func (h *BlogHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		common.Message(c, http.StatusBadRequest, "Query parameter is required")
		return
	}

	blogs, err := h.blogRepo.Search(query)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Error fetching search results", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// AllBlogData handles GET /all-blog-Data — the unpaginated dashboard list
func (h *BlogHandler) AllBlogData(c *gin.Context) {
	blogs, err := h.blogRepo.FindAll()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// MyPostedBlogs handles GET /my-posted-blogs?email&page&limit
func (h *BlogHandler) MyPostedBlogs(c *gin.Context) {
	email := c.Query("email")
	page, limit := ginutil.Page(c, 5)

	blogs, total, err := h.blogRepo.FindByEmailPage(email, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs, "totalPages": common.TotalPages(total, limit)})
}

// OthersPostedBlogs handles GET /others-posted-blogs?email&page&limit
func (h *BlogHandler) OthersPostedBlogs(c *gin.Context) {
	email := c.Query("email")
	page, limit := ginutil.Page(c, 5)

	blogs, total, err := h.blogRepo.FindExcludingEmailPage(email, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs, "totalPages": common.TotalPages(total, limit)})
}

// AddBlogAdmin handles POST /add-blogs-admin — direct publication from the
// admin panel, bypassing the moderation queue.
func (h *BlogHandler) AddBlogAdmin(c *gin.Context) {
	var content domain.ContentFields
	if err := c.ShouldBindJSON(&content); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	blog := &domain.Blog{ContentFields: content}
	if err := h.blogRepo.Create(blog); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to add blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": blog.ID})
}

// UpdateBlogAdmin handles PUT /update-blogs-admin/:id — merges the supplied
// fields into the stored blog.
func (h *BlogHandler) UpdateBlogAdmin(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid blog id")
		return
	}

	var content domain.ContentFields
	if err := c.ShouldBindJSON(&content); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.blogRepo.UpdateFields(id, &content); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Error updating blogs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

// DeleteBlog handles DELETE /delete-blog/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid blog id")
		return
	}

	if err := h.blogRepo.Delete(id); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}

// IncrementViewCount handles PATCH /:id — atomic view-count bump, creating
// the counter at 1 when the row is missing.
func (h *BlogHandler) IncrementViewCount(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusNotFound, "Blog not found")
		return
	}

	count, err := h.blogRepo.IncrementViewCount(id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Something went wrong", err)
		return
	}
	middleware.CountBlogView()
	c.JSON(http.StatusOK, gin.H{
		"message":        "View count updated",
		"blog_viewCount": count,
	})
}
