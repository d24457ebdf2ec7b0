package routes

import (
	"net/http"

	"github.com/instantr/instantr-backend/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all API routes. Paths are registered at the root, matching
// the URLs the existing web client already calls.
func Setup(
	router *gin.Engine,
	blogHandler *handler.BlogHandler,
	videoHandler *handler.VideoHandler,
	userHandler *handler.UserHandler,
	moderationHandler *handler.ModerationHandler,
) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Instantr server is running")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Blog feeds
	router.GET("/home", blogHandler.Home)
	router.GET("/well/home", blogHandler.WellHome)
	router.GET("/section/blogs", blogHandler.SectionBlogs)
	router.GET("/featured-blogs", blogHandler.FeaturedBlogs)
	router.GET("/blog-details/:id", blogHandler.BlogDetails)
	router.GET("/section/:category", blogHandler.SectionByCategory)
	router.GET("/home-category-sections", blogHandler.HomeCategorySections)
	router.GET("/well/home-category-sections", blogHandler.WellHomeCategorySections)
	router.GET("/latest-blogs", blogHandler.LatestBlogs)
	router.GET("/latest-blogs-in-search", blogHandler.LatestBlogsInSearch)
	router.GET("/newsletters", blogHandler.Newsletters)
	router.GET("/most-popular", blogHandler.MostPopular)
	router.GET("/most-popular-for-dashboard", blogHandler.MostPopularForDashboard)
	router.GET("/most-popular-for-details-page", blogHandler.MostPopularForDetailsPage)
	router.GET("/search", blogHandler.Search)
	router.GET("/all-blog-Data", blogHandler.AllBlogData)
	router.GET("/my-posted-blogs", blogHandler.MyPostedBlogs)
	router.GET("/others-posted-blogs", blogHandler.OthersPostedBlogs)

	// Blog writes
	router.POST("/add-blogs-admin", blogHandler.AddBlogAdmin)
	router.PUT("/update-blogs-admin/:id", blogHandler.UpdateBlogAdmin)
	router.DELETE("/delete-blog/:id", blogHandler.DeleteBlog)
	router.PATCH("/:id", blogHandler.IncrementViewCount)

	// Videos
	router.GET("/videos", videoHandler.Videos)
	router.GET("/video-section", videoHandler.VideoSection)
	router.GET("/my-posted-videos", videoHandler.MyPostedVideos)
	router.GET("/others-posted-videos", videoHandler.OthersPostedVideos)
	router.POST("/add-videos", videoHandler.AddVideo)
	router.PUT("/update-videos/:id", videoHandler.UpdateVideo)
	router.DELETE("/delete-video/:id", videoHandler.DeleteVideo)

	// Users
	router.GET("/users", userHandler.Users)
	router.GET("/user-role", userHandler.UserRole)
	router.GET("/userData", userHandler.UserData)
	router.GET("/user-data", userHandler.UserData)
	router.POST("/users", userHandler.CreateUser)
	router.PUT("/update-user", userHandler.UpdateUser)
	router.PUT("/update-users", userHandler.UpdateUser)
	router.PATCH("/add-userData/:id", userHandler.UpdateProfile)
	router.DELETE("/delete-users", userHandler.DeleteUser)

	// Moderation queue and decisions
	router.POST("/add-blogs-others", moderationHandler.Submit)
	router.GET("/approval-req", moderationHandler.Queue)
	router.GET("/approval-req-length", moderationHandler.QueueLength)
	router.POST("/approve-submission/:id", moderationHandler.ApproveSubmission)
	router.POST("/reject-submission/:id", moderationHandler.RejectSubmission)
	router.POST("/approve-blog-post", moderationHandler.ApproveBlogPost)
	router.DELETE("/delete-after-approval/:id", moderationHandler.DeleteAfterApproval)

	// History logs. The client has used two spellings for several of these
	// paths over time; both stay registered.
	router.POST("/add-blogs-others-to-approval-history", moderationHandler.AddUserHistory)
	router.POST("/add-blogs-to-admin-history", moderationHandler.AddAdminHistory)
	router.GET("/get-approval-history-data", moderationHandler.UserHistory)
	router.GET("/approval-history", moderationHandler.UserHistory)
	router.GET("/get-approval-history-data-for-admin", moderationHandler.AdminHistory)
	router.GET("/admin-approval-history", moderationHandler.AdminHistory)
	router.PATCH("/approval-history/:id", moderationHandler.PatchUserHistory)
	router.PATCH("/admin-approval-history/:id", moderationHandler.PatchAdminHistory)
	router.PATCH("/reject-with-feedback/:id", moderationHandler.RejectWithFeedback)
	router.PATCH("/approval-history-reject/:id", moderationHandler.RejectWithFeedback)
	router.PATCH("/admin-reject-history/:id", moderationHandler.AdminRejectHistory)
	router.PATCH("/admin-approval-history-reject/:id", moderationHandler.AdminRejectHistory)
	router.DELETE("/delete-others-history-card/:id", moderationHandler.DeleteUserHistoryCard)
	router.DELETE("/approval-history/:id", moderationHandler.DeleteUserHistoryCard)
	router.DELETE("/delete-admin-history-card/:id", moderationHandler.DeleteAdminHistoryCard)
	router.DELETE("/admin-approval-history/:id", moderationHandler.DeleteAdminHistoryCard)
}
