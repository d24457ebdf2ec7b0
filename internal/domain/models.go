package domain

import (
	"time"
)

// JSON field names keep the shapes the web client already consumes
// (blog_title, userEmail, blog_viewCount, ...), so the Go backend is a
// drop-in replacement for the legacy service.

// ContentFields is the article payload shared by published blogs, pending
// submissions, and both history logs.
type ContentFields struct {
	BlogTitle       string `gorm:"column:blog_title;type:varchar(255)" json:"blog_title"`
	BlogSubheading  string `gorm:"column:blog_subheading;type:varchar(500)" json:"blog_subheading,omitempty"`
	BlogCategory    string `gorm:"column:blog_category;type:varchar(100);index" json:"blog_category"`
	BlogDescription string `gorm:"column:blog_description;type:mediumtext" json:"blog_description,omitempty"`
	BlogImage       string `gorm:"column:blog_image;type:varchar(500)" json:"blog_image,omitempty"`
	WriterName      string `gorm:"column:writer_name;type:varchar(100)" json:"writerName,omitempty"`
	WriterImage     string `gorm:"column:writer_image;type:varchar(500)" json:"writerImage,omitempty"`
	UserEmail       string `gorm:"column:user_email;type:varchar(255);index" json:"userEmail"`
	RequestType     string `gorm:"column:request_type;type:varchar(50)" json:"requestType,omitempty"`
}

// Blog is a published content item
type Blog struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentFields `gorm:"embedded"`
	BlogViewCount uint      `gorm:"column:blog_view_count;default:0" json:"blog_viewCount"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string { return "blogs" }

// Video is a published video item
type Video struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VideoTitle     string    `gorm:"column:video_title;type:varchar(255)" json:"video_title"`
	VideoCategory  string    `gorm:"column:video_category;type:varchar(100);index" json:"video_category,omitempty"`
	VideoURL       string    `gorm:"column:video_url;type:varchar(500)" json:"video_url"`
	VideoThumbnail string    `gorm:"column:video_thumbnail;type:varchar(500)" json:"video_thumbnail,omitempty"`
	UserEmail      string    `gorm:"column:user_email;type:varchar(255);index" json:"userEmail"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Video) TableName() string { return "videos" }

// User roles
const (
	RoleViewer = "viewer"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

// User is a role-bearing identity keyed by unique email
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name,omitempty"`
	PhotoURL  string    `gorm:"column:photo_url;type:varchar(500)" json:"photoURL,omitempty"`
	Role      string    `gorm:"column:role;type:varchar(20);default:'viewer'" json:"role"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Submission is a content item waiting for a moderation decision.
// The row is removed once a decision is recorded.
type Submission struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentFields `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (Submission) TableName() string { return "pending_submissions" }

// Moderation decision states recorded in the history logs
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ApprovalHistory is the submitter-facing log of moderation decisions
type ApprovalHistory struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentFields `gorm:"embedded"`
	Status        string     `gorm:"column:status;type:varchar(20)" json:"status,omitempty"`
	Feedback      string     `gorm:"column:feedback;type:text" json:"feedback,omitempty"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (ApprovalHistory) TableName() string { return "approval_histories" }

// AdminApprovalHistory is the reviewer-facing log, keyed additionally by the
// deciding admin's email.
type AdminApprovalHistory struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentFields `gorm:"embedded"`
	ApproverMail  string     `gorm:"column:approver_mail;type:varchar(255);index" json:"approverMail"`
	Status        string     `gorm:"column:status;type:varchar(20)" json:"status,omitempty"`
	Feedback      string     `gorm:"column:feedback;type:text" json:"feedback,omitempty"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (AdminApprovalHistory) TableName() string { return "admin_approval_histories" }
