package models

import (
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// ValidCategories defines the fixed category enumeration
var ValidCategories = map[string]bool{
	"Programming": true,
	"Technology":  true,
	"Design":      true,
	"Business":    true,
	"Lifestyle":   true,
	"Other":       true,
}

// Tag length bounds after normalization
const (
	MinTagLength = 2
	MaxTagLength = 30
)

// MaxCommentLength is the maximum allowed characters in a comment
const MaxCommentLength = 1000

// Image holds the hosted image metadata for an article
type Image struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	AssetID string `json:"-"`
}

// Article represents an article with its embedded likes and comments
type Article struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	Excerpt     string     `json:"excerpt,omitempty" db:"excerpt"`
	Category    string     `json:"category" db:"category"`
	Tags        []string   `json:"tags" db:"-"`    // Stored as JSONB in DB
	AuthorID    string     `json:"authorId" db:"author_id"`
	Status      string     `json:"status" db:"status"`
	Views       int        `json:"views" db:"views"`
	Likes       int        `json:"likes" db:"likes"`
	LikedBy     []string   `json:"likedBy" db:"-"` // Stored as JSONB in DB
	Comments    []Comment  `json:"comments" db:"-"`
	Image       Image      `json:"image"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// LikedByUser reports whether the given user is in the likedBy set
func (a *Article) LikedByUser(userID string) bool {
	for _, id := range a.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateArticleRequest is the payload for article creation.
// The image arrives separately as a multipart file.
type CreateArticleRequest struct {
	Title    string   `form:"title"`
	Content  string   `form:"content"`
	Excerpt  string   `form:"excerpt"`
	Category string   `form:"category"`
	Tags     []string `form:"tags"`
	Status   string   `form:"status"`
}

// UpdateArticleRequest carries a partial article update.
// Nil fields are left untouched.
type UpdateArticleRequest struct {
	Title    *string   `form:"title"`
	Content  *string   `form:"content"`
	Excerpt  *string   `form:"excerpt"`
	Category *string   `form:"category"`
	Tags     *[]string `form:"tags"`
	Status   *string   `form:"status"`
}

// Empty reports whether the update contains no field changes
func (r *UpdateArticleRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Excerpt == nil &&
		r.Category == nil && r.Tags == nil && r.Status == nil
}

// LikeResponse is returned by the like toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ArticleList is the paginated listing envelope
type ArticleList struct {
	CurrentPage     int        `json:"currentPage"`
	TotalPages      int        `json:"totalPages"`
	TotalArticles   int        `json:"totalArticles"`
	ArticlesPerPage int        `json:"articlesPerPage"`
	Articles        []*Article `json:"articles"`
}

// ArticleView is an article with its author projection joined in
type ArticleView struct {
	*Article
	Author   *PublicProfile `json:"author,omitempty"`
	Comments []CommentView  `json:"comments"`
}
