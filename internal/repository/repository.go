package repository

import (
	"context"

	"github.com/wilideparisdenode/bloggerBackend/internal/database"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
)

// ArticleFilter holds the optional listing dimensions. Zero values mean
// "don't filter". Dimensions combine with AND; Search is an OR across
// title and content.
type ArticleFilter struct {
	Category string
	Tags     []string // any-of
	Status   string
	AuthorID string
	Search   string // case-insensitive substring over title/content
}

// Sort keys accepted by Find
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortViews  = "popular"
	SortLikes  = "liked"
	SortTitle  = "title"
)

// ValidSorts defines the accepted sort keys
var ValidSorts = map[string]bool{
	SortNewest: true,
	SortOldest: true,
	SortViews:  true,
	SortLikes:  true,
	SortTitle:  true,
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Find(ctx context.Context, filter *ArticleFilter, sort string, offset, limit int) ([]*models.Article, error)
	Count(ctx context.Context, filter *ArticleFilter) (int, error)
	Update(ctx context.Context, article *models.Article) error
	IncrementViews(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
	}
}
