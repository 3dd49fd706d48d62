package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/auth"
	"github.com/wilideparisdenode/bloggerBackend/internal/media"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
)

// ImageUpload is a multipart image file handed down from a handler
type ImageUpload struct {
	File     io.Reader
	Filename string
}

// ListQuery holds the untrusted listing input after binding
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Tags     []string
	Status   string
	AuthorID string
	Search   string
	Sort     string
}

// UserService defines the interface for user operations
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.User, req *models.ChangePasswordRequest) error
	Delete(ctx context.Context, actor *models.User, targetID string) error
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	Create(ctx context.Context, author *models.User, req *models.CreateArticleRequest, image *ImageUpload) (*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.ArticleView, error)
	List(ctx context.Context, q *ListQuery) (*models.ArticleList, error)
	Update(ctx context.Context, actor *models.User, id string, req *models.UpdateArticleRequest, image *ImageUpload) (*models.Article, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	ToggleLike(ctx context.Context, actor *models.User, id string) (*models.LikeResponse, error)
	AddComment(ctx context.Context, actor *models.User, id, text string) (*models.CommentView, error)
}

// Services holds all service interfaces
type Services struct {
	User    UserService
	Article ArticleService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, signer auth.TokenSigner, hasher auth.PasswordHasher, host media.Host, log zerolog.Logger) *Services {
	return &Services{
		User:    newUserService(repos.User, signer, hasher, log),
		Article: newArticleService(repos.Article, repos.User, host, log),
	}
}
