package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	UpdateError error
	LookupError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	for _, user := range m.Users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	user, err := m.GetByEmail(ctx, email)
	return user != nil, err
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	for _, id := range ids {
		if user, ok := m.Users[id]; ok {
			users[id] = user
		}
	}
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	delete(m.Users, id)
	return nil
}

// MockArticleRepository is a mock implementation of ArticleRepository. Find
// and Count apply the filter, sort and pagination in memory.
type MockArticleRepository struct {
	Articles    map[string]*models.Article
	UpdateError error
	UpdateCalls int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) Find(ctx context.Context, filter *repository.ArticleFilter, sortKey string, offset, limit int) ([]*models.Article, error) {
	matched := m.matching(filter)

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch sortKey {
		case repository.SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case repository.SortViews:
			return a.Views > b.Views
		case repository.SortLikes:
			return a.Likes > b.Likes
		case repository.SortTitle:
			return a.Title < b.Title
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	if offset >= len(matched) {
		return []*models.Article{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MockArticleRepository) Count(ctx context.Context, filter *repository.ArticleFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	article := m.Articles[id]
	article.Views++
	return article.Views, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) matching(filter *repository.ArticleFilter) []*models.Article {
	var matched []*models.Article
	for _, article := range m.Articles {
		if filter != nil && !matches(article, filter) {
			continue
		}
		matched = append(matched, article)
	}
	return matched
}

func matches(a *models.Article, f *repository.ArticleFilter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.AuthorID != "" && a.AuthorID != f.AuthorID {
		return false
	}
	if len(f.Tags) > 0 && !anyTag(a.Tags, f.Tags) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Content), needle) {
			return false
		}
	}
	return true
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
