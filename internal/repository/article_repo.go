package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/wilideparisdenode/bloggerBackend/internal/database"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
)

const articleColumns = `id, title, content, excerpt, category, tags, author_id, status,
		views, likes, liked_by, comments, image_name, image_url, image_asset_id,
		published_at, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON := marshalOrEmptyArray(article.Tags)
	likedByJSON := marshalOrEmptyArray(article.LikedBy)
	commentsJSON, _ := json.Marshal(article.Comments)
	if article.Comments == nil {
		commentsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, title, content, excerpt, category, tags, author_id, status,
			views, likes, liked_by, comments, image_name, image_url, image_asset_id,
			published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, article.Excerpt, article.Category,
		tagsJSON, article.AuthorID, article.Status,
		article.Views, article.Likes, likedByJSON, commentsJSON,
		article.Image.Name, article.Image.URL, article.Image.AssetID,
		article.PublishedAt, article.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = $1", articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Find applies the filter, sort and pagination against the article collection
func (r *articleRepo) Find(ctx context.Context, filter *ArticleFilter, sort string, offset, limit int) ([]*models.Article, error) {
	where, args := buildWhere(filter)

	query := fmt.Sprintf("SELECT %s FROM articles%s ORDER BY %s LIMIT %d OFFSET %d",
		articleColumns, where, orderBy(sort), limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Count returns the number of articles matching the filter
func (r *articleRepo) Count(ctx context.Context, filter *ArticleFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles"+where, args...).Scan(&count)
	return count, err
}

// Update writes the loaded-then-mutated article back. The whole mutable row
// is written; there is no version check before the write.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	tagsJSON := marshalOrEmptyArray(article.Tags)
	likedByJSON := marshalOrEmptyArray(article.LikedBy)
	commentsJSON, _ := json.Marshal(article.Comments)
	if article.Comments == nil {
		commentsJSON = []byte("[]")
	}

	query := `
		UPDATE articles
		SET title = $2, content = $3, excerpt = $4, category = $5, tags = $6, status = $7,
			likes = $8, liked_by = $9, comments = $10,
			image_name = $11, image_url = $12, image_asset_id = $13,
			published_at = $14, updated_at = $15
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, article.Excerpt, article.Category,
		tagsJSON, article.Status,
		article.Likes, likedByJSON, commentsJSON,
		article.Image.Name, article.Image.URL, article.Image.AssetID,
		article.PublishedAt, time.Now(),
	)
	return err
}

// IncrementViews bumps the view counter atomically and returns the new value
func (r *articleRepo) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.db.QueryRowContext(ctx,
		"UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views", id).Scan(&views)
	return views, err
}

// Delete removes an article
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

// buildWhere turns the filter into a WHERE clause. Dimensions AND together;
// the free-text search is an OR across title and content.
func buildWhere(filter *ArticleFilter) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		clauses = append(clauses, "category = "+arg(filter.Category))
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = "+arg(filter.Status))
	}
	if filter.AuthorID != "" {
		clauses = append(clauses, "author_id = "+arg(filter.AuthorID))
	}
	if len(filter.Tags) > 0 {
		clauses = append(clauses, "tags ?| "+arg(pq.Array(filter.Tags)))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR content ILIKE %s)", arg(pattern), arg(pattern)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(sort string) string {
	switch sort {
	case SortOldest:
		return "created_at ASC"
	case SortViews:
		return "views DESC"
	case SortLikes:
		return "likes DESC"
	case SortTitle:
		return "title ASC"
	default:
		return "created_at DESC"
	}
}

func scanArticle(s scanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON, likedByJSON, commentsJSON []byte
	var publishedAt sql.NullTime

	err := s.Scan(
		&article.ID, &article.Title, &article.Content, &article.Excerpt, &article.Category,
		&tagsJSON, &article.AuthorID, &article.Status,
		&article.Views, &article.Likes, &likedByJSON, &commentsJSON,
		&article.Image.Name, &article.Image.URL, &article.Image.AssetID,
		&publishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.Tags)
	json.Unmarshal(likedByJSON, &article.LikedBy)
	json.Unmarshal(commentsJSON, &article.Comments)
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}

func marshalOrEmptyArray(values []string) []byte {
	if values == nil {
		return []byte("[]")
	}
	data, _ := json.Marshal(values)
	return data
}
