package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/apperr"
	"github.com/wilideparisdenode/bloggerBackend/internal/auth"
	"github.com/wilideparisdenode/bloggerBackend/internal/media"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
	"github.com/wilideparisdenode/bloggerBackend/internal/validation"
)

// Listing defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	host     media.Host
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, users repository.UserRepository, host media.Host, log zerolog.Logger) ArticleService {
	return &articleService{
		articles: articles,
		users:    users,
		host:     host,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// Create validates the request, uploads the mandatory image and persists the
// new article
func (s *articleService) Create(ctx context.Context, author *models.User, req *models.CreateArticleRequest, image *ImageUpload) (*models.Article, error) {
	violations := validation.ValidateCreateArticle(req)
	if image == nil {
		violations = append(violations, validation.ValidationError{Field: "image", Message: "image is required"})
	}
	if len(violations) > 0 {
		return nil, apperr.ValidationDetails("invalid article request", violations)
	}

	asset, err := s.host.Upload(ctx, image.File, image.Filename)
	if err != nil {
		return nil, apperr.Upstream("uploading image", err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusPublished
	}

	now := time.Now()
	article := &models.Article{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Tags:     validation.NormalizeTags(req.Tags),
		AuthorID: author.ID,
		Status:   status,
		LikedBy:  []string{},
		Comments: []models.Comment{},
		Image: models.Image{
			Name:    image.Filename,
			URL:     asset.URL,
			AssetID: asset.AssetID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == models.StatusPublished {
		article.PublishedAt = &now
	}

	if err := s.articles.Create(ctx, article); err != nil {
		// The row never landed, so the freshly uploaded asset is orphaned.
		s.deleteAsset(asset.AssetID)
		return nil, apperr.Upstream("creating article", err)
	}

	s.log.Info().Str("article_id", article.ID).Str("author_id", author.ID).Msg("Article created")
	return article, nil
}

// GetByID reads an article, bumping its view counter as a side effect, and
// joins author identities in for the response.
func (s *articleService) GetByID(ctx context.Context, id string) (*models.ArticleView, error) {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.articles.IncrementViews(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("incrementing views", err)
	}
	article.Views = views

	return s.buildView(ctx, article)
}

// List applies filter, sort and pagination and returns the listing envelope
func (s *articleService) List(ctx context.Context, q *ListQuery) (*models.ArticleList, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if q.Sort != "" && !repository.ValidSorts[q.Sort] {
		return nil, apperr.Validation("invalid sort, must be one of: newest, oldest, popular, liked, title")
	}
	if q.Status != "" && !models.ValidStatuses[q.Status] {
		return nil, apperr.Validation("invalid status, must be one of: draft, published")
	}
	if q.AuthorID != "" && !validation.IsValidID(q.AuthorID) {
		return nil, apperr.Validation("invalid author id")
	}

	filter := &repository.ArticleFilter{
		Category: q.Category,
		Tags:     validation.NormalizeTags(q.Tags),
		Status:   q.Status,
		AuthorID: q.AuthorID,
		Search:   strings.TrimSpace(q.Search),
	}

	total, err := s.articles.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Upstream("counting articles", err)
	}

	offset := (page - 1) * limit
	articles, err := s.articles.Find(ctx, filter, q.Sort, offset, limit)
	if err != nil {
		return nil, apperr.Upstream("listing articles", err)
	}

	totalPages := (total + limit - 1) / limit

	return &models.ArticleList{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalArticles:   total,
		ArticlesPerPage: limit,
		Articles:        articles,
	}, nil
}

// Update applies a partial update. Only fields present in the request change;
// a request with no changes and no new image is rejected.
func (s *articleService) Update(ctx context.Context, actor *models.User, id string, req *models.UpdateArticleRequest, image *ImageUpload) (*models.Article, error) {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanMutate(actor, article.AuthorID) {
		return nil, apperr.Forbidden("not allowed to modify this article")
	}

	if req.Empty() && image == nil {
		return nil, apperr.Validation("no changes in request")
	}
	if violations := validation.ValidateUpdateArticle(req); len(violations) > 0 {
		return nil, apperr.ValidationDetails("invalid article update", violations)
	}

	if req.Title != nil {
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Tags != nil {
		article.Tags = validation.NormalizeTags(*req.Tags)
	}
	if req.Status != nil {
		article.Status = *req.Status
		// publishedAt is stamped on the first transition into published and
		// never cleared afterwards
		if article.Status == models.StatusPublished && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
	}

	if image != nil {
		asset, err := s.host.Upload(ctx, image.File, image.Filename)
		if err != nil {
			return nil, apperr.Upstream("uploading image", err)
		}
		oldAssetID := article.Image.AssetID
		article.Image = models.Image{Name: image.Filename, URL: asset.URL, AssetID: asset.AssetID}
		// Old asset is removed only after the new one is confirmed uploaded
		s.deleteAsset(oldAssetID)
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, apperr.Upstream("updating article", err)
	}

	s.log.Info().Str("article_id", article.ID).Str("actor_id", actor.ID).Msg("Article updated")
	return article, nil
}

// Delete removes an article and, best-effort, its hosted image
func (s *articleService) Delete(ctx context.Context, actor *models.User, id string) error {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CanMutate(actor, article.AuthorID) {
		return apperr.Forbidden("not allowed to delete this article")
	}

	s.deleteAsset(article.Image.AssetID)

	if err := s.articles.Delete(ctx, id); err != nil {
		return apperr.Upstream("deleting article", err)
	}

	s.log.Info().Str("article_id", id).Str("actor_id", actor.ID).Msg("Article deleted")
	return nil
}

// ToggleLike flips the actor's membership in the likedBy set. The counter is
// recomputed from the set after mutation so the two cannot drift.
func (s *articleService) ToggleLike(ctx context.Context, actor *models.User, id string) (*models.LikeResponse, error) {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := false
	if article.LikedByUser(actor.ID) {
		likedBy := make([]string, 0, len(article.LikedBy))
		for _, userID := range article.LikedBy {
			if userID != actor.ID {
				likedBy = append(likedBy, userID)
			}
		}
		article.LikedBy = likedBy
	} else {
		article.LikedBy = append(article.LikedBy, actor.ID)
		liked = true
	}
	article.Likes = len(article.LikedBy)

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, apperr.Upstream("updating article", err)
	}

	return &models.LikeResponse{Liked: liked, Likes: article.Likes}, nil
}

// AddComment appends a comment with a server-assigned id and timestamp
func (s *articleService) AddComment(ctx context.Context, actor *models.User, id, text string) (*models.CommentView, error) {
	article, err := s.loadArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if violations := validation.ValidateComment(text); len(violations) > 0 {
		return nil, apperr.ValidationDetails("invalid comment", violations)
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
	article.Comments = append(article.Comments, comment)

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, apperr.Upstream("updating article", err)
	}

	author := actor.Public()
	return &models.CommentView{Comment: comment, Author: &author}, nil
}

// loadArticle fetches an article or fails with the right taxonomy error
func (s *articleService) loadArticle(ctx context.Context, id string) (*models.Article, error) {
	if !validation.IsValidID(id) {
		return nil, apperr.Validation("invalid article id")
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("looking up article", err)
	}
	if article == nil {
		return nil, apperr.NotFound("article not found")
	}
	return article, nil
}

// buildView joins author identities into the read-side projection
func (s *articleService) buildView(ctx context.Context, article *models.Article) (*models.ArticleView, error) {
	ids := []string{article.AuthorID}
	for _, c := range article.Comments {
		ids = append(ids, c.UserID)
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Upstream("loading authors", err)
	}

	view := &models.ArticleView{Article: article, Comments: make([]models.CommentView, 0, len(article.Comments))}
	if author, ok := users[article.AuthorID]; ok {
		profile := author.Public()
		view.Author = &profile
	}
	for _, c := range article.Comments {
		cv := models.CommentView{Comment: c}
		if commenter, ok := users[c.UserID]; ok {
			profile := commenter.Public()
			cv.Author = &profile
		}
		view.Comments = append(view.Comments, cv)
	}
	return view, nil
}

// deleteAsset is the best-effort media cleanup: failures are logged, never
// propagated.
func (s *articleService) deleteAsset(assetID string) {
	if assetID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.host.Delete(ctx, assetID); err != nil {
		s.log.Warn().Err(err).Str("asset_id", assetID).Msg("Failed to delete hosted image")
	}
}
