package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/config"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/service"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/v1/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}
	limit, err := intQuery(c, "limit", service.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	q := &service.ListQuery{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Tags:     splitTags(c.QueryArray("tags")),
		Status:   c.Query("status"),
		AuthorID: c.Query("author"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	list, err := h.services.Article.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetArticle handles GET /api/v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	view, err := h.services.Article.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateArticle handles POST /api/v1/articles (multipart, image mandatory)
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	req := models.CreateArticleRequest{
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Excerpt:  c.PostForm("excerpt"),
		Category: c.PostForm("category"),
		Status:   c.PostForm("status"),
		Tags:     splitTags(c.PostFormArray("tags")),
	}

	image, err := h.imageUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if image != nil {
		defer image.close()
	}

	article, err := h.services.Article.Create(c.Request.Context(), currentUser(c), &req, imageOrNil(image))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /api/v1/articles/:id (multipart, image optional).
// Only fields present in the form are changed.
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req models.UpdateArticleRequest
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if v, ok := c.GetPostForm("excerpt"); ok {
		req.Excerpt = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		req.Category = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		req.Status = &v
	}
	if vals, ok := c.GetPostFormArray("tags"); ok {
		tags := splitTags(vals)
		req.Tags = &tags
	}

	image, err := h.imageUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if image != nil {
		defer image.close()
	}

	article, err := h.services.Article.Update(c.Request.Context(), currentUser(c), c.Param("id"), &req, imageOrNil(image))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

// ToggleLike handles POST /api/v1/articles/:id/like
func (h *ArticleHandler) ToggleLike(c *gin.Context) {
	resp, err := h.services.Article.ToggleLike(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddComment handles POST /api/v1/articles/:id/comments
func (h *ArticleHandler) AddComment(c *gin.Context) {
	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Article.AddComment(c.Request.Context(), currentUser(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// openedImage pairs the service upload with its open file handle
type openedImage struct {
	upload service.ImageUpload
	file   multipart.File
}

func (o *openedImage) close() {
	o.file.Close()
}

// imageUpload extracts the optional "image" multipart file. Returns nil when
// no file was sent; an error only for an oversized or unreadable file.
func (h *ArticleHandler) imageUpload(c *gin.Context) (*openedImage, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	if header.Size > h.cfg.Media.MaxUploadSize {
		return nil, fmt.Errorf("image too large, max size is %d MB", h.cfg.Media.MaxUploadSize/(1024*1024))
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded image")
	}

	return &openedImage{
		upload: service.ImageUpload{File: file, Filename: header.Filename},
		file:   file,
	}, nil
}

func imageOrNil(image *openedImage) *service.ImageUpload {
	if image == nil {
		return nil
	}
	return &image.upload
}

// splitTags accepts both repeated tag params and comma-separated values
func splitTags(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func intQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	value := c.Query(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
