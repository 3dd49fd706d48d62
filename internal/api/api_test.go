package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/api"
	"github.com/wilideparisdenode/bloggerBackend/internal/config"
	"github.com/wilideparisdenode/bloggerBackend/internal/mocks"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
	"github.com/wilideparisdenode/bloggerBackend/internal/service"
)

const (
	testArticleID = "11111111-1111-1111-1111-111111111111"
	testAuthorID  = "22222222-2222-2222-2222-222222222222"
	testReaderID  = "33333333-3333-3333-3333-333333333333"
	testAdminID   = "44444444-4444-4444-4444-444444444444"
)

type testEnv struct {
	router   *gin.Engine
	users    *mocks.MockUserRepository
	articles *mocks.MockArticleRepository
	host     *mocks.MockMediaHost
}

func newTestEnv() *testEnv {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	host := &mocks.MockMediaHost{}
	signer := &mocks.MockTokenSigner{}

	repos := &repository.Repositories{User: users, Article: articles}
	services := service.NewServices(repos, signer, &mocks.MockPasswordHasher{}, host, zerolog.Nop())

	cfg := &config.Config{
		Media: config.MediaConfig{MaxUploadSize: 10 * 1024 * 1024},
	}
	router := api.NewRouter(services, repos, signer, cfg, zerolog.Nop())

	return &testEnv{router: router, users: users, articles: articles, host: host}
}

func (e *testEnv) seed() {
	e.users.Create(context.Background(), &models.User{ID: testAuthorID, Name: "Author", Email: "author@example.com", PasswordHash: "hashed:secret123"})
	e.users.Create(context.Background(), &models.User{ID: testReaderID, Name: "Reader", Email: "reader@example.com", PasswordHash: "hashed:secret123"})
	e.users.Create(context.Background(), &models.User{ID: testAdminID, Name: "Admin", Email: "admin@example.com", PasswordHash: "hashed:secret123", IsAdmin: true})
	e.articles.Create(context.Background(), &models.Article{
		ID:       testArticleID,
		Title:    "Seed Article",
		Content:  "Seed content",
		Category: "Programming",
		AuthorID: testAuthorID,
		Status:   models.StatusPublished,
		LikedBy:  []string{},
		Image:    models.Image{AssetID: "asset-seed"},
	})
}

// tokenFor matches MockTokenSigner's scheme
func tokenFor(userID string) string {
	return "Bearer token-" + userID
}

func (e *testEnv) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doMultipart(method, path, token string, fields map[string]string, withImage bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if withImage {
		part, _ := writer.CreateFormFile("image", "cover.png")
		part.Write([]byte("png-bytes"))
	}
	writer.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	e := newTestEnv()
	w := e.doJSON(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	e := newTestEnv()

	w := e.doJSON(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" || resp.User == nil {
		t.Fatalf("Unexpected register response: %s", w.Body.String())
	}

	// Duplicate email is a 400
	w = e.doJSON(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Name: "Clone", Email: "ALICE@example.com", Password: "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}

	w = e.doJSON(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for login, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin_FailuresLookIdentical(t *testing.T) {
	e := newTestEnv()
	e.seed()

	wrongPassword := e.doJSON(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: "author@example.com", Password: "wrong",
	})
	noSuchEmail := e.doJSON(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: "ghost@example.com", Password: "secret123",
	})

	if wrongPassword.Code != http.StatusUnauthorized || noSuchEmail.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401/401, got %d/%d", wrongPassword.Code, noSuchEmail.Code)
	}
	if wrongPassword.Body.String() != noSuchEmail.Body.String() {
		t.Errorf("Login failure bodies must be identical: %s vs %s",
			wrongPassword.Body.String(), noSuchEmail.Body.String())
	}
}

func TestCreateArticle_RequiresAuth(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doMultipart(http.MethodPost, "/api/v1/articles", "", map[string]string{
		"title": "T", "content": "C", "category": "Programming",
	}, true)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w = e.doMultipart(http.MethodPost, "/api/v1/articles", "Bearer garbage", map[string]string{
		"title": "T", "content": "C", "category": "Programming",
	}, true)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bad token, got %d", w.Code)
	}
}

func TestCreateArticle(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doMultipart(http.MethodPost, "/api/v1/articles", tokenFor(testAuthorID), map[string]string{
		"title": "Fresh", "content": "Body", "category": "Technology", "tags": "Go, Web",
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var article models.Article
	json.Unmarshal(w.Body.Bytes(), &article)
	if article.AuthorID != testAuthorID {
		t.Errorf("Expected authorId %s, got %s", testAuthorID, article.AuthorID)
	}
	if len(article.Tags) != 2 || article.Tags[0] != "go" {
		t.Errorf("Expected normalized tags, got %v", article.Tags)
	}

	// Missing image is a request error
	w = e.doMultipart(http.MethodPost, "/api/v1/articles", tokenFor(testAuthorID), map[string]string{
		"title": "NoImage", "content": "Body", "category": "Technology",
	}, false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing image, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetArticle_CountsViews(t *testing.T) {
	e := newTestEnv()
	e.seed()

	for i := 1; i <= 2; i++ {
		w := e.doJSON(http.MethodGet, "/api/v1/articles/"+testArticleID, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
	}
	if e.articles.Articles[testArticleID].Views != 2 {
		t.Errorf("Expected 2 views, got %d", e.articles.Articles[testArticleID].Views)
	}
}

func TestGetArticle_BadIDs(t *testing.T) {
	e := newTestEnv()
	e.seed()

	if w := e.doJSON(http.MethodGet, "/api/v1/articles/not-a-uuid", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed id, got %d", w.Code)
	}
	missing := "99999999-9999-9999-9999-999999999999"
	if w := e.doJSON(http.MethodGet, "/api/v1/articles/"+missing, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing article, got %d", w.Code)
	}
}

func TestUpdateArticle_OwnershipScenario(t *testing.T) {
	e := newTestEnv()
	e.seed()

	// Non-owner, non-admin: 403, nothing changes
	w := e.doMultipart(http.MethodPut, "/api/v1/articles/"+testArticleID, tokenFor(testReaderID),
		map[string]string{"title": "Hijacked"}, false)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-owner, got %d: %s", w.Code, w.Body.String())
	}
	if e.articles.Articles[testArticleID].Title != "Seed Article" {
		t.Error("Denied update must not change the article")
	}

	// Admin: 200, field changes
	w = e.doMultipart(http.MethodPut, "/api/v1/articles/"+testArticleID, tokenFor(testAdminID),
		map[string]string{"title": "Admin Edit"}, false)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
	if e.articles.Articles[testArticleID].Title != "Admin Edit" {
		t.Error("Admin update should change the title")
	}

	// No-op update: 400
	w = e.doMultipart(http.MethodPut, "/api/v1/articles/"+testArticleID, tokenFor(testAuthorID),
		map[string]string{}, false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty update, got %d", w.Code)
	}
}

func TestToggleLikeEndpoint(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doJSON(http.MethodPost, "/api/v1/articles/"+testArticleID+"/like", tokenFor(testReaderID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.LikeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Liked || resp.Likes != 1 {
		t.Errorf("Expected liked=true likes=1, got %+v", resp)
	}

	w = e.doJSON(http.MethodPost, "/api/v1/articles/"+testArticleID+"/like", tokenFor(testReaderID), nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Liked || resp.Likes != 0 {
		t.Errorf("Expected toggle back to 0, got %+v", resp)
	}
}

func TestAddCommentEndpoint(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doJSON(http.MethodPost, "/api/v1/articles/"+testArticleID+"/comments", tokenFor(testReaderID),
		models.AddCommentRequest{Text: "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for whitespace comment, got %d", w.Code)
	}
	if len(e.articles.Articles[testArticleID].Comments) != 0 {
		t.Error("No comment may be appended")
	}

	w = e.doJSON(http.MethodPost, "/api/v1/articles/"+testArticleID+"/comments", tokenFor(testReaderID),
		models.AddCommentRequest{Text: "nice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var comment models.CommentView
	json.Unmarshal(w.Body.Bytes(), &comment)
	if comment.Author == nil || comment.Author.Name != "Reader" {
		t.Errorf("Expected author projection, got %s", w.Body.String())
	}
}

func TestListEndpoint(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doJSON(http.MethodGet, "/api/v1/articles?category=Programming&sort=popular&page=1&limit=5", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var list models.ArticleList
	json.Unmarshal(w.Body.Bytes(), &list)
	if list.CurrentPage != 1 || list.ArticlesPerPage != 5 || list.TotalArticles != 1 {
		t.Errorf("Unexpected envelope: %s", w.Body.String())
	}

	if w := e.doJSON(http.MethodGet, "/api/v1/articles?page=zero", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad page, got %d", w.Code)
	}
}

func TestDeleteArticleEndpoint(t *testing.T) {
	e := newTestEnv()
	e.seed()

	w := e.doJSON(http.MethodDelete, "/api/v1/articles/"+testArticleID, tokenFor(testAuthorID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := e.articles.Articles[testArticleID]; ok {
		t.Error("Article should be gone")
	}
	if len(e.host.Deleted) != 1 || e.host.Deleted[0] != "asset-seed" {
		t.Errorf("Expected hosted asset deleted, got %v", e.host.Deleted)
	}
}

func TestUserEndpoints(t *testing.T) {
	e := newTestEnv()
	e.seed()

	// /profile requires auth
	if w := e.doJSON(http.MethodGet, "/api/v1/profile", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}

	w := e.doJSON(http.MethodGet, "/api/v1/profile", tokenFor(testAuthorID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("hashed:")) {
		t.Error("Password hash must never appear in a response")
	}

	// Public profile
	if w := e.doJSON(http.MethodGet, "/api/v1/users/"+testAuthorID, "", nil); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for public profile, got %d", w.Code)
	}

	// Delete: unrelated user forbidden, admin allowed
	if w := e.doJSON(http.MethodDelete, "/api/v1/users/"+testAuthorID, tokenFor(testReaderID), nil); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}
	if w := e.doJSON(http.MethodDelete, "/api/v1/users/"+testAuthorID, tokenFor(testAdminID), nil); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin delete, got %d", w.Code)
	}
}
