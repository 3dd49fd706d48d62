package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/wilideparisdenode/bloggerBackend/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateRegister validates a registration request
func ValidateRegister(req *models.RegisterRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if req.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if len(req.Password) < models.MinPasswordLength {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLength),
		})
	}

	return errors
}

// ValidateProfileUpdate validates a partial profile update
func ValidateProfileUpdate(req *models.UpdateProfileRequest) []ValidationError {
	var errors []ValidationError

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if req.Email != nil && !emailRegex.MatchString(*req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: *req.Email})
	}

	return errors
}

// ValidateCreateArticle validates an article creation request.
// The image is validated separately by the handler since it arrives as a
// multipart file.
func ValidateCreateArticle(req *models.CreateArticleRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}

	if req.Category == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategories[req.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: " + categoryList(),
			Value:   req.Category,
		})
	}

	if req.Status != "" && !models.ValidStatuses[req.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   req.Status,
		})
	}

	return errors
}

// ValidateUpdateArticle validates a partial article update
func ValidateUpdateArticle(req *models.UpdateArticleRequest) []ValidationError {
	var errors []ValidationError

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title must not be empty"})
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content must not be empty"})
	}
	if req.Category != nil && !models.ValidCategories[*req.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: " + categoryList(),
			Value:   *req.Category,
		})
	}
	if req.Status != nil && !models.ValidStatuses[*req.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   *req.Status,
		})
	}

	return errors
}

// NormalizeTags lowercases, trims and dedupes tags, dropping empty strings
// and tags outside the length bounds. Order of first occurrence is kept.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if len(t) < models.MinTagLength || len(t) > models.MaxTagLength {
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		normalized = append(normalized, t)
	}
	return normalized
}

// ValidateComment validates comment text
func ValidateComment(text string) []ValidationError {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []ValidationError{{Field: "text", Message: "comment text is required"}}
	}
	if len(trimmed) > models.MaxCommentLength {
		return []ValidationError{{
			Field:   "text",
			Message: fmt.Sprintf("comment exceeds maximum of %d characters", models.MaxCommentLength),
		}}
	}
	return nil
}

// IsValidID checks if a string is a valid UUID
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func categoryList() string {
	names := make([]string, 0, len(models.ValidCategories))
	for name := range models.ValidCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
