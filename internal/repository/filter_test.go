package repository

import (
	"strings"
	"testing"
)

func TestBuildWhere_Empty(t *testing.T) {
	where, args := buildWhere(nil)
	if where != "" || args != nil {
		t.Errorf("Expected empty clause, got %q %v", where, args)
	}

	where, args = buildWhere(&ArticleFilter{})
	if where != "" || args != nil {
		t.Errorf("Expected empty clause for zero filter, got %q %v", where, args)
	}
}

func TestBuildWhere_SingleDimension(t *testing.T) {
	where, args := buildWhere(&ArticleFilter{Category: "Programming"})
	if where != " WHERE category = $1" {
		t.Errorf("Unexpected clause: %q", where)
	}
	if len(args) != 1 || args[0] != "Programming" {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestBuildWhere_DimensionsCombineWithAND(t *testing.T) {
	where, args := buildWhere(&ArticleFilter{
		Category: "Programming",
		Status:   "published",
		AuthorID: "22222222-2222-2222-2222-222222222222",
	})

	if strings.Count(where, " AND ") != 2 {
		t.Errorf("Expected two ANDs, got %q", where)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestBuildWhere_SearchIsAnOR(t *testing.T) {
	where, args := buildWhere(&ArticleFilter{Search: "concurrency"})

	if !strings.Contains(where, "title ILIKE $1 OR content ILIKE $2") {
		t.Errorf("Expected OR across title and content, got %q", where)
	}
	if len(args) != 2 || args[0] != "%concurrency%" || args[1] != "%concurrency%" {
		t.Errorf("Expected wrapped pattern args, got %v", args)
	}
}

func TestBuildWhere_Tags(t *testing.T) {
	where, args := buildWhere(&ArticleFilter{Tags: []string{"go", "web"}})

	if !strings.Contains(where, "tags ?| $1") {
		t.Errorf("Expected any-of tags clause, got %q", where)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 array arg, got %d", len(args))
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortNewest, "created_at DESC"},
		{SortOldest, "created_at ASC"},
		{SortViews, "views DESC"},
		{SortLikes, "likes DESC"},
		{SortTitle, "title ASC"},
		{"", "created_at DESC"},
	}
	for _, tt := range tests {
		if got := orderBy(tt.sort); got != tt.want {
			t.Errorf("orderBy(%q) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}
