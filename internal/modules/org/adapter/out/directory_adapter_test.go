package out_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dochub/internal/modules/org/adapter/out"
	"dochub/internal/modules/org/domain"
	"dochub/internal/platform/rest"
)

func TestDirectoryAPICategoryRoundTrip(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/organization-admin/category":
			fmt.Fprint(w, `{"data": [{"id": "c1", "name": "finance", "tags": ["q3"]}]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/organization-admin/category":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "legal" {
				t.Errorf("unexpected create body: %v", body)
			}
			fmt.Fprint(w, `{"data": {"id": "c2", "name": "legal", "tags": []}}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/organization-admin/category/c1":
			fmt.Fprint(w, `{"data": {"id": "c1"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api := out.NewHTTPDirectoryAPI(rest.New(srv.URL, "", 5*time.Second))
	ctx := context.Background()

	categories, err := api.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "finance" || categories[0].Tags[0] != "q3" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	created, err := api.CreateCategory(ctx, domain.Category{Name: "legal"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "c2" {
		t.Fatalf("backend id not decoded: %+v", created)
	}

	if err := api.DeleteCategory(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDirectoryAPIUserEnvelopes(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/organization-user":
			fmt.Fprint(w, `{"organization_users": [{"id": "u1", "name": "Alex", "email": "alex@example.com", "role": "member", "is_active": true, "created_at": "2026-08-01T10:00:00Z"}]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/organization-user":
			fmt.Fprint(w, `{"organization_user": {"id": "u2", "name": "Sam", "email": "sam@example.com", "role": "member", "is_active": true}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api := out.NewHTTPDirectoryAPI(rest.New(srv.URL, "", 5*time.Second))
	ctx := context.Background()

	users, err := api.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Email != "alex@example.com" || !users[0].Active {
		t.Fatalf("unexpected users: %+v", users)
	}

	created, err := api.CreateUser(ctx, domain.User{Name: "Sam", Email: "sam@example.com"}, "pw")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "u2" {
		t.Fatalf("backend id not decoded: %+v", created)
	}
}

func TestDirectoryCacheRoundTrip(t *testing.T) {
	t.Parallel()
	cache, err := out.NewSQLiteDirectoryCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	categories := []domain.Category{
		{ID: "c2", Name: "legal"},
		{ID: "c1", Name: "finance", Tags: []string{"q3", "audit"}},
	}
	if err := cache.ReplaceCategories(ctx, categories); err != nil {
		t.Fatalf("replace categories: %v", err)
	}
	gotCategories, err := cache.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(gotCategories) != 2 || gotCategories[0].Name != "finance" {
		t.Fatalf("listing must be name-ordered: %+v", gotCategories)
	}
	if len(gotCategories[0].Tags) != 2 || gotCategories[0].Tags[1] != "audit" {
		t.Fatalf("tags round trip broken: %+v", gotCategories[0])
	}

	if err := cache.RemoveCategory(ctx, "c2"); err != nil {
		t.Fatalf("remove category: %v", err)
	}
	gotCategories, _ = cache.ListCategories(ctx)
	if len(gotCategories) != 1 {
		t.Fatalf("expected 1 category after remove, got %d", len(gotCategories))
	}

	now := time.Now().UTC().Truncate(time.Second)
	user := domain.User{ID: "u1", Name: "Alex", Email: "alex@example.com", Role: "member", Active: true, CreatedAt: now}
	if err := cache.UpsertUser(ctx, user); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	user.Active = false
	if err := cache.UpsertUser(ctx, user); err != nil {
		t.Fatalf("update user: %v", err)
	}
	users, err := cache.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Active || !users[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected users: %+v", users)
	}
}
