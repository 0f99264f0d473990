package service_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"dochub/internal/modules/org/domain"
	"dochub/internal/modules/org/service"
)

type fakeDirectoryAPI struct {
	categories        []domain.Category
	users             []domain.User
	listCategoryCalls int
	listUserCalls     int
	failList          bool
	failMutation      error
}

func (f *fakeDirectoryAPI) ListCategories(context.Context) ([]domain.Category, error) {
	f.listCategoryCalls++
	if f.failList {
		return nil, &url.Error{Op: "Get", URL: "http://backend", Err: errors.New("refused")}
	}
	return f.categories, nil
}

func (f *fakeDirectoryAPI) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	if f.failMutation != nil {
		return domain.Category{}, f.failMutation
	}
	c.ID = "cat-1"
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeDirectoryAPI) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	if f.failMutation != nil {
		return domain.Category{}, f.failMutation
	}
	return c, nil
}

func (f *fakeDirectoryAPI) DeleteCategory(context.Context, string) error { return f.failMutation }

func (f *fakeDirectoryAPI) ListUsers(context.Context) ([]domain.User, error) {
	f.listUserCalls++
	if f.failList {
		return nil, &url.Error{Op: "Get", URL: "http://backend", Err: errors.New("refused")}
	}
	return f.users, nil
}

func (f *fakeDirectoryAPI) CreateUser(_ context.Context, u domain.User, _ string) (domain.User, error) {
	if f.failMutation != nil {
		return domain.User{}, f.failMutation
	}
	u.ID = "user-1"
	return u, nil
}

func (f *fakeDirectoryAPI) UpdateUser(_ context.Context, u domain.User) (domain.User, error) {
	if f.failMutation != nil {
		return domain.User{}, f.failMutation
	}
	return u, nil
}

func (f *fakeDirectoryAPI) DeleteUser(context.Context, string) error { return f.failMutation }

type memDirectoryCache struct {
	categories map[string]domain.Category
	users      map[string]domain.User
}

func newMemDirectoryCache() *memDirectoryCache {
	return &memDirectoryCache{categories: map[string]domain.Category{}, users: map[string]domain.User{}}
}

func (c *memDirectoryCache) ReplaceCategories(_ context.Context, categories []domain.Category) error {
	c.categories = map[string]domain.Category{}
	for _, cat := range categories {
		c.categories[cat.ID] = cat
	}
	return nil
}

func (c *memDirectoryCache) ListCategories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (c *memDirectoryCache) UpsertCategory(_ context.Context, cat domain.Category) error {
	c.categories[cat.ID] = cat
	return nil
}

func (c *memDirectoryCache) RemoveCategory(_ context.Context, id string) error {
	delete(c.categories, id)
	return nil
}

func (c *memDirectoryCache) ReplaceUsers(_ context.Context, users []domain.User) error {
	c.users = map[string]domain.User{}
	for _, u := range users {
		c.users[u.ID] = u
	}
	return nil
}

func (c *memDirectoryCache) ListUsers(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(c.users))
	for _, u := range c.users {
		out = append(out, u)
	}
	return out, nil
}

func (c *memDirectoryCache) UpsertUser(_ context.Context, u domain.User) error {
	c.users[u.ID] = u
	return nil
}

func (c *memDirectoryCache) RemoveUser(_ context.Context, id string) error {
	delete(c.users, id)
	return nil
}

func TestListCategoriesCachesUntilForced(t *testing.T) {
	t.Parallel()
	api := &fakeDirectoryAPI{categories: []domain.Category{{ID: "1", Name: "finance"}}}
	svc := service.NewDirectoryService(api, newMemDirectoryCache())

	for i := 0; i < 3; i++ {
		if _, err := svc.ListCategories(context.Background(), false); err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
	}
	if api.listCategoryCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", api.listCategoryCalls)
	}
	if _, err := svc.ListCategories(context.Background(), true); err != nil {
		t.Fatalf("forced list: %v", err)
	}
	if api.listCategoryCalls != 2 {
		t.Fatalf("force must refetch, got %d calls", api.listCategoryCalls)
	}
}

func TestListUsersFallsBackToCacheOffline(t *testing.T) {
	t.Parallel()
	api := &fakeDirectoryAPI{users: []domain.User{{ID: "1", Name: "Alex", Email: "alex@example.com"}}}
	svc := service.NewDirectoryService(api, newMemDirectoryCache())

	if _, err := svc.ListUsers(context.Background(), false); err != nil {
		t.Fatalf("warm-up: %v", err)
	}
	api.failList = true
	users, err := svc.ListUsers(context.Background(), true)
	if err != nil {
		t.Fatalf("offline list should use the cache: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alex" {
		t.Fatalf("unexpected users: %v", users)
	}
}

func TestCreateCategoryValidatesBeforeBackend(t *testing.T) {
	t.Parallel()
	api := &fakeDirectoryAPI{}
	svc := service.NewDirectoryService(api, newMemDirectoryCache())

	if _, err := svc.CreateCategory(context.Background(), domain.Category{Name: "   "}); err == nil {
		t.Fatal("blank name must be rejected locally")
	}

	created, err := svc.CreateCategory(context.Background(), domain.Category{Name: " finance ", Tags: []string{" q3 ", ""}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "finance" || len(created.Tags) != 1 || created.Tags[0] != "q3" {
		t.Fatalf("normalization lost: %+v", created)
	}
}

func TestMutationFailureLeavesCacheUntouched(t *testing.T) {
	t.Parallel()
	api := &fakeDirectoryAPI{categories: []domain.Category{{ID: "1", Name: "finance"}}}
	cache := newMemDirectoryCache()
	svc := service.NewDirectoryService(api, cache)
	if _, err := svc.ListCategories(context.Background(), false); err != nil {
		t.Fatalf("warm-up: %v", err)
	}

	api.failMutation = errors.New("backend down")
	if err := svc.DeleteCategory(context.Background(), "1"); err == nil {
		t.Fatal("backend failure must surface")
	}
	if len(cache.categories) != 1 {
		t.Fatal("cache entry must survive a failed backend delete")
	}

	if _, err := svc.CreateUser(context.Background(), domain.User{Name: "A", Email: "a@example.com"}, "pw"); err == nil {
		t.Fatal("backend failure must surface for user creation")
	}
	if len(cache.users) != 0 {
		t.Fatal("no user may be cached after a failed create")
	}
}

func TestUserValidation(t *testing.T) {
	t.Parallel()
	svc := service.NewDirectoryService(&fakeDirectoryAPI{}, newMemDirectoryCache())

	if _, err := svc.CreateUser(context.Background(), domain.User{Name: "A", Email: "not-an-email"}, "pw"); err == nil {
		t.Fatal("invalid email must be rejected")
	}
	created, err := svc.CreateUser(context.Background(), domain.User{Name: "A", Email: "a@example.com"}, "pw")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("backend-assigned id must be kept")
	}
}
