package out

import (
	"context"
	"fmt"
	"time"

	"dochub/internal/modules/org/domain"
	orgout "dochub/internal/modules/org/port/out"
	"dochub/internal/platform/rest"
)

// HTTPDirectoryAPI talks to the backend's organization-admin and
// organization-user endpoints. The two entity families use different
// response envelopes; each decoder matches its endpoint.
type HTTPDirectoryAPI struct {
	api *rest.Client
}

func NewHTTPDirectoryAPI(api *rest.Client) orgout.DirectoryAPI {
	return &HTTPDirectoryAPI{api: api}
}

type categoryPayload struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (p categoryPayload) toDomain() domain.Category {
	return domain.Category{ID: p.ID, Name: p.Name, Tags: p.Tags}
}

func (a *HTTPDirectoryAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	payload := struct {
		Data []categoryPayload `json:"data"`
	}{}
	if err := a.api.GetJSON(ctx, "/organization-admin/category", &payload); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]domain.Category, 0, len(payload.Data))
	for _, p := range payload.Data {
		categories = append(categories, p.toDomain())
	}
	return categories, nil
}

func (a *HTTPDirectoryAPI) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	body := map[string]any{"name": category.Name, "tags": category.Tags}
	payload := struct {
		Data categoryPayload `json:"data"`
	}{}
	if err := a.api.PostJSON(ctx, "/organization-admin/category", body, &payload); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return payload.Data.toDomain(), nil
}

func (a *HTTPDirectoryAPI) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	body := map[string]any{"name": category.Name, "tags": category.Tags}
	payload := struct {
		Data categoryPayload `json:"data"`
	}{}
	if err := a.api.PutJSON(ctx, "/organization-admin/categories/"+category.ID, body, &payload); err != nil {
		return domain.Category{}, fmt.Errorf("update category %s: %w", category.ID, err)
	}
	updated := payload.Data.toDomain()
	if updated.ID == "" {
		updated = category
	}
	return updated, nil
}

func (a *HTTPDirectoryAPI) DeleteCategory(ctx context.Context, id string) error {
	if err := a.api.Delete(ctx, "/organization-admin/category/"+id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

type userPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func (p userPayload) toDomain() domain.User {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.User{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		Active:    p.IsActive,
		CreatedAt: createdAt,
	}
}

func (a *HTTPDirectoryAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	payload := struct {
		Users []userPayload `json:"organization_users"`
	}{}
	if err := a.api.GetJSON(ctx, "/organization-user", &payload); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(payload.Users))
	for _, p := range payload.Users {
		users = append(users, p.toDomain())
	}
	return users, nil
}

func (a *HTTPDirectoryAPI) CreateUser(ctx context.Context, user domain.User, password string) (domain.User, error) {
	body := map[string]any{"name": user.Name, "email": user.Email, "password": password}
	payload := struct {
		User userPayload `json:"organization_user"`
	}{}
	if err := a.api.PostJSON(ctx, "/organization-user", body, &payload); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return payload.User.toDomain(), nil
}

func (a *HTTPDirectoryAPI) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	body := map[string]any{
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"is_active": user.Active,
	}
	payload := struct {
		Data userPayload `json:"data"`
	}{}
	if err := a.api.PutJSON(ctx, "/organization-admin/users/"+user.ID, body, &payload); err != nil {
		return domain.User{}, fmt.Errorf("update user %s: %w", user.ID, err)
	}
	updated := payload.Data.toDomain()
	if updated.ID == "" {
		updated = user
	}
	return updated, nil
}

func (a *HTTPDirectoryAPI) DeleteUser(ctx context.Context, id string) error {
	if err := a.api.Delete(ctx, "/organization-user/"+id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
