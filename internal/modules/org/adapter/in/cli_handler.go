package in

import (
	"context"

	"dochub/internal/modules/org/dto"
	orgin "dochub/internal/modules/org/port/in"
)

type CLIHandler struct {
	usecase orgin.Usecase
}

func NewCLIHandler(usecase orgin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListCategories(ctx context.Context, forceRefresh bool) ([]dto.CategoryOutput, error) {
	return h.usecase.ListCategories(ctx, dto.ListInput{ForceRefresh: forceRefresh})
}

func (h CLIHandler) CreateCategory(ctx context.Context, name string, tags []string) (dto.CategoryOutput, error) {
	return h.usecase.CreateCategory(ctx, dto.CreateCategoryInput{Name: name, Tags: tags})
}

func (h CLIHandler) UpdateCategory(ctx context.Context, id, name string, tags []string) (dto.CategoryOutput, error) {
	return h.usecase.UpdateCategory(ctx, dto.UpdateCategoryInput{ID: id, Name: name, Tags: tags})
}

func (h CLIHandler) DeleteCategory(ctx context.Context, id string) error {
	return h.usecase.DeleteCategory(ctx, id)
}

func (h CLIHandler) ListUsers(ctx context.Context, forceRefresh bool) ([]dto.UserOutput, error) {
	return h.usecase.ListUsers(ctx, dto.ListInput{ForceRefresh: forceRefresh})
}

func (h CLIHandler) CreateUser(ctx context.Context, name, email, password string) (dto.UserOutput, error) {
	return h.usecase.CreateUser(ctx, dto.CreateUserInput{Name: name, Email: email, Password: password})
}

func (h CLIHandler) UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error) {
	return h.usecase.UpdateUser(ctx, input)
}

func (h CLIHandler) DeleteUser(ctx context.Context, id string) error {
	return h.usecase.DeleteUser(ctx, id)
}
