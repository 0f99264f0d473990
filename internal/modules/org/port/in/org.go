package in

import (
	"context"

	"dochub/internal/modules/org/dto"
)

type Usecase interface {
	ListCategories(ctx context.Context, input dto.ListInput) ([]dto.CategoryOutput, error)
	CreateCategory(ctx context.Context, input dto.CreateCategoryInput) (dto.CategoryOutput, error)
	UpdateCategory(ctx context.Context, input dto.UpdateCategoryInput) (dto.CategoryOutput, error)
	DeleteCategory(ctx context.Context, id string) error

	ListUsers(ctx context.Context, input dto.ListInput) ([]dto.UserOutput, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error)
	UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error)
	DeleteUser(ctx context.Context, id string) error
}
