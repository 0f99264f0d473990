package usecase

import (
	"context"

	"dochub/internal/modules/org/domain"
	"dochub/internal/modules/org/dto"
	orgin "dochub/internal/modules/org/port/in"
	"dochub/internal/modules/org/service"
)

type Interactor struct {
	svc *service.DirectoryService
}

func NewInteractor(svc *service.DirectoryService) orgin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListCategories(ctx context.Context, input dto.ListInput) ([]dto.CategoryOutput, error) {
	categories, err := i.svc.ListCategories(ctx, input.ForceRefresh)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryOutput, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryOutput(c))
	}
	return out, nil
}

func (i *Interactor) CreateCategory(ctx context.Context, input dto.CreateCategoryInput) (dto.CategoryOutput, error) {
	created, err := i.svc.CreateCategory(ctx, domain.Category{Name: input.Name, Tags: input.Tags})
	if err != nil {
		return dto.CategoryOutput{}, err
	}
	return toCategoryOutput(created), nil
}

func (i *Interactor) UpdateCategory(ctx context.Context, input dto.UpdateCategoryInput) (dto.CategoryOutput, error) {
	updated, err := i.svc.UpdateCategory(ctx, domain.Category{ID: input.ID, Name: input.Name, Tags: input.Tags})
	if err != nil {
		return dto.CategoryOutput{}, err
	}
	return toCategoryOutput(updated), nil
}

func (i *Interactor) DeleteCategory(ctx context.Context, id string) error {
	return i.svc.DeleteCategory(ctx, id)
}

func (i *Interactor) ListUsers(ctx context.Context, input dto.ListInput) ([]dto.UserOutput, error) {
	users, err := i.svc.ListUsers(ctx, input.ForceRefresh)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toUserOutput(u))
	}
	return out, nil
}

func (i *Interactor) CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error) {
	created, err := i.svc.CreateUser(ctx, domain.User{Name: input.Name, Email: input.Email}, input.Password)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUserOutput(created), nil
}

func (i *Interactor) UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error) {
	updated, err := i.svc.UpdateUser(ctx, domain.User{
		ID:     input.ID,
		Name:   input.Name,
		Email:  input.Email,
		Role:   input.Role,
		Active: input.Active,
	})
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUserOutput(updated), nil
}

func (i *Interactor) DeleteUser(ctx context.Context, id string) error {
	return i.svc.DeleteUser(ctx, id)
}

func toCategoryOutput(c domain.Category) dto.CategoryOutput {
	return dto.CategoryOutput{ID: c.ID, Name: c.Name, Tags: c.Tags}
}

func toUserOutput(u domain.User) dto.UserOutput {
	return dto.UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Active: u.Active, CreatedAt: u.CreatedAt}
}
