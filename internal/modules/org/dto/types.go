package dto

import "time"

type ListInput struct {
	ForceRefresh bool
}

type CategoryOutput struct {
	ID   string
	Name string
	Tags []string
}

type CreateCategoryInput struct {
	Name string
	Tags []string
}

type UpdateCategoryInput struct {
	ID   string
	Name string
	Tags []string
}

type UserOutput struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateUserInput struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Active bool
}
