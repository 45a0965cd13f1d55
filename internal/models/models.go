package models

import (
	"time"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Name         string `json:"name" db:"name"`
	Surname      string `json:"surname" db:"surname"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type Item struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

type ItemInput struct {
	Name        string  `validate:"required"`
	Description *string
}

type Blog struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Desc      string     `json:"desc" db:"desc"`
	CreatedBy int64      `json:"createdby" db:"createdby"`
	ImagePath *string    `json:"imagepath" db:"imagepath"`
	CreatedOn *time.Time `json:"createdon" db:"createdon"`
}

type BlogInput struct {
	Name      string `validate:"required"`
	Desc      string `validate:"required"`
	ImagePath *string
}
