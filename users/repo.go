package users

import "errors"

var UserNotFoundErr = errors.New("user not found")

type UserRepo interface {
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	Upsert(user *User) error
}
