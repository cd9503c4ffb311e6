package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Career       string    `json:"career"`
	Term         int       `json:"term"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRepository interface {
	FindByID(id string) (*User, error)
	FindByUID(uid string) (*User, error)
	FindByEmail(email string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	Delete(id string) error
}

type UserService interface {
	Register(uid, name, surname, email, password, career string, term int) (*User, error)
	Login(email, password string) (*User, error)
	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateProfile(user *User) error
	DeleteUser(id string) error
}
