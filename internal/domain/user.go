package domain

import "time"

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User описывает зарегистрированного пользователя
type User struct {
	ID             string // uuid
	Name           string
	Email          string
	Role           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func NewUser(id, name, email, role, hashedPassword string) *User {
	return &User{
		ID:             id,
		Name:           name,
		Email:          email,
		Role:           role,
		HashedPassword: hashedPassword,
	}
}

// IsAdmin сообщает, имеет ли пользователь права администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
