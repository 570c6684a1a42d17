package models

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

// User: a CMS account. Editors may create and edit content, only admins delete.
type User struct {
	Base
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:20;not null" json:"role"`
}

// Actor identifies who made a change; website visitors have no UserID.
type Actor struct {
	UserID string
	Name   string
}

// WebsiteActor is used for submissions from the public site.
var WebsiteActor = Actor{Name: "website"}
