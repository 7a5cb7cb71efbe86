package model

import "time"

// Role is the fixed role of a dashboard account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleViewer  Role = "VIEWER"
)

// Admin represents a staff account allowed into the dashboard.
type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminLoginRequest is the payload for authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AdminLoginResponse is returned after successful login.
type AdminLoginResponse struct {
	Token       string       `json:"token"`
	Admin       Admin        `json:"admin"`
	Permissions []Permission `json:"permissions"`
}
