package models

// Credentials is the login request body.
type Credentials struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// SessionUser is the account summary returned to the client after login or verify.
type SessionUser struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Avatar     *string `json:"avatar,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
}

// NewSessionUser strips an employee down to what the client session needs.
func NewSessionUser(e *Employee) SessionUser {
	return SessionUser{
		ID:         e.ID,
		EmployeeID: e.EmployeeCode,
		Name:       e.Name,
		Role:       e.Role,
		Avatar:     e.Avatar,
		Phone:      e.Phone,
		Email:      e.Email,
	}
}
