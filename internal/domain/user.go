package domain

// Role represents the user's permission level.
type Role string

const (
	// RoleUser is a regular borrower.
	RoleUser Role = "user"
	// RoleAdmin grants the back-office operations.
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account holder. Email is unique per account.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Address      string `json:"address,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, stripped by Public
}

// IsAdmin returns true if the user may use the back-office operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy safe to hand to callers.
func (u *User) Public() *User {
	out := *u
	out.PasswordHash = ""
	return &out
}

// AuthResult is what a successful login or registration yields.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// DashboardStats summarises the collection for the admin dashboard.
type DashboardStats struct {
	TotalBooks      int `json:"totalBooks"`
	TotalCopies     int `json:"totalCopies"`
	AvailableCopies int `json:"availableCopies"`
	TotalUsers      int `json:"totalUsers"`
	ActiveLoans     int `json:"activeLoans"`
	OverdueLoans    int `json:"overdueLoans"`
}
