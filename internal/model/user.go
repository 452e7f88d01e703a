package model

// Roles assigned at signup. The very first account in the system becomes
// the admin; everyone after that is a regular user. The role is fixed at
// creation and currently grants no extra authority in the mutation paths.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an application user record as stored in the `users`
// table. PasswordHash is never serialized; handlers return the public
// projection only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on events the user owns.
//  Email        – unique email address (stored as given, case-sensitive).
//  PasswordHash – bcrypt hashed password.
//  Role         – "admin" or "user".
type User struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
