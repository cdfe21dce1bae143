package model

import "time"

// Role identifiers as stored in the roles table.  Authorization is a
// simple ordering: a user may access an endpoint when their role id is
// greater than or equal to the endpoint's minimum role.
const (
    RoleCustomer uint8 = 1 // regular ticket buyer
    RoleManager  uint8 = 2 // cinema content manager
    RoleAdmin    uint8 = 3 // full administrative access
)

// RoleName maps a role id to its canonical name.  Unknown ids map to
// an empty string.
func RoleName(id uint8) string {
    switch id {
    case RoleCustomer:
        return "CUSTOMER"
    case RoleManager:
        return "MANAGER"
    case RoleAdmin:
        return "ADMIN"
    }
    return ""
}

// User represents an account able to authenticate and buy tickets.
// This struct corresponds to a row in the `users` table.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login email (stored lower-case).
//  PasswordHash – bcrypt hash of the password.
//  RoleID       – FK to roles; see the Role* constants.
//  IsActive     – soft-disable flag for accounts.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    RoleID       uint8     // users.role_id
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
