package store

// UserRole mirrors the account types of the back office.
type UserRole string

const (
	UserRoleOwner  UserRole = "PROPIETARIO"
	UserRoleTenant UserRole = "ARRENDATARIO"
	UserRoleAdmin  UserRole = "ADMINISTRADOR"
)

// AccountStatus indicates whether a user may sign in.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVA"
	AccountStatusSuspended AccountStatus = "SUSPENDIDA"
)

// User is a registered resident or administrator of a condominium.
type User struct {
	ID            int32
	CondominiumID int32
	FirstNames    string
	LastName      string
	RUT           string
	Email         string
	Phone         string
	Residence     string
	PasswordHash  string
	Role          UserRole
	AccountStatus AccountStatus
	CreatedTs     int64
	UpdatedTs     int64

	// Populated by ListUsers with a JOIN.
	CondominiumName string
}

// FullName returns the display name used in tool payloads.
func (u *User) FullName() string {
	return u.FirstNames + " " + u.LastName
}

type FindUser struct {
	ID                  *int32
	Email               *string
	CondominiumID       *int32
	FirstNamesLike      *string
	LastNameLike        *string
	CondominiumNameLike *string
}
