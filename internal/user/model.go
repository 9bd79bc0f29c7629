package user

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusBlocked  Status = "Blocked"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      Role       `json:"role"`
	Status    Status     `json:"status"`
	Avatar    string     `json:"avatar"`
	MobileNo  *string    `json:"mobileNo,omitempty"`
	Country   *string    `json:"country,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UpdateParams carries a partial user update. Nil means "leave unchanged";
// a present pointer always wins, even when it points at an empty value.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Avatar   *string
	MobileNo *string
	Country  *string
	DOB      *time.Time
}
