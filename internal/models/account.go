package models

import "time"

// Account is the persisted identity of one platform participant or the administrator.
// ID and CreatedAt are assigned by the store on save.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CompanyName  string    `json:"companyName"`
	Phone        string    `json:"phone,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	Profile      Profile   `json:"profile"`
}

// Role reports the account role, derived from its profile variant.
func (a Account) Role() Role {
	if a.Profile == nil {
		return ""
	}
	return a.Profile.Role()
}

// Authorities lists the capability tokens granted to the account.
func (a Account) Authorities() []string {
	role := a.Role()
	if role == "" {
		return nil
	}
	return []string{role.Authority()}
}

// Enabled reports whether the account is allowed to sign in.
func (a Account) Enabled() bool {
	return a.Status == StatusActive
}
