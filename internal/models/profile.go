package models

// Profile carries the role-specific part of an account. The concrete type decides the role.
type Profile interface {
	Role() Role
	isProfile()
}

// StartupProfile holds the fields a startup supplies at sign-up.
type StartupProfile struct {
	Website            string `json:"website,omitempty"`
	CompanyLogo        string `json:"companyLogo,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
}

// InvestorProfile holds the fields an investor supplies at sign-up.
type InvestorProfile struct {
	Position        string `json:"position,omitempty"`
	InvestmentFocus string `json:"investmentFocus,omitempty"`
}

// AdminProfile describes the system administrator.
type AdminProfile struct {
	CompanyDescription string `json:"companyDescription,omitempty"`
}

func (StartupProfile) Role() Role  { return RoleStartup }
func (InvestorProfile) Role() Role { return RoleInvestor }
func (AdminProfile) Role() Role    { return RoleAdmin }

func (StartupProfile) isProfile()  {}
func (InvestorProfile) isProfile() {}
func (AdminProfile) isProfile()    {}

// ProfileColumns is the flat, column-shaped form of every profile variant.
type ProfileColumns struct {
	Website            string
	CompanyLogo        string
	CompanyDescription string
	Position           string
	InvestmentFocus    string
}

// Columns flattens a profile for storage. Fields foreign to the variant stay empty.
func Columns(p Profile) ProfileColumns {
	switch v := p.(type) {
	case StartupProfile:
		return ProfileColumns{Website: v.Website, CompanyLogo: v.CompanyLogo, CompanyDescription: v.CompanyDescription}
	case InvestorProfile:
		return ProfileColumns{Position: v.Position, InvestmentFocus: v.InvestmentFocus}
	case AdminProfile:
		return ProfileColumns{CompanyDescription: v.CompanyDescription}
	default:
		return ProfileColumns{}
	}
}

// ProfileForRole rebuilds the variant for role from stored columns.
func ProfileForRole(role Role, c ProfileColumns) Profile {
	switch role {
	case RoleStartup:
		return StartupProfile{Website: c.Website, CompanyLogo: c.CompanyLogo, CompanyDescription: c.CompanyDescription}
	case RoleInvestor:
		return InvestorProfile{Position: c.Position, InvestmentFocus: c.InvestmentFocus}
	case RoleAdmin:
		return AdminProfile{CompanyDescription: c.CompanyDescription}
	default:
		return nil
	}
}
