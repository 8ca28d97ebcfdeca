package dto

import "github.com/hongminglow/ideax-be/internal/models"

type StartupSignUpRequest struct {
	FullName           string `json:"fullName"`
	CompanyName        string `json:"companyName"`
	Email              string `json:"email"`
	Website            string `json:"website"`
	CompanyLogo        string `json:"companyLogo"`
	CompanyDescription string `json:"companyDescription"`
	Password           string `json:"password"`
	// ConfirmPassword is checked against Password when present.
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

type InvestorSignUpRequest struct {
	FullName        string `json:"fullName"`
	CompanyName     string `json:"companyName"`
	Position        string `json:"position"`
	InvestmentFocus string `json:"investmentFocus"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// SignUpResponse never carries the password digest.
type SignUpResponse struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}
