package user

import "time"

// User is an account that can sign in. DoctorID links the account to the
// doctor profile it acts as in the referral workflow. The link is set at
// registration from the license number and is never taken from a request.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone"`
	Specialty     *string   `json:"specialty"`
	LicenseNumber *string   `json:"licenseNumber"`
	DoctorID      *int64    `json:"doctorId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Username      string  `json:"username" validate:"required,min=3,max=64"`
	Password      string  `json:"password" validate:"required,min=6,max=72"`
	FirstName     string  `json:"firstName" validate:"required,max=64"`
	LastName      string  `json:"lastName" validate:"required,max=64"`
	Email         string  `json:"email" validate:"required,email,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=15"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=50"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=30"`
}

// LoginRequest is checked by hand so a missing field reports the same
// message as the login form expects.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *User      `json:"user"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type UpdateUserRequest struct {
	Password      *string `json:"password" validate:"omitempty,min=6,max=72"`
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=64"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=64"`
	Email         *string `json:"email" validate:"omitempty,email,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=15"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=50"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=30"`
}

func (r UpdateUserRequest) apply(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Specialty != nil {
		u.Specialty = r.Specialty
	}
	if r.LicenseNumber != nil {
		u.LicenseNumber = r.LicenseNumber
	}
}
