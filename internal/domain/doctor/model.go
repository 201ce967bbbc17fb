package doctor

import "time"

type Doctor struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone"`
	Specialty     *string   `json:"specialty"`
	LicenseNumber *string   `json:"licenseNumber"`
	HireDate      *string   `json:"hireDate"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateDoctorRequest struct {
	FirstName     string  `json:"firstName" validate:"required,max=64"`
	LastName      string  `json:"lastName" validate:"required,max=64"`
	Email         string  `json:"email" validate:"required,email,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=15"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=50"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=30"`
	HireDate      *string `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateDoctorRequest struct {
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=64"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=64"`
	Email         *string `json:"email" validate:"omitempty,email,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=15"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=50"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=30"`
	HireDate      *string `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdateDoctorRequest) apply(d *Doctor) {
	if r.FirstName != nil {
		d.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		d.LastName = *r.LastName
	}
	if r.Email != nil {
		d.Email = *r.Email
	}
	if r.Phone != nil {
		d.Phone = r.Phone
	}
	if r.Specialty != nil {
		d.Specialty = r.Specialty
	}
	if r.LicenseNumber != nil {
		d.LicenseNumber = r.LicenseNumber
	}
	if r.HireDate != nil {
		d.HireDate = r.HireDate
	}
}
