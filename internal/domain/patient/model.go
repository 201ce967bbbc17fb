package patient

import "time"

type Patient struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DOB            string    `json:"dob"` // YYYY-MM-DD
	Gender         *string   `json:"gender"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Address        *string   `json:"address"`
	EmergencyName  *string   `json:"emergencyName"`
	EmergencyPhone *string   `json:"emergencyPhone"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreatePatientRequest struct {
	FirstName      string  `json:"firstName" validate:"required,max=64"`
	LastName       string  `json:"lastName" validate:"required,max=64"`
	DOB            string  `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender         *string `json:"gender" validate:"omitempty,max=10"`
	Email          *string `json:"email" validate:"omitempty,email,max=120"`
	Phone          *string `json:"phone" validate:"omitempty,max=15"`
	Address        *string `json:"address"`
	EmergencyName  *string `json:"emergencyName" validate:"omitempty,max=64"`
	EmergencyPhone *string `json:"emergencyPhone" validate:"omitempty,max=15"`
}

type UpdatePatientRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,min=1,max=64"`
	LastName       *string `json:"lastName" validate:"omitempty,min=1,max=64"`
	DOB            *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" validate:"omitempty,max=10"`
	Email          *string `json:"email" validate:"omitempty,email,max=120"`
	Phone          *string `json:"phone" validate:"omitempty,max=15"`
	Address        *string `json:"address"`
	EmergencyName  *string `json:"emergencyName" validate:"omitempty,max=64"`
	EmergencyPhone *string `json:"emergencyPhone" validate:"omitempty,max=15"`
}

func (r UpdatePatientRequest) apply(p *Patient) {
	if r.FirstName != nil {
		p.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		p.LastName = *r.LastName
	}
	if r.DOB != nil {
		p.DOB = *r.DOB
	}
	if r.Gender != nil {
		p.Gender = r.Gender
	}
	if r.Email != nil {
		p.Email = r.Email
	}
	if r.Phone != nil {
		p.Phone = r.Phone
	}
	if r.Address != nil {
		p.Address = r.Address
	}
	if r.EmergencyName != nil {
		p.EmergencyName = r.EmergencyName
	}
	if r.EmergencyPhone != nil {
		p.EmergencyPhone = r.EmergencyPhone
	}
}
