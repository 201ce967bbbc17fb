package doctor

import (
	"context"
	"strings"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	d := &Doctor{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		Specialty:     req.Specialty,
		LicenseNumber: blankToNil(req.LicenseNumber),
		HireDate:      req.HireDate,
	}
	if err := validateDoctor(d); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update; fields absent from req keep their value.
func (s *Service) Update(ctx context.Context, id int64, req UpdateDoctorRequest) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(d)
	d.LicenseNumber = blankToNil(d.LicenseNumber)
	if err := validateDoctor(d); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateDoctor(d *Doctor) error {
	if d.FirstName == "" {
		return apperr.Validation("firstName is required")
	}
	if d.LastName == "" {
		return apperr.Validation("lastName is required")
	}
	if d.Email == "" {
		return apperr.Validation("email is required")
	}
	return nil
}

// blankToNil keeps empty license numbers out of the unique index.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
