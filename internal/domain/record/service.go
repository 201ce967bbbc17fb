package record

import (
	"context"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a record. Unknown patient or doctor ids surface as
// validation errors from the store.
func (s *Service) Create(ctx context.Context, req CreateRecordRequest) (*MedicalRecord, error) {
	m := &MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		VisitType:     req.VisitType,
		Diagnosis:     req.Diagnosis,
		TreatmentPlan: req.TreatmentPlan,
		Allergies:     req.Allergies,
		Vitals:        req.Vitals,
		LabResults:    req.LabResults,
		Notes:         req.Notes,
	}
	if err := validateRecord(m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*MedicalRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRecordRequest) (*MedicalRecord, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(m)
	if err := validateRecord(m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateRecord(m *MedicalRecord) error {
	if m.PatientID <= 0 {
		return apperr.Validation("patientId is required")
	}
	if m.DoctorID <= 0 {
		return apperr.Validation("doctorId is required")
	}
	return nil
}
