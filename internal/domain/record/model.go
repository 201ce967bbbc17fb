package record

import "time"

// MedicalRecord is a single clinical visit entry for a patient.
type MedicalRecord struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patientId"`
	DoctorID      int64     `json:"doctorId"`
	CreationDate  time.Time `json:"creationDate"`
	VisitType     *string   `json:"visitType"`
	Diagnosis     *string   `json:"diagnosis"`
	TreatmentPlan *string   `json:"treatmentPlan"`
	Allergies     *string   `json:"allergies"`
	Vitals        *string   `json:"vitals"`
	LabResults    *string   `json:"labResults"`
	Notes         *string   `json:"notes"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateRecordRequest struct {
	PatientID     int64   `json:"patientId" validate:"required,gt=0"`
	DoctorID      int64   `json:"doctorId" validate:"required,gt=0"`
	VisitType     *string `json:"visitType" validate:"omitempty,max=100"`
	Diagnosis     *string `json:"diagnosis"`
	TreatmentPlan *string `json:"treatmentPlan"`
	Allergies     *string `json:"allergies"`
	Vitals        *string `json:"vitals"`
	LabResults    *string `json:"labResults"`
	Notes         *string `json:"notes"`
}

type UpdateRecordRequest struct {
	PatientID     *int64  `json:"patientId" validate:"omitempty,gt=0"`
	DoctorID      *int64  `json:"doctorId" validate:"omitempty,gt=0"`
	VisitType     *string `json:"visitType" validate:"omitempty,max=100"`
	Diagnosis     *string `json:"diagnosis"`
	TreatmentPlan *string `json:"treatmentPlan"`
	Allergies     *string `json:"allergies"`
	Vitals        *string `json:"vitals"`
	LabResults    *string `json:"labResults"`
	Notes         *string `json:"notes"`
}

func (r UpdateRecordRequest) apply(m *MedicalRecord) {
	if r.PatientID != nil {
		m.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		m.DoctorID = *r.DoctorID
	}
	if r.VisitType != nil {
		m.VisitType = r.VisitType
	}
	if r.Diagnosis != nil {
		m.Diagnosis = r.Diagnosis
	}
	if r.TreatmentPlan != nil {
		m.TreatmentPlan = r.TreatmentPlan
	}
	if r.Allergies != nil {
		m.Allergies = r.Allergies
	}
	if r.Vitals != nil {
		m.Vitals = r.Vitals
	}
	if r.LabResults != nil {
		m.LabResults = r.LabResults
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
}
