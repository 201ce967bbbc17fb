package referral

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a referral.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts the lowercase wire values only.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusAccepted, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// NormalizeStatus maps a stored status to its lifecycle value. A missing
// value is pending.
func NormalizeStatus(stored *string) Status {
	if stored == nil || *stored == "" {
		return StatusPending
	}
	return Status(*stored)
}

type Referral struct {
	ID                int64     `json:"id"`
	PatientID         int64     `json:"patientId"`
	ReferringDoctorID int64     `json:"referringDoctorId"`
	ReferredDoctorID  int64     `json:"referredDoctorId"`
	DateTime          time.Time `json:"dateTime"`
	Status            Status    `json:"status"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IsParticipant reports whether doctorID is the referring or referred doctor.
func (r *Referral) IsParticipant(doctorID int64) bool {
	return doctorID > 0 && (r.ReferringDoctorID == doctorID || r.ReferredDoctorID == doctorID)
}

// Direction is a referral's orientation relative to one doctor.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
	DirectionUnknown  Direction = "unknown"
)

// DoctorReferral is a referral as seen by one doctor.
type DoctorReferral struct {
	Referral
	Direction Direction `json:"direction"`
}

// Inbox is the pending-referral notification set for a doctor.
type Inbox struct {
	Count     int              `json:"count"`
	Referrals []DoctorReferral `json:"referrals"`
}

type CreateReferralRequest struct {
	PatientID         int64   `json:"patientId" validate:"required,gt=0"`
	ReferringDoctorID int64   `json:"referringDoctorId" validate:"required,gt=0"`
	ReferredDoctorID  int64   `json:"referredDoctorId" validate:"required,gt=0"`
	DateTime          string  `json:"dateTime" validate:"required"`
	Notes             *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateReferralRequest is a partial update. A status change is routed
// through the transition rules; the other fields are overwritten as given.
type UpdateReferralRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=pending accepted completed"`
	DateTime *string `json:"dateTime"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// dateTimeLayouts are tried in order. Values without a zone are UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses the scheduled instant of a referral.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}
