package referral

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "completed"} {
		got, err := ParseStatus(s)
		if err != nil || string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	for _, s := range []string{"", "Pending", "rejected", "cancelled"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	empty := ""
	accepted := "accepted"
	if got := NormalizeStatus(nil); got != StatusPending {
		t.Errorf("expected nil to read as pending, got %q", got)
	}
	if got := NormalizeStatus(&empty); got != StatusPending {
		t.Errorf("expected empty to read as pending, got %q", got)
	}
	if got := NormalizeStatus(&accepted); got != StatusAccepted {
		t.Errorf("expected accepted, got %q", got)
	}
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T10:00", want},
		{"2024-03-01T10:00:00", want},
		{"2024-03-01T10:00:00Z", want},
		{"2024-03-01T12:00:00+02:00", want},
		{"2024-03-01 10:00", want},
		{" 2024-03-01T10:00 ", want},
	}
	for _, tt := range tests {
		got, err := ParseDateTime(tt.in)
		if err != nil {
			t.Errorf("ParseDateTime(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) || got.Location() != time.UTC {
			t.Errorf("ParseDateTime(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "2024-03-01", "03/01/2024 10:00", "tomorrow"} {
		if _, err := ParseDateTime(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDoctorReferral_JSON(t *testing.T) {
	dr := DoctorReferral{
		Referral:  Referral{ID: 3, PatientID: 7, ReferringDoctorID: 1, ReferredDoctorID: 2, Status: StatusPending},
		Direction: DirectionReceived,
	}
	b, err := json.Marshal(dr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["direction"] != "received" || out["status"] != "pending" || out["referredDoctorId"] != float64(2) {
		t.Errorf("unexpected JSON %s", b)
	}
	if _, ok := out["notes"]; ok {
		t.Error("expected notes to be omitted when absent")
	}
}

func TestIsParticipant(t *testing.T) {
	r := &Referral{ReferringDoctorID: 1, ReferredDoctorID: 2}
	if !r.IsParticipant(1) || !r.IsParticipant(2) {
		t.Error("expected both doctors to be participants")
	}
	if r.IsParticipant(3) || r.IsParticipant(0) {
		t.Error("expected outsiders not to be participants")
	}
}
