package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

type mockPatientRepo struct {
	items  map[int64]*Patient
	nextID int64
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{items: make(map[int64]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("Patient")
	}
	cp := *p
	return &cp, nil
}

func (m *mockPatientRepo) List(_ context.Context) ([]*Patient, error) {
	result := []*Patient{}
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.items[p.ID]; !ok {
		return apperr.NotFound("Patient")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperr.NotFound("Patient")
	}
	delete(m.items, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestService_CreatePatient(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	p, err := svc.Create(context.Background(), CreatePatientRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		DOB:       "1985-04-12",
		Gender:    strPtr("female"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected ID to be set")
	}
	if p.DOB != "1985-04-12" {
		t.Errorf("expected dob to round trip, got %q", p.DOB)
	}
}

func TestService_CreatePatient_MissingFields(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	tests := []struct {
		name string
		req  CreatePatientRequest
	}{
		{"first name", CreatePatientRequest{LastName: "Doe", DOB: "1985-04-12"}},
		{"blank first name", CreatePatientRequest{FirstName: "  ", LastName: "Doe", DOB: "1985-04-12"}},
		{"last name", CreatePatientRequest{FirstName: "Jane", DOB: "1985-04-12"}},
		{"dob", CreatePatientRequest{FirstName: "Jane", LastName: "Doe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_UpdatePatient(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	ctx := context.Background()
	p, _ := svc.Create(ctx, CreatePatientRequest{FirstName: "Jane", LastName: "Doe", DOB: "1985-04-12"})

	updated, err := svc.Update(ctx, p.ID, UpdatePatientRequest{
		Address:        strPtr("12 Main St"),
		EmergencyName:  strPtr("John Doe"),
		EmergencyPhone: strPtr("555-0199"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Jane" || updated.DOB != "1985-04-12" {
		t.Errorf("expected untouched fields to be kept, got %+v", updated)
	}
	if updated.Address == nil || *updated.Address != "12 Main St" {
		t.Error("expected address to be updated")
	}

	if _, err := svc.Update(ctx, p.ID, UpdatePatientRequest{LastName: strPtr(" ")}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, 404, UpdatePatientRequest{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_DeletePatient(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	ctx := context.Background()
	p, _ := svc.Create(ctx, CreatePatientRequest{FirstName: "Jane", LastName: "Doe", DOB: "1985-04-12"})

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}
