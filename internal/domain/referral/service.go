package referral

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

// Service owns the referral lifecycle:
//
//	pending -> accepted -> completed
//
// Only the referred doctor moves a referral forward. Any other edge is an
// invalid transition.
type Service struct {
	repo              Repository
	logger            zerolog.Logger
	allowSelfReferral bool
}

type Option func(*Service)

// WithSelfReferral permits a doctor to refer a patient to themself.
func WithSelfReferral(allow bool) Option {
	return func(s *Service) { s.allowSelfReferral = allow }
}

func NewService(repo Repository, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger.With().Str("component", "referral").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a new pending referral on behalf of actingDoctorID, who must
// be the referring doctor.
func (s *Service) Create(ctx context.Context, actingDoctorID int64, req CreateReferralRequest) (*Referral, error) {
	if req.PatientID <= 0 {
		return nil, apperr.Validation("patientId must be a positive integer")
	}
	if req.ReferringDoctorID <= 0 {
		return nil, apperr.Validation("referringDoctorId must be a positive integer")
	}
	if req.ReferredDoctorID <= 0 {
		return nil, apperr.Validation("referredDoctorId must be a positive integer")
	}
	scheduled, err := ParseDateTime(req.DateTime)
	if err != nil {
		return nil, apperr.Validation("dateTime must be an ISO 8601 date-time")
	}
	if req.ReferringDoctorID == req.ReferredDoctorID && !s.allowSelfReferral {
		return nil, apperr.Validation("a doctor cannot refer a patient to themself")
	}
	if actingDoctorID != req.ReferringDoctorID {
		return nil, apperr.NotAuthorized("referrals can only be created by the referring doctor")
	}

	ref := &Referral{
		PatientID:         req.PatientID,
		ReferringDoctorID: req.ReferringDoctorID,
		ReferredDoctorID:  req.ReferredDoctorID,
		DateTime:          scheduled,
		Status:            StatusPending,
		Notes:             req.Notes,
	}
	if err := s.repo.Create(ctx, ref); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("referral_id", ref.ID).
		Int64("patient_id", ref.PatientID).
		Int64("referring_doctor_id", ref.ReferringDoctorID).
		Int64("referred_doctor_id", ref.ReferredDoctorID).
		Msg("referral created")
	return ref, nil
}

func (s *Service) Accept(ctx context.Context, id, actingDoctorID int64) (*Referral, error) {
	return s.transition(ctx, id, actingDoctorID, StatusPending, StatusAccepted, Edits{})
}

func (s *Service) Complete(ctx context.Context, id, actingDoctorID int64) (*Referral, error) {
	return s.transition(ctx, id, actingDoctorID, StatusAccepted, StatusCompleted, Edits{})
}

func (s *Service) Get(ctx context.Context, id int64) (*Referral, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every referral, unfiltered and in no guaranteed order.
func (s *Service) ListAll(ctx context.Context) ([]*Referral, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. A status field is routed through the
// transition engine together with any dateTime and notes, so the change is
// written at once or not at all. Without a status either participant may edit
// dateTime and notes.
func (s *Service) Update(ctx context.Context, id, actingDoctorID int64, req UpdateReferralRequest) (*Referral, error) {
	var target Status
	if req.Status != nil {
		st, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, apperr.Validation("status must be one of pending, accepted, completed")
		}
		target = st
	}
	var scheduled *time.Time
	if req.DateTime != nil {
		t, err := ParseDateTime(*req.DateTime)
		if err != nil {
			return nil, apperr.Validation("dateTime must be an ISO 8601 date-time")
		}
		scheduled = &t
	}

	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ref.IsParticipant(actingDoctorID) {
		return nil, apperr.NotAuthorized("only the referring or referred doctor may update this referral")
	}

	if target != "" {
		edits := Edits{DateTime: scheduled, Notes: req.Notes}
		switch target {
		case StatusAccepted:
			return s.transition(ctx, id, actingDoctorID, StatusPending, StatusAccepted, edits)
		case StatusCompleted:
			return s.transition(ctx, id, actingDoctorID, StatusAccepted, StatusCompleted, edits)
		default:
			return nil, invalidTransition(id, ref.Status, target)
		}
	}

	if scheduled == nil && req.Notes == nil {
		return ref, nil
	}
	if scheduled != nil {
		ref.DateTime = *scheduled
	}
	if req.Notes != nil {
		ref.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// Delete removes a referral. Only its participants may delete it.
func (s *Service) Delete(ctx context.Context, id, actingDoctorID int64) error {
	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ref.IsParticipant(actingDoctorID) {
		return apperr.NotAuthorized("only the referring or referred doctor may delete this referral")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("referral_id", id).Int64("doctor_id", actingDoctorID).Msg("referral deleted")
	return nil
}

func (s *Service) transition(ctx context.Context, id, actingDoctorID int64, from, to Status, edits Edits) (*Referral, error) {
	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref.ReferredDoctorID != actingDoctorID {
		return nil, apperr.NotAuthorized("only the referred doctor may move referral %d to %s", id, to)
	}
	if ref.Status != from {
		return nil, invalidTransition(id, ref.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, from, to, edits)
	if errors.Is(err, ErrStatusChanged) {
		// Lost a race with a concurrent writer; report the state it left.
		current, getErr := s.repo.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, invalidTransition(id, current.Status, to)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("referral_id", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Int64("doctor_id", actingDoctorID).
		Msg("referral status changed")
	return updated, nil
}

func invalidTransition(id int64, current, to Status) error {
	return apperr.InvalidTransition("referral %d is %s and cannot move to %s", id, current, to)
}
