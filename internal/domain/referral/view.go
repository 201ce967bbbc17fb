package referral

import "context"

// The functions below derive a doctor's view of a referral set. They hold no
// state; callers pass the current full set every time.

// SentBy returns the referrals doctorID referred out.
func SentBy(refs []*Referral, doctorID int64) []*Referral {
	return filter(refs, func(r *Referral) bool { return r.ReferringDoctorID == doctorID })
}

// ReceivedBy returns the referrals addressed to doctorID. A self-referral is
// in both SentBy and ReceivedBy.
func ReceivedBy(refs []*Referral, doctorID int64) []*Referral {
	return filter(refs, func(r *Referral) bool { return r.ReferredDoctorID == doctorID })
}

// PendingInbox returns the received referrals still awaiting acceptance.
func PendingInbox(refs []*Referral, doctorID int64) []*Referral {
	return filter(ReceivedBy(refs, doctorID), func(r *Referral) bool { return r.Status == StatusPending })
}

// DirectionOf reports how ref relates to doctorID. Sent wins for a
// self-referral.
func DirectionOf(ref *Referral, doctorID int64) Direction {
	switch {
	case ref.ReferringDoctorID == doctorID:
		return DirectionSent
	case ref.ReferredDoctorID == doctorID:
		return DirectionReceived
	default:
		return DirectionUnknown
	}
}

func filter(refs []*Referral, keep func(*Referral) bool) []*Referral {
	out := []*Referral{}
	for _, r := range refs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func withDirection(refs []*Referral, doctorID int64) []DoctorReferral {
	out := make([]DoctorReferral, 0, len(refs))
	for _, r := range refs {
		out = append(out, DoctorReferral{Referral: *r, Direction: DirectionOf(r, doctorID)})
	}
	return out
}

// Sent lists the referrals doctorID sent, recomputed from the store.
func (s *Service) Sent(ctx context.Context, doctorID int64) ([]DoctorReferral, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return withDirection(SentBy(all, doctorID), doctorID), nil
}

func (s *Service) Received(ctx context.Context, doctorID int64) ([]DoctorReferral, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return withDirection(ReceivedBy(all, doctorID), doctorID), nil
}

// Inbox returns doctorID's pending referrals and their count.
func (s *Service) Inbox(ctx context.Context, doctorID int64) (*Inbox, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := withDirection(PendingInbox(all, doctorID), doctorID)
	return &Inbox{Count: len(pending), Referrals: pending}, nil
}
