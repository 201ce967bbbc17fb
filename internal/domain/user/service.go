package user

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medconnect/clinic/internal/domain/doctor"
	"github.com/medconnect/clinic/internal/platform/apperr"
	"github.com/medconnect/clinic/internal/platform/auth"
)

const msgDoctorLinked = "Doctor profile is already linked to another account"

// DoctorDirectory is the part of the doctor store registration needs to bind
// an account to its doctor profile.
type DoctorDirectory interface {
	GetByLicenseNumber(ctx context.Context, license string) (*doctor.Doctor, error)
	Create(ctx context.Context, d *doctor.Doctor) error
}

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	issuer  *auth.TokenIssuer
	logger  zerolog.Logger
}

// NewService builds the account service. A nil issuer disables token
// issuance on login.
func NewService(repo Repository, doctors DoctorDirectory, issuer *auth.TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		doctors: doctors,
		issuer:  issuer,
		logger:  logger.With().Str("component", "user").Logger(),
	}
}

// Register creates an account. With a license number the account is bound to
// the doctor holding it, which is created when missing. A doctor profile
// already bound to another account is a conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required")
	}
	u := &User{
		Username:      username,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		Specialty:     req.Specialty,
		LicenseNumber: trimmedOrNil(req.LicenseNumber),
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, apperr.Conflict("Username already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if u.LicenseNumber != nil {
		doctorID, err := s.linkDoctor(ctx, u)
		if err != nil {
			return nil, err
		}
		u.DoctorID = &doctorID
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	ev := s.logger.Info().Int64("user_id", u.ID).Str("username", u.Username)
	if u.DoctorID != nil {
		ev = ev.Int64("doctor_id", *u.DoctorID)
	}
	ev.Msg("user registered")
	return u, nil
}

// linkDoctor resolves the doctor profile for u's license number.
func (s *Service) linkDoctor(ctx context.Context, u *User) (int64, error) {
	d, err := s.doctors.GetByLicenseNumber(ctx, *u.LicenseNumber)
	switch {
	case err == nil:
		if _, err := s.repo.GetByDoctorID(ctx, d.ID); err == nil {
			s.logger.Warn().Str("username", u.Username).Int64("doctor_id", d.ID).Msg("doctor profile already linked")
			return 0, apperr.Conflict(msgDoctorLinked)
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return 0, err
		}
		return d.ID, nil
	case errors.Is(err, apperr.ErrNotFound):
		d = &doctor.Doctor{
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			Email:         u.Email,
			Phone:         u.Phone,
			Specialty:     u.Specialty,
			LicenseNumber: u.LicenseNumber,
		}
		if err := s.doctors.Create(ctx, d); err != nil {
			return 0, err
		}
		s.logger.Info().Int64("doctor_id", d.ID).Str("username", u.Username).Msg("doctor profile created for account")
		return d.ID, nil
	default:
		return 0, err
	}
}

// Login checks the credentials. Unknown usernames and wrong passwords are
// reported identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required")
	}
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Warn().Str("username", req.Username).Msg("login failed")
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	ok, err := auth.CheckPassword(u.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn().Str("username", req.Username).Msg("login failed")
		return nil, apperr.Unauthenticated("Invalid credentials")
	}

	resp := &LoginResponse{User: u}
	if s.issuer != nil {
		token, expiresAt, err := s.issuer.Issue(identityOf(u))
		if err != nil {
			return nil, err
		}
		resp.Token = token
		resp.ExpiresAt = &expiresAt
	}
	return resp, nil
}

// Me resolves the account behind id. A header-only identity carries just a
// doctor id, so the linked account is looked up instead.
func (s *Service) Me(ctx context.Context, id auth.Identity) (*User, error) {
	if id.UserID > 0 {
		return s.repo.GetByID(ctx, id.UserID)
	}
	if id.DoctorID > 0 {
		return s.repo.GetByDoctorID(ctx, id.DoctorID)
	}
	return nil, apperr.Unauthenticated("authentication required")
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Update changes the caller's own account.
func (s *Service) Update(ctx context.Context, id, actingUserID int64, req UpdateUserRequest) (*User, error) {
	if id != actingUserID {
		return nil, apperr.NotAuthorized("users can only update their own account")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(u)
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id, actingUserID int64) error {
	if id != actingUserID {
		return apperr.NotAuthorized("users can only delete their own account")
	}
	return s.repo.Delete(ctx, id)
}

func identityOf(u *User) auth.Identity {
	id := auth.Identity{UserID: u.ID, Username: u.Username}
	if u.DoctorID != nil {
		id.DoctorID = *u.DoctorID
	}
	return id
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func validateUser(u *User) error {
	if u.FirstName == "" {
		return apperr.Validation("firstName is required")
	}
	if u.LastName == "" {
		return apperr.Validation("lastName is required")
	}
	if u.Email == "" {
		return apperr.Validation("email is required")
	}
	return nil
}
