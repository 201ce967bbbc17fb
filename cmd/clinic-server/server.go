package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medconnect/clinic/internal/config"
	"github.com/medconnect/clinic/internal/domain/doctor"
	"github.com/medconnect/clinic/internal/domain/patient"
	"github.com/medconnect/clinic/internal/domain/record"
	"github.com/medconnect/clinic/internal/domain/referral"
	"github.com/medconnect/clinic/internal/domain/user"
	"github.com/medconnect/clinic/internal/platform/auth"
	"github.com/medconnect/clinic/internal/platform/db"
	"github.com/medconnect/clinic/internal/platform/middleware"
	"github.com/medconnect/clinic/internal/platform/validate"
)

// Login and register attempts allowed per client IP, per second.
const (
	authRateLimit = 5
	authBurst     = 10
)

// newServer wires middleware and every route except /health/db, which needs
// a live pool.
func newServer(cfg *config.Config, q db.Querier, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader, auth.DoctorIDHeader, auth.UserIDHeader},
	}))

	issuer := tokenIssuer(cfg)
	if cfg.ResolvedAuthMode() == config.AuthModeDevelopment {
		e.Use(auth.DevAuthMiddleware(issuer, auth.AuthSkipper))
	} else {
		e.Use(auth.JWTMiddleware(issuer, auth.AuthSkipper))
	}
	e.Use(middleware.Audit(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	public := e.Group("/api/auth", echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(authRateLimit),
			Burst:     authBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many attempts, try again later")
		},
	}))
	api := e.Group("/api", auth.RequireAuthenticated())

	doctors := doctor.NewRepoPG(q)
	user.NewHandler(user.NewService(user.NewRepoPG(q), doctors, issuer, logger)).RegisterRoutes(public, api)
	doctor.NewHandler(doctor.NewService(doctors)).RegisterRoutes(api)
	patient.NewHandler(patient.NewService(patient.NewRepoPG(q))).RegisterRoutes(api)
	record.NewHandler(record.NewService(record.NewRepoPG(q))).RegisterRoutes(api)

	referralSvc := referral.NewService(referral.NewRepoPG(q), logger,
		referral.WithSelfReferral(cfg.AllowSelfReferral))
	referral.NewHandler(referralSvc).RegisterRoutes(api)

	return e
}

// tokenIssuer is nil when no signing key is configured; login then returns
// the user without a token.
func tokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	if cfg.JWTSigningKey == "" {
		return nil
	}
	return auth.NewTokenIssuer(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTTTL)
}
