package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medconnect/clinic/internal/platform/auth"
)

// AccessEntry records who touched which patient-data resource.
type AccessEntry struct {
	UserID     int64
	DoctorID   int64
	Resource   string
	ResourceID int64
	PatientID  int64
	Action     string // read, create, update, delete
	IPAddress  string
	Path       string
	Method     string
	StatusCode int
	RequestID  string
	Timestamp  time.Time
}

// auditedResources are the /api collections holding patient data.
var auditedResources = map[string]bool{
	"patients":  true,
	"records":   true,
	"referrals": true,
}

// Audit emits a structured "patient_data_access" event for every request to
// a patient-data collection. It must run after the auth middleware so the
// caller identity is known.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			resource, rest := splitAPIPath(req.URL.Path)
			if !auditedResources[resource] {
				return next(c)
			}

			err := next(c)

			entry := AccessEntry{
				Timestamp:  time.Now().UTC(),
				Resource:   resource,
				Action:     httpMethodToAction(req.Method),
				IPAddress:  c.RealIP(),
				Path:       req.URL.Path,
				Method:     req.Method,
				StatusCode: c.Response().Status,
			}
			if err != nil {
				entry.StatusCode = errorStatus(err)
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}
			if id, ok := auth.IdentityFromContext(req.Context()); ok {
				entry.UserID = id.UserID
				entry.DoctorID = id.DoctorID
			}
			entry.ResourceID, entry.PatientID = extractIDs(resource, rest)

			evt := logger.Info()
			if entry.StatusCode == http.StatusForbidden {
				evt = logger.Warn()
			}
			evt.
				Str("type", "patient_data_access").
				Str("request_id", entry.RequestID).
				Int64("user_id", entry.UserID).
				Int64("doctor_id", entry.DoctorID).
				Str("resource", entry.Resource).
				Int64("resource_id", entry.ResourceID).
				Int64("patient_id", entry.PatientID).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("patient_data_access")

			return err
		}
	}
}

func httpMethodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// splitAPIPath splits /api/<resource>/<rest...> into its parts.
func splitAPIPath(path string) (string, []string) {
	if !strings.HasPrefix(path, "/api/") {
		return "", nil
	}
	segments := strings.Split(strings.Trim(strings.TrimPrefix(path, "/api/"), "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", nil
	}
	return segments[0], segments[1:]
}

// extractIDs pulls the numeric resource id and, where the path names one, the
// patient id.
//
//	/api/patients/7              -> resource 7, patient 7
//	/api/records/patient/7       -> patient 7
//	/api/referrals/3/accept      -> resource 3
func extractIDs(resource string, rest []string) (resourceID, patientID int64) {
	if len(rest) == 0 {
		return 0, 0
	}
	if resource == "records" && rest[0] == "patient" && len(rest) > 1 {
		return 0, parseID(rest[1])
	}
	resourceID = parseID(rest[0])
	if resource == "patients" {
		patientID = resourceID
	}
	return resourceID, patientID
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
