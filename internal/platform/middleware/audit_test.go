package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medconnect/clinic/internal/platform/apperr"
	"github.com/medconnect/clinic/internal/platform/auth"
)

func newTestContext(method, path string, opts ...func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func withDoctor(userID, doctorID int64) func(*http.Request) {
	return func(req *http.Request) {
		*req = *req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: userID, DoctorID: doctorID}))
	}
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// auditEvents decodes every patient_data_access line written to buf.
func auditEvents(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var evt map[string]interface{}
		if err := dec.Decode(&evt); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if evt["type"] == "patient_data_access" {
			events = append(events, evt)
		}
	}
	return events
}

func TestAudit_PatientRead(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c, _ := newTestContext(http.MethodGet, "/api/patients/7", withDoctor(3, 1))
	c.Set("request_id", "req-abc")

	if err := Audit(logger)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := auditEvents(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(events))
	}
	evt := events[0]
	if evt["resource"] != "patients" {
		t.Errorf("expected resource patients, got %v", evt["resource"])
	}
	if evt["patient_id"] != float64(7) {
		t.Errorf("expected patient_id 7, got %v", evt["patient_id"])
	}
	if evt["doctor_id"] != float64(1) || evt["user_id"] != float64(3) {
		t.Errorf("unexpected identity fields %v %v", evt["doctor_id"], evt["user_id"])
	}
	if evt["action"] != "read" || evt["request_id"] != "req-abc" {
		t.Errorf("unexpected event %v", evt)
	}
	if evt["status"] != float64(http.StatusOK) {
		t.Errorf("expected status 200, got %v", evt["status"])
	}
}

func TestAudit_ReferralTransitionDenied(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c, _ := newTestContext(http.MethodPost, "/api/referrals/3/accept", withDoctor(0, 9))
	handler := func(c echo.Context) error {
		return apperr.NotAuthorized("only the referred doctor may accept")
	}

	err := Audit(logger)(handler)(c)
	if err == nil {
		t.Fatal("expected handler error to propagate")
	}

	events := auditEvents(t, &buf)
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(events))
	}
	if events[0]["status"] != float64(http.StatusForbidden) {
		t.Errorf("expected status 403, got %v", events[0]["status"])
	}
	if events[0]["resource_id"] != float64(3) || events[0]["action"] != "create" {
		t.Errorf("unexpected event %v", events[0])
	}
	if events[0]["level"] != "warn" {
		t.Errorf("expected warn level, got %v", events[0]["level"])
	}
}

func TestAudit_SkipsOtherPaths(t *testing.T) {
	for _, path := range []string{"/health", "/api/doctors/1", "/api/auth/login", "/"} {
		t.Run(path, func(t *testing.T) {
			var buf bytes.Buffer
			c, _ := newTestContext(http.MethodGet, path)
			if err := Audit(zerolog.New(&buf))(okHandler)(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n := len(auditEvents(t, &buf)); n != 0 {
				t.Errorf("expected no audit events, got %d", n)
			}
		})
	}
}

func TestHttpMethodToAction(t *testing.T) {
	tests := map[string]string{
		http.MethodGet:    "read",
		http.MethodHead:   "read",
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodPatch:  "update",
		http.MethodDelete: "delete",
	}
	for method, want := range tests {
		if got := httpMethodToAction(method); got != want {
			t.Errorf("httpMethodToAction(%s) = %s, want %s", method, got, want)
		}
	}
}

func TestExtractIDs(t *testing.T) {
	tests := []struct {
		path         string
		wantResource int64
		wantPatient  int64
	}{
		{"/api/patients", 0, 0},
		{"/api/patients/12", 12, 12},
		{"/api/records/5", 5, 0},
		{"/api/records/patient/8", 0, 8},
		{"/api/referrals/3/complete", 3, 0},
		{"/api/referrals/inbox", 0, 0},
		{"/api/referrals/-1", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resource, rest := splitAPIPath(tt.path)
			gotResource, gotPatient := extractIDs(resource, rest)
			if gotResource != tt.wantResource || gotPatient != tt.wantPatient {
				t.Errorf("got (%d, %d), want (%d, %d)", gotResource, gotPatient, tt.wantResource, tt.wantPatient)
			}
		})
	}
}
