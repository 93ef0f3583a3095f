package httpbind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	verdict "github.com/verdict-go/verdict"
	d "github.com/verdict-go/verdict/dsl"
	"github.com/verdict-go/verdict/httpbind"
)

func signupSchema() verdict.Schema[map[string]any] {
	return d.Object().
		Field("name", d.StringOf[string]().MinLen(1)).
		Field("email", d.StringOf[string]().Email()).
		Require("name", "email").
		UnknownStrict().
		MustBuild()
}

func newRouter(t *testing.T, invoked *bool) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.With(httpbind.Middleware(signupSchema())).Post("/signup", func(w http.ResponseWriter, req *http.Request) {
		*invoked = true
		v, ok := httpbind.FromContext[map[string]any](req.Context())
		if !ok {
			t.Fatalf("validated value missing from context")
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"name": v["name"]})
	})
	return r
}

func TestMiddleware_ValidBodyReachesHandler(t *testing.T) {
	var invoked bool
	r := newRouter(t, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !invoked {
		t.Fatalf("handler was not invoked")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response decode: %v", err)
	}
	if out["name"] != "Ada" {
		t.Fatalf("handler saw wrong value: %v", out)
	}
}

func TestMiddleware_InvalidBodyShortCircuits(t *testing.T) {
	var invoked bool
	r := newRouter(t, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"nope"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if invoked {
		t.Fatalf("handler must not run on invalid input")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
		Root   []string            `json:"root"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if payload.Error != "validation_failed" {
		t.Fatalf("unexpected error tag: %q", payload.Error)
	}
	if len(payload.Fields["/name"]) == 0 || len(payload.Fields["/email"]) == 0 {
		t.Fatalf("expected messages for /name and /email, got %v", payload.Fields)
	}
}

func TestMiddleware_MalformedJSONIsRootIssue(t *testing.T) {
	var invoked bool
	r := newRouter(t, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if invoked || rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invoked=%v status=%d", invoked, rec.Code)
	}
	var payload struct {
		Root []string `json:"root"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if len(payload.Root) == 0 {
		t.Fatalf("malformed body should surface as a root message: %s", rec.Body.String())
	}
}

func TestDecode_NumbersStayPrecise(t *testing.T) {
	s := d.Object().
		Field("quantity", d.IntOf[int64]()).
		Require("quantity").
		MustBuild()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":9007199254740993}`))
	v, err := httpbind.Decode(req, s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v["quantity"] != int64(9007199254740993) {
		t.Fatalf("precision lost: %v (%T)", v["quantity"], v["quantity"])
	}
}

func TestCheck_ReportsOutcomeAsValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	res := httpbind.Check(req, signupSchema())
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	fl := res.Flatten()
	if !fl.Has("/name") || !fl.Has("/email") {
		t.Fatalf("expected both required fields flagged: %v", fl)
	}
}
