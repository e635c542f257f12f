package google

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	calendar "google.golang.org/api/calendar/v3"
	"golang.org/x/oauth2"
)

// fakeGoogle serves a token endpoint with single-use codes and a Calendar
// events.insert endpoint that only accepts live access tokens.
type fakeGoogle struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	codes         map[string]bool
	liveTokens    map[string]bool
	expiresIn     int
	refreshCount  int
	lastEventBody string
	lastAuth      string
}

func newFakeGoogle(t *testing.T, codes ...string) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{
		t:          t,
		codes:      make(map[string]bool),
		liveTokens: make(map[string]bool),
		expiresIn:  3600,
	}
	for _, c := range codes {
		f.codes[c] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", f.handleToken)
	mux.HandleFunc("/calendar/v3/calendars/", f.handleInsert)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGoogle) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   f.server.URL + "/auth",
		TokenURL:  f.server.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (f *fakeGoogle) calendarEndpoint() string {
	return f.server.URL + "/calendar/v3/"
}

func (f *fakeGoogle) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeGoogle) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		f.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if r.PostForm.Get("client_id") != "client-id" || r.PostForm.Get("client_secret") != "client-secret" {
		f.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		code := r.PostForm.Get("code")
		if !f.codes[code] {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_grant",
				"error_description": "Bad Request",
			})
			return
		}
		delete(f.codes, code)
		access := "access-" + code
		f.liveTokens[access] = true
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token":  access,
			"refresh_token": "refresh-" + code,
			"token_type":    "Bearer",
			"expires_in":    f.expiresIn,
		})

	case "refresh_token":
		f.refreshCount++
		access := "refreshed-" + r.PostForm.Get("refresh_token")
		f.liveTokens[access] = true
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": access,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})

	default:
		f.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (f *fakeGoogle) handleInsert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/events") {
		http.NotFound(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)
	auth := r.Header.Get("Authorization")

	f.mu.Lock()
	f.lastEventBody = string(body)
	f.lastAuth = auth
	live := f.liveTokens[strings.TrimPrefix(auth, "Bearer ")]
	f.mu.Unlock()

	if !live {
		f.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error": map[string]interface{}{
				"code":    401,
				"message": "Request had invalid authentication credentials.",
			},
		})
		return
	}

	var event calendar.Event
	if err := json.Unmarshal(body, &event); err != nil {
		f.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"code": 400, "message": "invalid payload"},
		})
		return
	}
	event.Id = "evt123"
	event.Status = "confirmed"
	event.HtmlLink = "https://calendar.example.com/event?eid=evt123"
	f.writeJSON(w, http.StatusOK, &event)
}

func (f *fakeGoogle) revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.liveTokens, token)
}

func (f *fakeGoogle) snapshot() (body, auth string, refreshes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastEventBody, f.lastAuth, f.refreshCount
}
