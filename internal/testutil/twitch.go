package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// MockTwitchUser mirrors a Helix /users entry
type MockTwitchUser struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// MockTwitchStream mirrors a Helix /streams entry
type MockTwitchStream struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserLogin    string `json:"user_login"`
	UserName     string `json:"user_name"`
	GameName     string `json:"game_name"`
	Title        string `json:"title"`
	ViewerCount  int    `json:"viewer_count"`
	StartedAt    string `json:"started_at"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MockTwitch serves /oauth2/token and the Helix /users and /streams
// endpoints from in-memory state.
type MockTwitch struct {
	URL      string
	ClientID string

	mu            sync.Mutex
	users         map[string]MockTwitchUser
	streams       map[string]MockTwitchStream
	tokenRequests int
	userRequests  int
	failStreams   bool
}

// NewMockTwitch starts a server that is closed with the test.
func NewMockTwitch(t *testing.T, clientID string) *MockTwitch {
	t.Helper()

	m := &MockTwitch{
		ClientID: clientID,
		users:    map[string]MockTwitchUser{},
		streams:  map[string]MockTwitchStream{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", m.handleToken)
	mux.HandleFunc("/helix/users", m.authorized(m.handleUsers))
	mux.HandleFunc("/helix/streams", m.authorized(m.handleStreams))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	m.URL = srv.URL
	return m
}

func (m *MockTwitch) HelixURL() string { return m.URL + "/helix" }
func (m *MockTwitch) TokenURL() string { return m.URL + "/oauth2/token" }

func (m *MockTwitch) AddUser(u MockTwitchUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// GoLive marks the stream's user live until GoOffline is called
func (m *MockTwitch) GoLive(s MockTwitchStream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.StartedAt == "" {
		s.StartedAt = "2024-06-01T18:00:00Z"
	}
	m.streams[s.UserID] = s
}

func (m *MockTwitch) GoOffline(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.streams, userID)
}

// FailStreams makes /streams answer 500 until called with false
func (m *MockTwitch) FailStreams(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStreams = fail
}

func (m *MockTwitch) TokenRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenRequests
}

func (m *MockTwitch) UserRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userRequests
}

func (m *MockTwitch) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != m.ClientID {
		http.Error(w, `{"status":400,"message":"invalid client"}`, http.StatusBadRequest)
		return
	}
	m.mu.Lock()
	m.tokenRequests++
	m.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"access_token": "mock-app-token",
		"expires_in":   3600,
		"token_type":   "bearer",
	})
}

func (m *MockTwitch) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Client-Id") != m.ClientID || r.Header.Get("Authorization") != "Bearer mock-app-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (m *MockTwitch) handleUsers(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userRequests++

	q := r.URL.Query()
	data := []MockTwitchUser{}
	for _, u := range m.users {
		if (q.Get("login") != "" && u.Login == q.Get("login")) || (q.Get("id") != "" && u.ID == q.Get("id")) {
			data = append(data, u)
		}
	}
	writeJSON(w, map[string]interface{}{"data": data})
}

func (m *MockTwitch) handleStreams(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failStreams {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	data := []MockTwitchStream{}
	if s, ok := m.streams[r.URL.Query().Get("user_id")]; ok {
		data = append(data, s)
	}
	writeJSON(w, map[string]interface{}{"data": data})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
