package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/storage"
	"geopolitik/internal/app/store/memory"
	"geopolitik/internal/configs"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/errs"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	t       *testing.T
	handler http.Handler
	deps    *AppDeps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &configs.AppConfig{Environment: "test", JWTSecret: testSecret}
	store := memory.New()
	deps := &AppDeps{
		Config: cfg,
		Users:  store,
		Lobby:  lobby.NewService(store, testSecret, lobby.WithBotFactory(lobby.NewBotFactory(rand.NewPCG(9, 9)))),
		Chat:   chat.NewService(store, store),
	}
	h, stop := Router(deps)
	t.Cleanup(stop)
	return &testEnv{t: t, handler: h, deps: deps}
}

func (e *testEnv) do(method, path, token string, body any) (int, envelope) {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		e.t.Fatalf("%s %s: decode body %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func (e *testEnv) expect(method, path, token string, body any, wantStatus int, dst any) envelope {
	e.t.Helper()
	status, env := e.do(method, path, token, body)
	if status != wantStatus {
		e.t.Fatalf("%s %s = %d (code %d %q), want %d", method, path, status, env.Code, env.Message, wantStatus)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			e.t.Fatalf("%s %s: decode data %s: %v", method, path, env.Data, err)
		}
	}
	return env
}

func tokenFor(t *testing.T, id, name string) string {
	t.Helper()
	token, err := jwt.GenerateToken(&jwt.Payload{ID: id, Name: name}, testSecret, jwt.UserIdentityExpiration)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func (e *testEnv) createServer(token, name string) string {
	e.t.Helper()
	var out struct{ ID string }
	e.expect(http.MethodPost, "/api/server", token, map[string]any{"name": name}, http.StatusCreated, &out)
	return out.ID
}

func (e *testEnv) createNation(token, serverID, name string) string {
	e.t.Helper()
	var out struct{ ID string }
	e.expect(http.MethodPost, "/api/nation", token, map[string]any{"serverId": serverID, "name": name}, http.StatusCreated, &out)
	return out.ID
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	var out map[string]string
	env.expect(http.MethodGet, "/health", "", nil, http.StatusOK, &out)
	if out["status"] != "ok" {
		t.Fatalf("health = %v", out)
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	register := map[string]any{"email": "Host@Example.com", "password": "hunter22", "name": "Host"}
	env.expect(http.MethodPost, "/api/auth/register", "", register, http.StatusCreated, nil)

	res := env.expect(http.MethodPost, "/api/auth/register", "", register, http.StatusConflict, nil)
	if res.Code != errs.ErrEmailInUse {
		t.Fatalf("duplicate register code = %d", res.Code)
	}

	res = env.expect(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "x@example.com"}, http.StatusBadRequest, nil)
	if res.Code != errs.ErrMissingFields || !strings.Contains(res.Message, "password") {
		t.Fatalf("missing fields = %d %q", res.Code, res.Message)
	}

	env.expect(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "host@example.com", "password": "wrong-pass"}, http.StatusUnauthorized, nil)
	env.expect(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "hunter22"}, http.StatusUnauthorized, nil)

	var login struct {
		Token string
		User  struct{ ID, Email, Name string }
	}
	env.expect(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "host@example.com", "password": "hunter22"}, http.StatusOK, &login)
	if login.Token == "" || login.User.Email != "host@example.com" || login.User.Name != "Host" {
		t.Fatalf("login = %+v", login)
	}

	env.expect(http.MethodGet, "/api/profile", "", nil, http.StatusUnauthorized, nil)

	var profile struct{ User struct{ ID, Name string } }
	env.expect(http.MethodGet, "/api/profile", login.Token, nil, http.StatusOK, &profile)
	if profile.User.ID != login.User.ID {
		t.Fatalf("profile = %+v", profile)
	}

	var updated struct {
		Token string
		User  struct{ Name string }
	}
	env.expect(http.MethodPut, "/api/profile", login.Token, map[string]any{"name": "Emperor"}, http.StatusOK, &updated)
	if updated.User.Name != "Emperor" || updated.Token == "" {
		t.Fatalf("update = %+v", updated)
	}

	payload, err := jwt.ParseToken(updated.Token, testSecret)
	if err != nil || payload.Name != "Emperor" {
		t.Fatalf("reissued token = %+v, %v", payload, err)
	}
}

func TestRequestFormat(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")

	r := httptest.NewRequest(http.MethodPost, "/api/server", strings.NewReader(`{"name":"x"}`))
	r.Header.Set("Authorization", "Bearer "+host)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("no content type = %d, want 415", w.Code)
	}

	res := env.expect(http.MethodPost, "/api/server", host, map[string]any{"name": "x", "mode": "hard"}, http.StatusBadRequest, nil)
	if res.Code != errs.ErrInvalidJSONFormat {
		t.Fatalf("unknown field code = %d", res.Code)
	}
}

func TestAtlasScenario(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")

	serverID := env.createServer(host, "Atlas")
	env.createNation(host, serverID, "Atlantis")

	var ready lobby.Readiness
	env.expect(http.MethodPost, "/api/ready", host, map[string]any{"serverId": serverID}, http.StatusOK, &ready)
	if !ready.AllReady || ready.Status != lobby.StatusReady || len(ready.PlayersReady) != 1 {
		t.Fatalf("ready = %+v", ready)
	}

	var started struct{ Status lobby.Status }
	env.expect(http.MethodPost, "/api/server/start", host, map[string]any{"serverId": serverID}, http.StatusOK, &started)
	if started.Status != lobby.StatusInProgress {
		t.Fatalf("start = %+v", started)
	}

	var srv lobby.Server
	env.expect(http.MethodGet, "/api/server/"+serverID, host, nil, http.StatusOK, &srv)
	if srv.Status != lobby.StatusInProgress || srv.Name != "Atlas" {
		t.Fatalf("server = %+v", srv)
	}

	res := env.expect(http.MethodPost, "/api/server/start", host, map[string]any{"serverId": serverID}, http.StatusConflict, nil)
	if res.Code != errs.ErrGameAlreadyStarted {
		t.Fatalf("second start code = %d", res.Code)
	}

	var mine []lobby.Server
	env.expect(http.MethodGet, "/api/server", host, nil, http.StatusOK, &mine)
	if len(mine) != 1 || mine[0].ID != serverID {
		t.Fatalf("my servers = %+v", mine)
	}

	env.expect(http.MethodGet, "/api/server/nope", host, nil, http.StatusNotFound, nil)
}

func TestBotsWithUnreadyHuman(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")
	guest := tokenFor(t, "guest", "Guest")

	serverID := env.createServer(host, "Crowded")
	env.createNation(host, serverID, "Atlantis")

	var populated struct{ Added int }
	env.expect(http.MethodPost, "/api/bots/populate", host, map[string]any{"serverId": serverID, "count": 61}, http.StatusCreated, &populated)
	if populated.Added != 60 {
		t.Fatalf("added = %d, want 60", populated.Added)
	}

	var again struct {
		Message string
		Added   int
	}
	env.expect(http.MethodPost, "/api/bots/populate", host, map[string]any{"serverId": serverID, "count": 61}, http.StatusOK, &again)
	if again.Added != 0 || again.Message == "" {
		t.Fatalf("repopulate = %+v", again)
	}

	env.expect(http.MethodPost, "/api/bots/populate", guest, map[string]any{"serverId": serverID, "count": 80}, http.StatusForbidden, nil)
	env.expect(http.MethodPost, "/api/bot", guest, map[string]any{"serverId": serverID}, http.StatusForbidden, nil)

	var nations []lobby.Nation
	env.expect(http.MethodGet, "/api/nation?serverId="+serverID, host, nil, http.StatusOK, &nations)
	if len(nations) != 61 {
		t.Fatalf("nations = %d, want 61", len(nations))
	}
	names := make(map[string]bool)
	for _, n := range nations {
		if names[n.Name] {
			t.Fatalf("duplicate name %q", n.Name)
		}
		names[n.Name] = true
	}

	var ready lobby.Readiness
	env.expect(http.MethodGet, "/api/ready?serverId="+serverID, "", nil, http.StatusOK, &ready)
	if ready.AllReady {
		t.Fatal("allReady with an unready human")
	}

	res := env.expect(http.MethodPost, "/api/server/start", host, map[string]any{"serverId": serverID}, http.StatusBadRequest, nil)
	if res.Code != errs.ErrNotAllReady || res.Message != "Not all players ready." {
		t.Fatalf("start = %d %q", res.Code, res.Message)
	}
}

func TestNationUniquenessAndToggleIdempotence(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")

	serverID := env.createServer(host, "Atlas")
	env.createNation(host, serverID, "Atlantis")

	res := env.expect(http.MethodPost, "/api/nation", host, map[string]any{"serverId": serverID, "name": "Again"}, http.StatusConflict, nil)
	if res.Code != errs.ErrNationExists {
		t.Fatalf("second nation code = %d", res.Code)
	}
	env.expect(http.MethodPost, "/api/nation", host, map[string]any{"serverId": "nope", "name": "X"}, http.StatusNotFound, nil)
	env.expect(http.MethodGet, "/api/nation", host, nil, http.StatusBadRequest, nil)

	var before, after lobby.Readiness
	env.expect(http.MethodGet, "/api/ready?serverId="+serverID, "", nil, http.StatusOK, &before)
	env.expect(http.MethodPost, "/api/ready", host, map[string]any{"serverId": serverID}, http.StatusOK, nil)
	env.expect(http.MethodPost, "/api/ready", host, map[string]any{"serverId": serverID}, http.StatusOK, &after)
	if len(after.PlayersReady) != len(before.PlayersReady) || after.AllReady != before.AllReady || after.Status != lobby.StatusWaiting {
		t.Fatalf("toggle twice: before %+v after %+v", before, after)
	}

	env.expect(http.MethodPost, "/api/ready", host, map[string]any{"serverId": "nope"}, http.StatusNotFound, nil)
	env.expect(http.MethodGet, "/api/ready", "", nil, http.StatusBadRequest, nil)
}

func TestConcurrentNationCreation(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")
	serverID := env.createServer(host, "Race")

	statuses := make(chan int, 5)
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, _ := json.Marshal(map[string]any{"serverId": serverID, "name": "Racer"})
			r := httptest.NewRequest(http.MethodPost, "/api/nation", bytes.NewReader(raw))
			r.Header.Set("Content-Type", "application/json")
			r.Header.Set("Authorization", "Bearer "+host)
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, r)
			statuses <- w.Code
		}()
	}
	wg.Wait()
	close(statuses)

	counts := make(map[int]int)
	for code := range statuses {
		counts[code]++
	}
	if counts[http.StatusCreated] != 1 || counts[http.StatusConflict] != 4 {
		t.Fatalf("status counts = %v", counts)
	}
}

func TestInviteRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")
	guest := tokenFor(t, "guest", "Guest")
	serverID := env.createServer(host, "Atlas")

	var invite struct{ Token string }
	env.expect(http.MethodPost, "/api/invite", host, map[string]any{"serverId": serverID}, http.StatusCreated, &invite)

	var info lobby.InviteInfo
	env.expect(http.MethodGet, "/api/invite/accept?token="+invite.Token, "", nil, http.StatusOK, &info)
	if info.ServerID != serverID || info.Name != "Atlas" {
		t.Fatalf("accept = %+v", info)
	}

	env.expect(http.MethodPost, "/api/invite", guest, map[string]any{"serverId": serverID}, http.StatusForbidden, nil)
	env.expect(http.MethodPost, "/api/invite", host, map[string]any{"serverId": "nope"}, http.StatusNotFound, nil)
	env.expect(http.MethodGet, "/api/invite/accept", "", nil, http.StatusBadRequest, nil)
	env.expect(http.MethodGet, "/api/invite/accept?token="+host, "", nil, http.StatusBadRequest, nil)

	env.createNation(guest, info.ServerID, "Lemuria")
}

func TestChat(t *testing.T) {
	env := newTestEnv(t)
	host := tokenFor(t, "host", "Host")
	serverID := env.createServer(host, "Atlas")

	var sent struct{ Message chat.Message }
	env.expect(http.MethodPost, "/api/chat", host, map[string]any{"serverId": serverID, "content": "hello"}, http.StatusCreated, &sent)
	if sent.Message.Username != "Host" || sent.Message.Type != chat.TypeMessage {
		t.Fatalf("sent = %+v", sent.Message)
	}

	env.expect(http.MethodPost, "/api/chat", host, map[string]any{"serverId": serverID, "content": "x", "type": "shout"}, http.StatusBadRequest, nil)
	env.expect(http.MethodPost, "/api/chat", host, map[string]any{"serverId": "nope", "content": "x"}, http.StatusNotFound, nil)
	env.expect(http.MethodPost, "/api/chat", "", map[string]any{"serverId": serverID, "content": "x"}, http.StatusUnauthorized, nil)

	var page struct{ Messages []chat.Message }
	env.expect(http.MethodGet, "/api/chat?serverId="+serverID, host, nil, http.StatusOK, &page)
	if len(page.Messages) != 1 || page.Messages[0].Content != "hello" {
		t.Fatalf("page = %+v", page)
	}

	cursor := page.Messages[0].Timestamp.Format(time.RFC3339Nano)
	env.expect(http.MethodGet, "/api/chat?serverId="+serverID+"&lastMessageTime="+cursor, host, nil, http.StatusOK, &page)
	if len(page.Messages) != 0 {
		t.Fatalf("since newest = %d messages", len(page.Messages))
	}

	env.expect(http.MethodGet, "/api/chat?serverId="+serverID+"&lastMessageTime=yesterday", host, nil, http.StatusBadRequest, nil)
}

func TestAuthRateLimit(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{"email": "nobody@example.com", "password": "whatever1"}

	for range AuthBurst {
		env.expect(http.MethodPost, "/api/auth/login", "", body, http.StatusUnauthorized, nil)
	}
	res := env.expect(http.MethodPost, "/api/auth/login", "", body, http.StatusTooManyRequests, nil)
	if res.Code != errs.ErrRateLimitExceeded {
		t.Fatalf("code = %d", res.Code)
	}
}

type fakeStorage struct {
	objects map[string]storage.ObjectInfo
	deleted chan string
}

func (f *fakeStorage) PresignUpload(_ context.Context, key, _ string, _ int64, _ time.Duration) (string, error) {
	return "https://upload.example.com/" + key + "?sig=1", nil
}

func (f *fakeStorage) Stat(_ context.Context, key string) (*storage.ObjectInfo, error) {
	info, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &info, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted <- key
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.example.com/" + key
}

func TestAvatarUpload(t *testing.T) {
	env := newTestEnv(t)

	env.expect(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "a@example.com", "password": "hunter22", "name": "A"}, http.StatusCreated, nil)
	var login struct {
		Token string
		User  struct{ ID string }
	}
	env.expect(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "hunter22"}, http.StatusOK, &login)

	presign := map[string]any{"fileName": "me.png", "mimeType": "image/png", "fileSize": 2048}
	res := env.expect(http.MethodPost, "/api/profile/avatar/presign", login.Token, presign, http.StatusInternalServerError, nil)
	if res.Code != errs.ErrFileStorageFailed {
		t.Fatalf("presign without storage code = %d", res.Code)
	}

	fake := &fakeStorage{objects: map[string]storage.ObjectInfo{}, deleted: make(chan string, 1)}
	env.deps.Storage = fake

	env.expect(http.MethodPost, "/api/profile/avatar/presign", login.Token,
		map[string]any{"fileName": "me.exe", "mimeType": "application/octet-stream", "fileSize": 2048}, http.StatusBadRequest, nil)

	var signed struct{ PresignedURL, FileKey string }
	env.expect(http.MethodPost, "/api/profile/avatar/presign", login.Token, presign, http.StatusOK, &signed)
	if !strings.HasPrefix(signed.FileKey, "avatars/"+login.User.ID+"/") || signed.PresignedURL == "" {
		t.Fatalf("presign = %+v", signed)
	}

	env.expect(http.MethodPut, "/api/profile", login.Token, map[string]any{"name": "A", "avatar": signed.FileKey}, http.StatusBadRequest, nil)

	fake.objects[signed.FileKey] = storage.ObjectInfo{ContentType: "image/png", Size: 2048}
	var updated struct{ User struct{ Avatar string } }
	env.expect(http.MethodPut, "/api/profile", login.Token,
		map[string]any{"name": "A", "avatar": "https://cdn.example.com/" + signed.FileKey}, http.StatusOK, &updated)
	if updated.User.Avatar != "https://cdn.example.com/"+signed.FileKey {
		t.Fatalf("avatar = %q", updated.User.Avatar)
	}

	env.expect(http.MethodPut, "/api/profile", login.Token, map[string]any{"name": "A", "avatar": "avatars/someone-else/x.png"}, http.StatusBadRequest, nil)

	env.expect(http.MethodPut, "/api/profile", login.Token, map[string]any{"name": "A", "avatar": ""}, http.StatusOK, nil)
	select {
	case key := <-fake.deleted:
		if key != signed.FileKey {
			t.Fatalf("deleted %q, want %q", key, signed.FileKey)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("old avatar was not deleted")
	}
}
