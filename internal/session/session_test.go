package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newData() *Data {
	return &Data{
		UserID:      uuid.New(),
		Email:       "admin@elv.local",
		DisplayName: "Admin",
		Role:        "admin",
	}
}

func TestSessionCreateAndLookup(t *testing.T) {
	store := NewStore(testValkeyClient(t), time.Hour, false)
	ctx := context.Background()
	w := httptest.NewRecorder()

	data := newData()
	token, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 2*idLength {
		t.Errorf("token length: got %d, want %d", len(token), 2*idLength)
	}
	if got := data.ExpiresAt.Sub(data.CreatedAt); got != time.Hour {
		t.Errorf("ExpiresAt - CreatedAt = %v, want 1h", got)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != token {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("cookie should be HttpOnly")
	}

	got, err := store.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.UserID != data.UserID || got.Email != data.Email || got.Role != "admin" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	ttl, err := store.client.TTL(ctx, keyPrefix+token).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want (0, 1h]", ttl)
	}
}

func TestSessionLookupUnknown(t *testing.T) {
	store := NewStore(testValkeyClient(t), 0, false)

	for _, token := range []string{"", "deadbeef"} {
		got, err := store.Lookup(context.Background(), token)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", token, err)
		}
		if got != nil {
			t.Errorf("Lookup(%q) = %+v, want nil", token, got)
		}
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(testValkeyClient(t), 0, true)
	ctx := context.Background()

	token, err := store.Create(ctx, httptest.NewRecorder(), newData())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := httptest.NewRecorder()
	if err := store.Destroy(ctx, w, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	got, err := store.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != nil {
		t.Error("session should be gone after Destroy")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expired cookie, got %+v", cookies)
	}
	if !cookies[0].Secure {
		t.Error("expired cookie should keep the Secure flag")
	}
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(nil, 0, false)
	if s.ttl != DefaultTTL {
		t.Errorf("ttl: got %v, want %v", s.ttl, DefaultTTL)
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer", "Bearer abc123", "", "abc123"},
		{"bearer lowercase", "bearer abc123", "", "abc123"},
		{"cookie", "", "cookie-token", "cookie-token"},
		{"header wins", "Bearer header-token", "cookie-token", "header-token"},
		{"basic falls back to cookie", "Basic dXNlcjpwYXNz", "cookie-token", "cookie-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
