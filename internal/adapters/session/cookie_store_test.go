package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
)

func TestCookieStore_LoadReadsBothCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "a1"})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "r1"})
	store := NewCookieStore(httptest.NewRecorder(), req, false)

	creds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds.Access != "a1" || creds.Refresh != "r1" {
		t.Errorf("Load = %+v", creds)
	}
	if !creds.Complete() {
		t.Error("pair with both cookies must be complete")
	}
}

func TestCookieStore_MissingCookieIsIncomplete(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "a1"})
	store := NewCookieStore(httptest.NewRecorder(), req, false)

	creds, _ := store.Load(context.Background())
	if creds.Complete() {
		t.Error("pair missing the refresh cookie must be incomplete")
	}
}

func TestCookieStore_SaveSetsCookiesAndUpdatesReads(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "old"})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "old-r"})
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req, true)

	if err := store.Save(context.Background(), domain.Credentials{Access: "new", Refresh: "new-r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	access := byName[AccessCookie]
	if access == nil || access.Value != "new" {
		t.Fatalf("access cookie = %+v", access)
	}
	if !access.HttpOnly || !access.Secure || access.SameSite != http.SameSiteLaxMode {
		t.Errorf("access cookie attributes wrong: %+v", access)
	}
	if byName[RefreshCookie] == nil || byName[RefreshCookie].Value != "new-r" {
		t.Errorf("refresh cookie = %+v", byName[RefreshCookie])
	}

	// A read after the write must see the fresh pair, not the request's
	// original cookies.
	creds, _ := store.Load(context.Background())
	if creds.Access != "new" || creds.Refresh != "new-r" {
		t.Errorf("Load after Save = %+v", creds)
	}
}

func TestCookieStore_ClearExpiresCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "a1"})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "r1"})
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req, false)

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if c.Name == AccessCookie || c.Name == RefreshCookie {
			if c.MaxAge >= 0 {
				t.Errorf("cookie %s not expired: MaxAge=%d", c.Name, c.MaxAge)
			}
			cleared++
		}
	}
	if cleared != 2 {
		t.Fatalf("expected both cookies cleared, got %d", cleared)
	}

	creds, _ := store.Load(context.Background())
	if creds.Access != "" || creds.Refresh != "" {
		t.Errorf("Load after Clear = %+v", creds)
	}
}
