package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/lottery-rewards/internal/config"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
)

func loadTestConfig(t *testing.T) config.Config {
	t.Helper()

	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("RNG_SEED", "7")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestNewHTTPServer_ServesSeededAccount(t *testing.T) {
	cfg := loadTestConfig(t)

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	if srv.Addr != cfg.HTTPAddr || srv.ReadTimeout != cfg.ReadTimeout {
		t.Fatalf("server not configured from config: %+v", srv)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"demo-account"`) {
		t.Fatalf("expected demo account, got %s", rec.Body.String())
	}
}

func TestNewHTTPServer_SeedsConfiguredDemoAccount(t *testing.T) {
	t.Setenv("DEMO_ACCOUNT_ID", "other")
	cfg := loadTestConfig(t)

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/v1/sessions", nil),
		httptest.NewRequest(http.MethodGet, "/v1/me", nil),
	} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d body=%s", req.Method, req.URL.Path, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"id":"other"`) {
			t.Fatalf("%s %s: expected configured account, got %s", req.Method, req.URL.Path, rec.Body.String())
		}
	}
}

func TestNewHTTPServer_DefaultJackpotFromConfig(t *testing.T) {
	cfg := loadTestConfig(t)

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/draws", strings.NewReader(`{"date":"2024-01-19"}`))
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"jackpot":"2500000.00"`) {
		t.Fatalf("expected configured jackpot, got %s", rec.Body.String())
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.HTTPAddr = ""

	if _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
