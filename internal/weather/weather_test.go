package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		if r.URL.Query().Get("appid") == "" {
			t.Error("missing appid")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIsHotNow(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantHot  bool
		wantTemp bool
	}{
		{"hot day", http.StatusOK, `{"main":{"temp":31.4}}`, true, true},
		{"mild day", http.StatusOK, `{"main":{"temp":21.0}}`, false, true},
		{"exactly at threshold", http.StatusOK, `{"main":{"temp":28.0}}`, false, true},
		{"missing main section", http.StatusOK, `{"weather":[]}`, false, false},
		{"missing temp field", http.StatusOK, `{"main":{}}`, false, false},
		{"server error", http.StatusInternalServerError, ``, false, false},
		{"unauthorized", http.StatusUnauthorized, `{"cod":401}`, false, false},
		{"garbage body", http.StatusOK, `not json`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})

			if got := c.IsHotNow(context.Background()); got != tt.wantHot {
				t.Errorf("IsHotNow = %v, want %v", got, tt.wantHot)
			}
			if _, ok := c.Temperature(); ok != tt.wantTemp {
				t.Errorf("Temperature fetched = %v, want %v", ok, tt.wantTemp)
			}
		})
	}
}

func TestTemperatureObservable(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"main":{"temp":30.5}}`)
	c := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})

	if _, ok := c.Temperature(); ok {
		t.Error("temperature available before any fetch")
	}

	c.IsHotNow(context.Background())

	temp, ok := c.Temperature()
	if !ok {
		t.Fatal("temperature not recorded after successful fetch")
	}
	if temp != 30.5 {
		t.Errorf("temperature = %v, want 30.5", temp)
	}
}

func TestUnreachableServer(t *testing.T) {
	c := NewClient(Options{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
	if c.IsHotNow(context.Background()) {
		t.Error("IsHotNow = true for unreachable server, want false")
	}
}
