package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/obsidiancapital/investor-portal/internal/config"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

func newAllocation() models.NewAllocationRequest {
	return models.NewAllocationRequest{Category: "Reserves", Amount: 100, Date: "2025-04-01"}
}

func newSale() models.NewSaleRequest {
	return models.NewSaleRequest{GPUModel: "H100", PurchasePrice: 100, ResalePrice: 150, Quantity: 1, Customer: "Acme", Date: "2025-04-01"}
}

func newReport() models.NewReportRequest {
	return models.NewReportRequest{Title: "April Update", Content: "Summary of April.", Type: "monthly", Date: "2025-04-01"}
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func apiConfig(baseURL string) config.APIConfig {
	return config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fund_allocations":[{"id":1,"category":"Reserves","amount":100,"date":"2025-04-01"}]}`))
	}))
	defer srv.Close()

	c := New(apiConfig(srv.URL), staticToken("tok-abc"), nil, nil)
	allocations, err := c.GetFundAllocations(context.Background())
	if err != nil {
		t.Fatalf("GetFundAllocations failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if len(allocations) != 1 || allocations[0].Category != "Reserves" {
		t.Errorf("allocations = %v", allocations)
	}
}

func TestClientAuthRequiredShortCircuits(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	recorder := notify.NewRecorder()
	c := New(apiConfig(srv.URL), staticToken(""), recorder, nil)

	_, err := c.GetSales(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server hits = %d, want none before authentication", hits.Load())
	}
	// Loader GETs are quiet; the loader owns the user-visible notice.
	if notices := recorder.Drain(); len(notices) != 0 {
		t.Errorf("notices = %v, want none for a quiet call", notices)
	}
}

func TestClientErrorPayloadParsing(t *testing.T) {
	t.Run("detail payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"detail":"Allocation already recorded"}`))
		}))
		defer srv.Close()

		recorder := notify.NewRecorder()
		c := New(apiConfig(srv.URL), staticToken("tok"), recorder, nil)

		err := c.AddFundAllocation(context.Background(), newAllocation())
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("err = %v, want *RequestError", err)
		}
		if reqErr.Status != http.StatusConflict || reqErr.Message != "Allocation already recorded" {
			t.Errorf("RequestError = %+v", reqErr)
		}
		notices := recorder.Drain()
		if len(notices) != 1 || notices[0].Message != "Allocation already recorded" {
			t.Errorf("notices = %v, want the backend detail surfaced once", notices)
		}
	})

	t.Run("unparseable body falls back to status message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		c := New(apiConfig(srv.URL), staticToken("tok"), nil, nil)

		err := c.AddSale(context.Background(), newSale())
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("err = %v, want *RequestError", err)
		}
		if reqErr.Message != "API error: 502" {
			t.Errorf("message = %q, want the status fallback", reqErr.Message)
		}
	})
}

func TestClientLoginToken(t *testing.T) {
	t.Run("form-encoded exchange", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/token" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Errorf("Content-Type = %q, want form encoding", ct)
			}
			if r.Header.Get("Authorization") != "" {
				t.Error("token exchange carried a bearer header")
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("ParseForm: %v", err)
			}
			if r.PostFormValue("username") != "ada@example.com" || r.PostFormValue("password") != "secret" {
				t.Errorf("form = %v", r.PostForm)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-xyz","token_type":"bearer"}`))
		}))
		defer srv.Close()

		c := New(apiConfig(srv.URL), staticToken(""), nil, nil)
		token, err := c.LoginToken(context.Background(), "ada@example.com", "secret")
		if err != nil {
			t.Fatalf("LoginToken failed: %v", err)
		}
		if token != "tok-xyz" {
			t.Errorf("token = %q, want tok-xyz", token)
		}
	})

	t.Run("rejection surfaces the backend detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect username or password"}`))
		}))
		defer srv.Close()

		recorder := notify.NewRecorder()
		c := New(apiConfig(srv.URL), staticToken(""), recorder, nil)

		_, err := c.LoginToken(context.Background(), "ada@example.com", "wrong")
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("err = %v, want *RequestError", err)
		}
		if reqErr.Status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", reqErr.Status)
		}
		notices := recorder.Drain()
		if len(notices) != 1 || notices[0].Title != "Login Failed" {
			t.Errorf("notices = %v, want one login failure notice", notices)
		}
	})
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	recorder := notify.NewRecorder()
	c := New(apiConfig(srv.URL), staticToken("tok"), recorder, nil)

	err := c.AddReport(context.Background(), newReport())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	notices := recorder.Drain()
	if len(notices) != 1 || notices[0].Message != "No response from server" {
		t.Errorf("notices = %v, want one transport failure notice", notices)
	}
}

func TestClientRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("path = %s, want /register", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("register carried a bearer header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"User created"}`))
	}))
	defer srv.Close()

	c := New(apiConfig(srv.URL), staticToken(""), nil, nil)
	if err := c.Register(context.Background(), "Ada", "ada@example.com", "secret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}
