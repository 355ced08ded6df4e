package iothub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

var testCreds = Credentials{
	HostName: "lamp-hub.azure-devices.net",
	KeyName:  "service",
	Key:      []byte("super-secret-key"),
}

func newHub(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(testCreds, "lamp-01", 2*time.Second, WithBaseURL(srv.URL), WithHTTPClient(srv.Client())), srv
}

func TestClient_GetStatus(t *testing.T) {
	var gotReq methodRequest
	var gotPath, gotAuth string
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"status":200,"payload":{"Status":1}}`))
	})

	status, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.StatusOn {
		t.Fatalf("expected on, got %v", status)
	}
	if gotPath != "/twins/lamp-01/methods?api-version="+apiVersion {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotReq.MethodName != MethodStatus || gotReq.ResponseTimeout != 2 {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if !strings.HasPrefix(gotAuth, "SharedAccessSignature sr=lamp-hub.azure-devices.net&sig=") {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
}

func TestClient_ToggleStatus(t *testing.T) {
	var method string
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		var req methodRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		method = req.MethodName
		_, _ = w.Write([]byte(`{"status":200,"payload":{"status":0}}`))
	})

	status, err := client.ToggleStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.StatusOff || method != MethodToggle {
		t.Fatalf("got status %v via %q", status, method)
	}
}

func TestClient_NullPayloadIsUnknown(t *testing.T) {
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":200,"payload":null}`))
	})

	status, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.StatusUnknown {
		t.Fatalf("expected unknown, got %v", status)
	}
}

func TestClient_OutOfRangeIsUnknown(t *testing.T) {
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":200,"payload":{"Status":7}}`))
	})

	status, err := client.GetStatus(context.Background())
	if err != nil || status != domain.StatusUnknown {
		t.Fatalf("expected unknown without error, got %v, %v", status, err)
	}
}

func TestClient_HubError(t *testing.T) {
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Message":"device offline"}`, http.StatusNotFound)
	})

	status, err := client.GetStatus(context.Background())
	if !errors.Is(err, domain.ErrDeviceUnreachable) {
		t.Fatalf("expected ErrDeviceUnreachable, got %v", err)
	}
	if status != domain.StatusUnknown {
		t.Fatalf("expected unknown, got %v", status)
	}
}

func TestClient_DeviceError(t *testing.T) {
	client, _ := newHub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":500,"payload":{"error":"relay stuck"}}`))
	})

	if _, err := client.ToggleStatus(context.Background()); !errors.Is(err, domain.ErrDeviceUnreachable) {
		t.Fatalf("expected ErrDeviceUnreachable, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(testCreds, "lamp-01", 50*time.Millisecond, WithBaseURL(srv.URL))
	start := time.Now()
	_, err := client.GetStatus(context.Background())
	if !errors.Is(err, domain.ErrDeviceUnreachable) {
		t.Fatalf("expected ErrDeviceUnreachable, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(testCreds, "lamp-01", time.Second, WithBaseURL(url))
	if _, err := client.GetStatus(context.Background()); !errors.Is(err, domain.ErrDeviceUnreachable) {
		t.Fatalf("expected ErrDeviceUnreachable, got %v", err)
	}
}

func TestParseConnectionString(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("k3y"))
	creds, err := ParseConnectionString("HostName=hub.azure-devices.net;SharedAccessKeyName=service;SharedAccessKey=" + key)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if creds.HostName != "hub.azure-devices.net" || creds.KeyName != "service" || string(creds.Key) != "k3y" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	for _, bad := range []string{
		"",
		"HostName=hub",
		"HostName=hub;SharedAccessKeyName=s;SharedAccessKey=%%%",
		"garbage",
	} {
		if _, err := ParseConnectionString(bad); !errors.Is(err, ErrInvalidConnectionString) {
			t.Fatalf("expected ErrInvalidConnectionString for %q, got %v", bad, err)
		}
	}
}

func TestSASToken(t *testing.T) {
	expiry := time.Unix(1700000000, 0)
	tok := testCreds.SASToken(expiry)

	if !strings.Contains(tok, "&se=1700000000&") || !strings.HasSuffix(tok, "&skn=service") {
		t.Fatalf("unexpected token: %s", tok)
	}
	if tok != testCreds.SASToken(expiry) {
		t.Fatalf("token must be deterministic for a fixed expiry")
	}
}

func TestUnconfigured(t *testing.T) {
	if _, err := (Unconfigured{}).GetStatus(context.Background()); !errors.Is(err, domain.ErrDeviceUnreachable) {
		t.Fatalf("expected ErrDeviceUnreachable, got %v", err)
	}
}
