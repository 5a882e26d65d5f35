package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"hostbridge/internal/compiler"
	"hostbridge/internal/host"
	"hostbridge/internal/vfs"
)

func newTestServer(t *testing.T) (*Server, *host.CompilerHost) {
	t.Helper()
	overlay := vfs.NewOverlayHost(vfs.NewMemoryHost())
	h := host.NewCompilerHost(compiler.Options{}, "/project", overlay, nil)
	return NewServer(h), h
}

func TestGetFile(t *testing.T) {
	s, h := newTestServer(t)
	h.WriteFile("src/a.ts", "export const x = 1;", false, nil)

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/files/src/a.ts")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "export const x = 1;" {
		t.Errorf("body = %q", body)
	}

	resp, err = http.Get(srv.URL + "/api/files/missing.ts")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status for missing file = %d, want 404", resp.StatusCode)
	}
}

func TestNotifyChanged_Broadcast(t *testing.T) {
	s, h := newTestServer(t)
	h.WriteFile("src/a.ts", "x", false, nil)
	h.WriteFile("src/app.ngfactory.js", "f", false, nil)
	h.Invalidate("src/a.ts")

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// Registration races the dial handshake, so keep notifying until
	// a message arrives
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				s.NotifyChanged()
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var msg reloadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if msg.Type != "invalidate" {
		t.Errorf("type = %q, want invalidate", msg.Type)
	}
	if len(msg.Changed) != 1 || msg.Changed[0] != "/project/src/a.ts" {
		t.Errorf("changed = %v, want the host-resolved path", msg.Changed)
	}
	if len(msg.Generated) != 1 || msg.Generated[0] != vfs.Denormalize("/project/src/app.ngfactory.js") {
		t.Errorf("generated = %v, want the factory module path", msg.Generated)
	}
}
