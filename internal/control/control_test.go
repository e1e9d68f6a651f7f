package control

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/rtspwire/wireclient/internal/wire/ipcline"
)

type fakeSource struct {
	cleared bool
}

func (f *fakeSource) Stats() map[string]string {
	return map[string]string{"builders_in_progress": "2"}
}

func (f *fakeSource) Clear() {
	f.cleared = true
}

func TestServerStatsAndClear(t *testing.T) {
	source := &fakeSource{}
	srv, err := NewServer("127.0.0.1:0", source)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	req := ipcline.NewFrame()
	req.Set("cmd", "stats")
	if _, err := conn.Write(ipcline.Encode(req)); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reply, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	resp := ipcline.Decode(reply)
	if v, _ := resp.Get("status"); v != "ok" {
		t.Fatalf("expected status=ok, got %q", v)
	}
	if v, _ := resp.Get("builders_in_progress"); v != "2" {
		t.Fatalf("expected builders_in_progress=2, got %q", v)
	}

	req2 := ipcline.NewFrame()
	req2.Set("cmd", "clear")
	if _, err := conn.Write(ipcline.Encode(req2)); err != nil {
		t.Fatalf("write clear: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := bufio.NewReader(conn).ReadBytes('\n'); err != nil {
		t.Fatalf("read clear reply: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}

	if !source.cleared {
		t.Fatal("expected Clear to have been invoked")
	}
}
