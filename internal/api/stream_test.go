package api

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungtweek/openclaw-agent/internal/upstream"
)

func readSSELines(t *testing.T, url string) ([]string, []time.Time) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	var lines []string
	var stamps []time.Time
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
		stamps = append(stamps, time.Now())
	}
	return lines, stamps
}

// TestStreamReplaysSequenceInOrder checks the exact frame sequence for a
// known dataset and that inter-payload gaps stay inside the configured
// jitter window.
func TestStreamReplaysSequenceInOrder(t *testing.T) {
	s := testServer(t, upstream.Result{Outcome: upstream.OutcomeDegraded},
		`{"tasks":[]}`, `{"events":[["a","b"]]}`)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	lines, stamps := readSSELines(t, srv.URL+"/stream")

	want := []string{
		"data: a",
		"data: b",
		"event: done",
		"data: Sequence completed",
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected frames: %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("frame %d: got %q want %q", i, lines[i], want[i])
		}
	}

	// Gap between the two payloads: configured [100ms,300ms], with slop for
	// scheduling and client-side buffering.
	gap := stamps[1].Sub(stamps[0])
	if gap < 50*time.Millisecond || gap > 800*time.Millisecond {
		t.Fatalf("payload gap out of bounds: %v", gap)
	}
}

func TestStreamEmptyDataset(t *testing.T) {
	s := testServer(t, upstream.Result{Outcome: upstream.OutcomeDegraded},
		`{"tasks":[]}`, `{"events":[]}`)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	lines, _ := readSSELines(t, srv.URL+"/stream")

	want := []string{
		"event: error",
		"data: No events loaded",
	}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Fatalf("unexpected frames for empty dataset: %v", lines)
	}
}

// TestStreamConcurrentInvocations runs several streams at once; every one
// must replay exactly one stored sequence in full, with no cross-talk.
func TestStreamConcurrentInvocations(t *testing.T) {
	s := testServer(t, upstream.Result{Outcome: upstream.OutcomeDegraded},
		`{"tasks":[]}`, `{"events":[["one-1","one-2"],["two-1","two-2","two-3"]]}`)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	expected := map[string]bool{
		"data: one-1|data: one-2|event: done|data: Sequence completed":             true,
		"data: two-1|data: two-2|data: two-3|event: done|data: Sequence completed": true,
	}

	var wg sync.WaitGroup
	results := make([]string, 6)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lines, _ := readSSELines(t, srv.URL+"/stream")
			results[i] = strings.Join(lines, "|")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !expected[got] {
			t.Fatalf("stream %d replayed a corrupted sequence: %q", i, got)
		}
	}
}

// TestStreamAbandonsOnDisconnect cancels the request context mid-stream and
// expects the handler to stop without emitting the done event.
func TestStreamAbandonsOnDisconnect(t *testing.T) {
	s := testServer(t, upstream.Result{Outcome: upstream.OutcomeDegraded},
		`{"tasks":[]}`, `{"events":[["e1","e2","e3","e4","e5","e6","e7","e8"]]}`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	start := time.Now()
	s.handleStream(rr, req)
	elapsed := time.Since(start)

	// 8 payloads at >=100ms each would take >=700ms if cancellation were
	// ignored.
	if elapsed > 600*time.Millisecond {
		t.Fatalf("handler did not stop promptly after cancel: %v", elapsed)
	}
	if strings.Contains(rr.Body.String(), "event: done") {
		t.Fatalf("canceled stream must not emit the done event")
	}
}
