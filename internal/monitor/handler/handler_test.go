package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixcbridge/internal/monitor"
	"ixcbridge/internal/platform/feed"
	"ixcbridge/pkg/testutil"
)

type stubMonitor struct {
	snap       monitor.Snapshot
	triggerErr error
	triggered  int
}

func (s *stubMonitor) Snapshot() monitor.Snapshot { return s.snap }

func (s *stubMonitor) Trigger(context.Context) error {
	if s.triggerErr != nil {
		return s.triggerErr
	}
	s.triggered++
	s.snap.Running = true
	return nil
}

func (s *stubMonitor) Dismiss() monitor.Snapshot {
	s.snap.Dismissed = true
	s.snap.PanelVisible = false
	return s.snap
}

func newRouter(m Monitor, f Feed) http.Handler {
	r := chi.NewRouter()
	New(m, f, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestSnapshotAndDismiss(t *testing.T) {
	m := &stubMonitor{snap: monitor.Snapshot{StatusLine: "Sync complete.", AlertCount: 2, PanelVisible: true}}
	router := newRouter(m, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/monitor"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "alert_count", float64(2))
	testutil.AssertJSONContains(t, rr, "panel_visible", true)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/monitor/dismiss"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "dismissed", true)
	testutil.AssertJSONContains(t, rr, "panel_visible", false)
}

func TestRun(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		m := &stubMonitor{}
		rr := testutil.DoRequest(newRouter(m, nil), testutil.NewRequest(t, http.MethodPost, "/monitor/run"))
		testutil.AssertStatus(t, rr, http.StatusAccepted)
		testutil.AssertJSONContains(t, rr, "running", true)
		assert.Equal(t, 1, m.triggered)
	})

	t.Run("already running", func(t *testing.T) {
		m := &stubMonitor{triggerErr: monitor.ErrRunInProgress}
		rr := testutil.DoRequest(newRouter(m, nil), testutil.NewRequest(t, http.MethodPost, "/monitor/run"))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})
}

func TestFeedDisabled(t *testing.T) {
	rr := testutil.DoRequest(newRouter(&stubMonitor{}, nil), testutil.NewRequest(t, http.MethodGet, "/monitor/feed"))
	testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, "unavailable")
}

func TestFeedGreetsWithSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := feed.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	m := &stubMonitor{snap: monitor.Snapshot{StatusLine: "Syncing customers: 20 / 40", Running: true}}
	srv := httptest.NewServer(newRouter(m, hub))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/monitor/feed", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got monitor.Snapshot
	require.NoError(t, conn.ReadJSON(&got))
	assert.True(t, got.Running)
	assert.Equal(t, "Syncing customers: 20 / 40", got.StatusLine)
}
