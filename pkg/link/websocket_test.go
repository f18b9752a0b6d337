// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// newBridge starts a server that sends a text frame, then echoes binary
// frames back
func newBridge(t *testing.T, user, pass string) *httptest.Server {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user != "" {
			u, p, ok := r.BasicAuth()
			if !ok || u != user || p != pass {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.TextMessage, []byte("hello"))
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURLFor(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocket_Echo(t *testing.T) {
	srv := newBridge(t, "", "")

	tr, err := OpenWebSocket(wsURLFor(srv), "", "", false)
	require.NoError(t, err)
	defer tr.Close()

	require.Equal(t, 3, tr.SendAll([]byte{0x13, 0x54, 'Z'}))
	require.Eventually(t, func() bool { return tr.Available() == 3 }, 2*time.Second, time.Millisecond)

	// The text frame is skipped
	b, _ := tr.Recv()
	require.Equal(t, byte(0x13), b)
}

func TestWebSocket_BasicAuth(t *testing.T) {
	srv := newBridge(t, "minitel", "secret")

	_, err := DialWebSocket(wsURLFor(srv), "minitel", "wrong", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 401")

	conn, err := DialWebSocket(wsURLFor(srv), "minitel", "secret", false)
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestWebSocket_InvalidScheme(t *testing.T) {
	_, err := DialWebSocket("http://localhost:1", "", "", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported URL scheme")
}

func TestWebSocketConn_ReadAfterClose(t *testing.T) {
	srv := newBridge(t, "", "")

	conn, err := DialWebSocket(wsURLFor(srv), "", "", false)
	require.NoError(t, err)
	conn.Close()

	buf := make([]byte, 4)
	_, err = conn.Read(buf)
	require.Error(t, err)
	_, err = conn.Read(buf)
	require.ErrorIs(t, err, ErrConnectionClosed)
}
