package net

import (
	"context"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/world"
)

func TestSnapshotCodec(t *testing.T) {
	in := world.Snapshot{
		Frame:     12,
		ElapsedMs: 192,
		Winner:    -1,
		Entities: []world.EntityView{
			{ID: 3, Kind: "player", X: 300, Y: 360, W: 60, H: 60, FacingRight: true, Anim: world.AnimIdle, Weapon: "Pistol", Ammo: 8, Lives: 3},
			{ID: 9, Kind: "bullet", X: 345, Y: 360, VX: 1000, W: 15, H: 5, Weapon: "Pistol"},
		},
	}
	data, err := EncodeSnapshot(in)
	require.NoError(t, err)

	out, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func startServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(config.SpectatorConfig{
		BindAddress:  "127.0.0.1:0",
		Path:         "/ws",
		OutQueueSize: 8,
		WriteTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	go srv.Serve()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	return conn
}

func TestSpectatorReceivesSnapshots(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	require.Eventually(t, func() bool {
		srv.Publish(world.Snapshot{Frame: 1, Winner: -1})
		return srv.SessionCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	srv.Publish(world.Snapshot{Frame: 99, Winner: 1, Over: true})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.BinaryMessage, kind)
		snap, err := DecodeSnapshot(data)
		require.NoError(t, err)
		if snap.Frame == 99 {
			assert.True(t, snap.Over)
			assert.Equal(t, 1, snap.Winner)
			return
		}
	}
}

func TestDisconnectedSpectatorIsDropped(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		srv.Publish(world.Snapshot{Winner: -1})
		return srv.SessionCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		srv.Publish(world.Snapshot{Winner: -1})
		return srv.SessionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPublishWithoutSpectators(t *testing.T) {
	srv := startServer(t)
	srv.Publish(world.Snapshot{Winner: -1})
	assert.Zero(t, srv.SessionCount())
}
