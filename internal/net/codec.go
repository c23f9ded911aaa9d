package net

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bulletbrawl/arena/internal/world"
)

// EncodeSnapshot packs one frame for the spectator feed. Every websocket
// binary message carries exactly one snapshot.
func EncodeSnapshot(s world.Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %d: %w", s.Frame, err)
	}
	return data, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot, for clients and tools.
func DecodeSnapshot(data []byte) (world.Snapshot, error) {
	var s world.Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return world.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
