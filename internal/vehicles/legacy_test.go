package vehicles

import (
	"bytes"
	"encoding/binary"
	"testing"

	"vehicleselect/internal/host"
)

// Builds a legacy container payload (after its version header): building
// restriction records, warehouse records, then current-format vehicle data.
func legacyPayload(t *testing.T, version int32, vehicleData []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(v any) {
		t.Helper()
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	// Two building records with district and allowed-building lists.
	w(int32(2))
	for i := 0; i < 2; i++ {
		w(uint32(0x01000000 | uint32(i+1))) // key
		if version <= 2 {
			w(byte(0)) // record number
			w(byte(3)) // restriction flags
			w(int32(7)) // reason
		} else {
			w(uint32(3)) // flags
		}
		w(int32(2)) // district entries
		w(int32(11))
		w(int32(12))
		w(int32(1)) // allowed-building entries
		w(uint32(900))
	}

	// Warehouse records.
	w(int32(3))
	for i := 0; i < 3; i++ {
		w(uint32(i))
		w(byte(1))
	}

	buf.Write(vehicleData)
	return buf.Bytes()
}

func TestDeserializeLegacy(t *testing.T) {
	prefabs := prefabSet("truck_a", "truck_b")

	src := NewStore(nil)
	src.Add(44, host.ReasonGarbage, prefabs["truck_a"])
	src.Add(44, host.ReasonGarbage, prefabs["truck_b"])
	var vehicleData bytes.Buffer
	if err := src.Serialize(&vehicleData); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	for _, version := range []int32{2, 3, 4} {
		payload := legacyPayload(t, version, vehicleData.Bytes())
		s := NewStore(nil)
		if err := s.DeserializeLegacy(bytes.NewReader(payload), version, prefabs); err != nil {
			t.Fatalf("version %d: %v", version, err)
		}
		list := s.Get(44, host.ReasonGarbage)
		if len(list) != 2 || list[0].Name != "truck_a" || list[1].Name != "truck_b" {
			t.Fatalf("version %d: got %v", version, list)
		}
	}
}

func TestDeserializeLegacyVersionBounds(t *testing.T) {
	s := NewStore(nil)
	prefabs := prefabSet()
	for _, version := range []int32{1, 5, -1} {
		if err := s.DeserializeLegacy(bytes.NewReader(nil), version, prefabs); err == nil {
			t.Fatalf("version %d accepted", version)
		}
	}
}

func TestDeserializeLegacyTruncated(t *testing.T) {
	prefabs := prefabSet("truck_a")
	src := NewStore(nil)
	src.Add(44, host.ReasonGarbage, prefabs["truck_a"])
	var vehicleData bytes.Buffer
	if err := src.Serialize(&vehicleData); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	payload := legacyPayload(t, 4, vehicleData.Bytes())
	s := NewStore(nil)
	if err := s.DeserializeLegacy(bytes.NewReader(payload[:10]), 4, prefabs); err == nil {
		t.Fatalf("truncated legacy payload read without error")
	}
}
