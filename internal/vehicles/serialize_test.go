package vehicles

import (
	"bytes"
	"encoding/binary"
	"testing"

	"vehicleselect/internal/host"
)

func TestSerializeRoundTrip(t *testing.T) {
	prefabs := prefabSet("truck_a", "truck_b", "van_c")

	src := NewStore(nil)
	src.Add(12, host.ReasonGarbage, prefabs["truck_a"])
	src.Add(12, host.ReasonGarbage, prefabs["truck_b"])
	src.Add(12, host.ReasonNone, prefabs["van_c"])
	src.Add(900, host.ReasonCrime, prefabs["truck_b"])

	var buf bytes.Buffer
	if err := src.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	dst := NewStore(nil)
	if err := dst.Deserialize(&buf, prefabs); err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if dst.Len() != src.Len() {
		t.Fatalf("Len = %d, want %d", dst.Len(), src.Len())
	}
	list := dst.Get(12, host.ReasonGarbage)
	if len(list) != 2 || list[0].Name != "truck_a" || list[1].Name != "truck_b" {
		t.Fatalf("order not preserved: %v", list)
	}
	if got := dst.Get(900, host.ReasonCrime); len(got) != 1 || got[0].Name != "truck_b" {
		t.Fatalf("entry lost: %v", got)
	}
}

func TestDeserializeClearsFirst(t *testing.T) {
	prefabs := prefabSet("truck_a")

	src := NewStore(nil)
	src.Add(1, host.ReasonGarbage, prefabs["truck_a"])
	var buf bytes.Buffer
	if err := src.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	dst := NewStore(nil)
	dst.Add(99, host.ReasonCrime, prefabs["truck_a"])
	if err := dst.Deserialize(&buf, prefabs); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got := dst.Get(99, host.ReasonCrime); got != nil {
		t.Fatalf("stale entry survived the load: %v", got)
	}
}

// Serialized data referencing unloaded prefabs sheds just those names; an
// entry with no survivors disappears entirely.
func TestDeserializeTolerance(t *testing.T) {
	all := prefabSet("kept", "gone", "gone2")

	src := NewStore(nil)
	src.Add(5, host.ReasonGoods, all["kept"])
	src.Add(5, host.ReasonGoods, all["gone"])
	src.Add(6, host.ReasonGoods, all["gone2"])

	var buf bytes.Buffer
	if err := src.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	dst := NewStore(nil)
	if err := dst.Deserialize(&buf, prefabSet("kept")); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if list := dst.Get(5, host.ReasonGoods); len(list) != 1 || list[0].Name != "kept" {
		t.Fatalf("got %v, want only the resolvable prefab", list)
	}
	if got := dst.Get(6, host.ReasonGoods); got != nil {
		t.Fatalf("fully-unresolvable entry survived: %v", got)
	}
	if dst.Len() != 1 {
		t.Fatalf("Len = %d, want 1", dst.Len())
	}
}

func TestDeserializeDuplicateKeySkipped(t *testing.T) {
	prefabs := prefabSet("first", "second")

	var buf bytes.Buffer
	mustWrite := func(v any) {
		t.Helper()
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	writeName := func(name string) {
		mustWrite(uint16(len(name)))
		buf.WriteString(name)
	}

	key := uint32(host.ReasonGoods)<<24 | 5
	mustWrite(int32(2))
	mustWrite(key)
	mustWrite(uint16(1))
	writeName("first")
	mustWrite(key)
	mustWrite(uint16(1))
	writeName("second")

	s := NewStore(nil)
	if err := s.Deserialize(&buf, prefabs); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if list := s.Get(5, host.ReasonGoods); len(list) != 1 || list[0].Name != "first" {
		t.Fatalf("got %v, want the first occurrence to win", list)
	}
}

func TestDeserializeTruncated(t *testing.T) {
	prefabs := prefabSet("truck_a")
	src := NewStore(nil)
	src.Add(1, host.ReasonGarbage, prefabs["truck_a"])
	var buf bytes.Buffer
	if err := src.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	cut := buf.Bytes()[:buf.Len()-3]

	dst := NewStore(nil)
	if err := dst.Deserialize(bytes.NewReader(cut), prefabs); err == nil {
		t.Fatalf("truncated payload deserialized without error")
	}
}

// Reasons outside the byte range fit the in-memory key but not the disk key;
// serialize drops them rather than corrupting another building's entry.
func TestSerializeSkipsUnpackableReasons(t *testing.T) {
	prefabs := prefabSet("truck_a")
	s := NewStore(nil)
	s.Add(1, host.ReasonGarbage, prefabs["truck_a"])
	s.Add(2, host.Reason(7000), prefabs["truck_a"])

	var buf bytes.Buffer
	if err := s.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	dst := NewStore(nil)
	if err := dst.Deserialize(&buf, prefabs); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if dst.Len() != 1 {
		t.Fatalf("Len = %d, want the out-of-range entry dropped", dst.Len())
	}
	if got := dst.Get(1, host.ReasonGarbage); len(got) != 1 {
		t.Fatalf("in-range entry lost: %v", got)
	}
}

func TestDecodeDumpRawNames(t *testing.T) {
	prefabs := prefabSet("truck_a", "truck_b")
	s := NewStore(nil)
	s.Add(3, host.ReasonCrime, prefabs["truck_a"])
	s.Add(3, host.ReasonCrime, prefabs["truck_b"])

	var buf bytes.Buffer
	if err := s.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	entries, err := DecodeDump(&buf)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.BuildingID != 3 || e.Reason != host.ReasonCrime {
		t.Fatalf("entry = %+v", e)
	}
	if len(e.Names) != 2 || e.Names[0] != "truck_a" || e.Names[1] != "truck_b" {
		t.Fatalf("names = %v", e.Names)
	}
}
