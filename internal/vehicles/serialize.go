package vehicles

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"vehicleselect/internal/host"
)

// FormatVersion is the current serialized data version, written by the
// session ahead of the store payload.
const FormatVersion int32 = 0

// Serialized layout (little-endian), after the session's version header:
//
//	[int32 entryCount]
//	per entry: [uint32 packedKey][uint16 vehicleCount][string name]*
//
// Strings are uint16-length-prefixed UTF-8. The on-disk key keeps the
// original 32-bit packing (reason byte in the top 8 bits, building id in the
// low 16) for savegame compatibility; entries whose reason cannot round-trip
// through a byte are skipped with a log line. The in-memory key is wider, so
// such entries are representable but not persistable.

func packDiskKey(buildingID uint16, reason host.Reason) (uint32, bool) {
	if reason < 0 || reason > 255 {
		return 0, false
	}
	return uint32(reason)<<24 | uint32(buildingID), true
}

func unpackDiskKey(key uint32) (uint16, host.Reason) {
	return uint16(key & 0xFFFF), host.Reason(key >> 24)
}

// Serialize writes all non-empty entries to w.
func (s *Store) Serialize(w io.Writer) error {
	entries := s.Entries()
	kept := entries[:0]
	for _, e := range entries {
		if _, ok := packDiskKey(e.BuildingID, e.Reason); !ok {
			s.logf("dropping unserializable reason %d for building %d", e.Reason, e.BuildingID)
			continue
		}
		kept = append(kept, e)
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(kept))); err != nil {
		return fmt.Errorf("write entry count: %w", err)
	}
	for _, e := range kept {
		key, _ := packDiskKey(e.BuildingID, e.Reason)
		if err := binary.Write(w, binary.LittleEndian, key); err != nil {
			return fmt.Errorf("write key: %w", err)
		}
		if len(e.Vehicles) > math.MaxUint16 {
			return fmt.Errorf("entry %08x: vehicle list too long", key)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Vehicles))); err != nil {
			return fmt.Errorf("write vehicle count: %w", err)
		}
		for _, v := range e.Vehicles {
			name := ""
			if v != nil {
				name = v.Name
			}
			if err := writeString(w, name); err != nil {
				return fmt.Errorf("write vehicle name: %w", err)
			}
		}
	}
	return nil
}

// Deserialize clears the store and reads entries from r, resolving vehicle
// names against the loaded prefab set. The format is tolerant, not
// integrity-checked: unresolvable names are dropped, entries left with no
// vehicles are dropped, and duplicate keys are skipped, all with a log line.
func (s *Store) Deserialize(r io.Reader, prefabs host.PrefabRegistry) error {
	s.Clear()

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read entry count: %w", err)
	}
	for i := int32(0); i < count; i++ {
		var key uint32
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		var vehicleCount uint16
		if err := binary.Read(r, binary.LittleEndian, &vehicleCount); err != nil {
			return fmt.Errorf("read vehicle count: %w", err)
		}

		var list []*host.VehicleInfo
		for j := uint16(0); j < vehicleCount; j++ {
			name, err := readString(r)
			if err != nil {
				return fmt.Errorf("read vehicle name: %w", err)
			}
			if name == "" {
				s.logf("empty vehicle name in entry %08x", key)
				continue
			}
			vehicle := prefabs.FindLoaded(name)
			if vehicle == nil {
				// Content pack missing or changed; drop the name.
				s.logf("couldn't find vehicle %q", name)
				continue
			}
			list = append(list, vehicle)
		}
		if len(list) == 0 {
			continue
		}

		buildingID, reason := unpackDiskKey(key)
		memKey := makeKey(buildingID, reason)
		if _, exists := s.assigned[memKey]; exists {
			s.logf("duplicate vehicle key %08x; skipping", key)
			continue
		}
		s.assigned[memKey] = list
	}
	return nil
}

// DumpEntry is one serialized assignment decoded without prefab resolution.
type DumpEntry struct {
	BuildingID uint16
	Reason     host.Reason
	Names      []string
}

// DecodeDump reads serialized store data as raw names, for offline
// inspection of savegames whose prefabs aren't loaded.
func DecodeDump(r io.Reader) ([]DumpEntry, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read entry count: %w", err)
	}
	var entries []DumpEntry
	for i := int32(0); i < count; i++ {
		var key uint32
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		var vehicleCount uint16
		if err := binary.Read(r, binary.LittleEndian, &vehicleCount); err != nil {
			return nil, fmt.Errorf("read vehicle count: %w", err)
		}
		buildingID, reason := unpackDiskKey(key)
		entry := DumpEntry{BuildingID: buildingID, Reason: reason}
		for j := uint16(0); j < vehicleCount; j++ {
			name, err := readString(r)
			if err != nil {
				return nil, fmt.Errorf("read vehicle name: %w", err)
			}
			entry.Names = append(entry.Names, name)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long (%d bytes)", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
