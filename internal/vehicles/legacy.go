package vehicles

import (
	"encoding/binary"
	"fmt"
	"io"

	"vehicleselect/internal/host"
)

// Legacy container support: an older mod serialized per-building district and
// park restriction records ahead of the vehicle lists. Those fields are
// obsolete here; the reader skips them and keeps only the trailing vehicle
// data.

const (
	legacyMinVersion = 2
	legacyMaxVersion = 4
)

// DeserializeLegacy reads the legacy container payload (after its version
// header) and loads the trailing vehicle data into the store.
func (s *Store) DeserializeLegacy(r io.Reader, version int32, prefabs host.PrefabRegistry) error {
	if version < legacyMinVersion || version > legacyMaxVersion {
		return fmt.Errorf("unsupported legacy data version %d", version)
	}
	if err := skipLegacyBuildings(r, version); err != nil {
		return fmt.Errorf("skip legacy building records: %w", err)
	}
	if err := skipLegacyWarehouses(r); err != nil {
		return fmt.Errorf("skip legacy warehouse records: %w", err)
	}
	return s.Deserialize(r, prefabs)
}

func skipLegacyBuildings(r io.Reader, version int32) error {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		// Entry key.
		if err := skip(r, 4); err != nil {
			return err
		}
		if version <= 2 {
			// Record-number byte, restriction flags byte, reason int32.
			if err := skip(r, 1+1+4); err != nil {
				return err
			}
		} else {
			// Flags uint32.
			if err := skip(r, 4); err != nil {
				return err
			}
		}

		// District entries.
		var districts int32
		if err := binary.Read(r, binary.LittleEndian, &districts); err != nil {
			return err
		}
		if err := skip(r, int64(districts)*4); err != nil {
			return err
		}

		// Allowed-building entries.
		var buildings int32
		if err := binary.Read(r, binary.LittleEndian, &buildings); err != nil {
			return err
		}
		if err := skip(r, int64(buildings)*4); err != nil {
			return err
		}
	}
	return nil
}

func skipLegacyWarehouses(r io.Reader) error {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}
	// Entry key plus one record byte each.
	return skip(r, int64(count)*5)
}

func skip(r io.Reader, n int64) error {
	if n < 0 {
		return fmt.Errorf("negative skip length")
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
