// Package vehicles owns the per-building vehicle assignments and the
// effective-class resolution used to match prefabs to buildings.
package vehicles

import (
	"log"
	"sort"

	"vehicleselect/internal/host"
)

// assignKey packs (building, reason) into one collision-free key. The reason
// occupies the high 32 bits so the full signed reason domain round-trips;
// the 16-bit building id sits in the low bits.
type assignKey uint64

func makeKey(buildingID uint16, reason host.Reason) assignKey {
	return assignKey(uint64(uint32(reason))<<16 | uint64(buildingID))
}

func (k assignKey) buildingID() uint16 {
	return uint16(k & 0xFFFF)
}

func (k assignKey) reason() host.Reason {
	return host.Reason(uint32(k >> 16))
}

// Store maps (building, reason) to an ordered, deduplicated list of vehicle
// prefabs. It is session-scoped mutable state: construct one per loaded
// session and drop it on unload. All access is single-threaded by the host's
// contract.
//
// Invariants: a key is present only while its list is non-empty, a prefab
// appears at most once per key, and list order is insertion order.
type Store struct {
	assigned map[assignKey][]*host.VehicleInfo
	logger   *log.Logger
}

func NewStore(logger *log.Logger) *Store {
	return &Store{
		assigned: make(map[assignKey][]*host.VehicleInfo),
		logger:   logger,
	}
}

// Get returns the assigned list for (buildingID, reason), or nil when no
// override exists. On a miss the neutral-reason bucket is consulted as the
// default, except for the neutral reason itself and the fish reason (so
// truck overrides never bleed into fishing-boat selection). The returned
// slice is owned by the store; callers must not mutate it.
func (s *Store) Get(buildingID uint16, reason host.Reason) []*host.VehicleInfo {
	if buildingID == 0 {
		return nil
	}
	if list, ok := s.assigned[makeKey(buildingID, reason)]; ok {
		return list
	}
	if reason != host.ReasonNone && reason != host.ReasonFish {
		if list, ok := s.assigned[makeKey(buildingID, host.ReasonNone)]; ok {
			return list
		}
	}
	return nil
}

// Assigned returns the list stored for exactly (buildingID, reason), with
// no neutral-reason fallback. Used by the panel and the copy engine, which
// work on the entries as stored.
func (s *Store) Assigned(buildingID uint16, reason host.Reason) []*host.VehicleInfo {
	if buildingID == 0 {
		return nil
	}
	return s.assigned[makeKey(buildingID, reason)]
}

// Add appends a vehicle to the list for (buildingID, reason). Adding a
// vehicle already present is a no-op. Invalid input logs and does nothing.
func (s *Store) Add(buildingID uint16, reason host.Reason, vehicle *host.VehicleInfo) {
	if buildingID == 0 || vehicle == nil {
		s.logf("invalid parameter passed to Store.Add")
		return
	}
	key := makeKey(buildingID, reason)
	for _, v := range s.assigned[key] {
		if v == vehicle {
			return
		}
	}
	s.assigned[key] = append(s.assigned[key], vehicle)
}

// Remove removes a vehicle from the list for (buildingID, reason), deleting
// the entry when the list empties.
func (s *Store) Remove(buildingID uint16, reason host.Reason, vehicle *host.VehicleInfo) {
	if buildingID == 0 || vehicle == nil {
		s.logf("invalid parameter passed to Store.Remove")
		return
	}
	key := makeKey(buildingID, reason)
	list, ok := s.assigned[key]
	if !ok {
		return
	}
	for i, v := range list {
		if v == vehicle {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(s.assigned, key)
		return
	}
	s.assigned[key] = list
}

// Paste replaces the list for (buildingID, reason) with a content copy of
// vehicles. A nil or empty paste clears the entry.
func (s *Store) Paste(buildingID uint16, reason host.Reason, vehicles []*host.VehicleInfo) {
	if buildingID == 0 {
		s.logf("invalid buildingID passed to Store.Paste")
		return
	}
	key := makeKey(buildingID, reason)
	if len(vehicles) == 0 {
		delete(s.assigned, key)
		return
	}
	list := make([]*host.VehicleInfo, len(vehicles))
	copy(list, vehicles)
	s.assigned[key] = list
}

// Release drops every entry for the given building, whatever the reason.
// Called when the host demolishes or reuses a building id, so stale
// assignments never attach to an unrelated future building.
func (s *Store) Release(buildingID uint16) {
	for key := range s.assigned {
		if key.buildingID() == buildingID {
			delete(s.assigned, key)
		}
	}
}

// Clear empties the store. Called on session teardown and before load.
func (s *Store) Clear() {
	s.assigned = make(map[assignKey][]*host.VehicleInfo)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.assigned)
}

// Entry is a stable snapshot of one stored assignment, for inspection and
// serialization.
type Entry struct {
	BuildingID uint16
	Reason     host.Reason
	Vehicles   []*host.VehicleInfo
}

// Entries returns all assignments sorted by building then reason.
func (s *Store) Entries() []Entry {
	keys := make([]assignKey, 0, len(s.assigned))
	for key := range s.assigned {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].buildingID() != keys[j].buildingID() {
			return keys[i].buildingID() < keys[j].buildingID()
		}
		return keys[i].reason() < keys[j].reason()
	})
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{
			BuildingID: key.buildingID(),
			Reason:     key.reason(),
			Vehicles:   s.assigned[key],
		})
	}
	return entries
}

func (s *Store) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
