// Package copypaste copies one building's vehicle assignments to another,
// or to every compatible building at once.
package copypaste

import (
	"log"

	"vehicleselect/internal/host"
	"vehicleselect/internal/transfers"
	"vehicleselect/internal/vehicles"
)

// Buffer is the snapshot taken by Copy: parallel reason and list slots in
// panel order. It is overwritten wholesale by the next Copy and never
// mutated by paste.
type Buffer struct {
	reasons [transfers.MaxTransfers]host.Reason
	lists   [transfers.MaxTransfers][]*host.VehicleInfo
	size    int
	valid   bool
}

// Valid reports whether the buffer holds at least one non-empty assignment.
func (b *Buffer) Valid() bool { return b.valid }

// Size returns the number of operation slots captured.
func (b *Buffer) Size() int { return b.size }

// Engine performs copy, paste and propagate over the assignment store.
type Engine struct {
	world  host.World
	store  *vehicles.Store
	buffer Buffer
	logger *log.Logger
}

func NewEngine(world host.World, store *vehicles.Store, logger *log.Logger) *Engine {
	return &Engine{world: world, store: store, logger: logger}
}

// Buffer exposes the current snapshot, for the panel's paste-button state.
func (e *Engine) Buffer() *Buffer { return &e.buffer }

// Copy snapshots the source building's eligible operations and their current
// assignments. Slots without an override are captured with a nil list; the
// buffer is valid only if at least one slot had one.
func (e *Engine) Copy(buildingID uint16) {
	e.buffer = Buffer{}
	b := e.world.Building(buildingID)
	if buildingID == 0 || b == nil {
		e.logf("copy requested for missing building %d", buildingID)
		return
	}
	ops := transfers.Classify(e.world, b)
	for i, op := range ops {
		e.buffer.reasons[i] = op.Reason
		if list := e.store.Assigned(buildingID, op.Reason); len(list) > 0 {
			e.buffer.lists[i] = append([]*host.VehicleInfo(nil), list...)
			e.buffer.valid = true
		}
	}
	e.buffer.size = len(ops)
}

// IsValidTarget reports whether Paste would have any effect on the given
// building: a copy is active and at least one of the target's operations
// carries the same reason in the same slot as the buffer.
func (e *Engine) IsValidTarget(buildingID uint16) bool {
	if !e.buffer.valid || buildingID == 0 {
		return false
	}
	b := e.world.Building(buildingID)
	if b == nil {
		return false
	}
	ops := transfers.Classify(e.world, b)
	for i, op := range ops {
		if i >= e.buffer.size {
			break
		}
		if op.Reason == e.buffer.reasons[i] {
			return true
		}
	}
	return false
}

// Paste writes the buffered lists onto the target building. Alignment is
// positional: a slot transfers only where the target's reason in that slot
// equals the buffer's, and a buffered empty slot clears the target's.
func (e *Engine) Paste(buildingID uint16) {
	if !e.buffer.valid {
		return
	}
	b := e.world.Building(buildingID)
	if buildingID == 0 || b == nil {
		e.logf("paste requested for missing building %d", buildingID)
		return
	}
	ops := transfers.Classify(e.world, b)
	for i, op := range ops {
		if i >= e.buffer.size {
			break
		}
		if op.Reason != e.buffer.reasons[i] {
			continue
		}
		e.store.Paste(buildingID, op.Reason, e.buffer.lists[i])
	}
}

// PropagateToMatching pastes the source building's live assignments onto
// every created building with the same effective class and operation count.
// sameDistrict and samePark restrict candidates to the source's district or
// park. The source itself is never written. Runs a full building scan, so
// only on explicit user action.
func (e *Engine) PropagateToMatching(sourceID uint16, sameDistrict, samePark bool) int {
	source := e.world.Building(sourceID)
	if sourceID == 0 || source == nil {
		e.logf("propagate requested for missing building %d", sourceID)
		return 0
	}
	sourceOps := transfers.Classify(e.world, source)
	if len(sourceOps) == 0 {
		return 0
	}
	sourceClass := vehicles.EffectiveClass(e.world, source, sourceOps[0].Reason)
	sourceDistrict := e.world.District(source.Position)
	sourcePark := e.world.Park(source.Position)

	pasted := 0
	e.world.ForEachBuilding(func(b *host.Building) {
		if b.ID == sourceID || !b.HasFlag(host.FlagCreated) {
			return
		}
		ops := transfers.Classify(e.world, b)
		if len(ops) != len(sourceOps) {
			return
		}
		class := vehicles.EffectiveClass(e.world, b, ops[0].Reason)
		if class.Service != sourceClass.Service || class.SubService != sourceClass.SubService {
			return
		}
		// Industry buildings level up on their own without changing
		// vehicle compatibility, so level is ignored for them.
		if class.Service != host.ServiceIndustrial && class.Service != host.ServicePlayerIndustry &&
			class.Level != sourceClass.Level {
			return
		}
		if sameDistrict && e.world.District(b.Position) != sourceDistrict {
			return
		}
		if samePark && e.world.Park(b.Position) != sourcePark {
			return
		}
		matched := false
		for i, op := range ops {
			if op.Reason != sourceOps[i].Reason {
				continue
			}
			e.store.Paste(b.ID, op.Reason, e.store.Assigned(sourceID, op.Reason))
			matched = true
		}
		if matched {
			pasted++
		}
	})
	return pasted
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
