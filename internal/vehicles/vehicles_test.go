package vehicles

import (
	"vehicleselect/internal/host"
)

// Shared test fakes for the host query surface.

type stubWorld struct {
	buildings map[uint16]*host.Building
	warehouse map[uint16]host.Reason
}

func (w stubWorld) Building(id uint16) *host.Building { return w.buildings[id] }

func (w stubWorld) WarehouseReason(id uint16) host.Reason {
	if r, ok := w.warehouse[id]; ok {
		return r
	}
	return host.ReasonNone
}

func (w stubWorld) ForEachBuilding(fn func(*host.Building)) {
	for _, b := range w.buildings {
		fn(b)
	}
}

func (w stubWorld) District(pos [2]float64) uint8 { return 0 }
func (w stubWorld) Park(pos [2]float64) uint8     { return 0 }

type stubPrefabs map[string]*host.VehicleInfo

func (p stubPrefabs) FindLoaded(name string) *host.VehicleInfo { return p[name] }

func (p stubPrefabs) ForEachVehicle(fn func(*host.VehicleInfo)) {
	for _, v := range p {
		fn(v)
	}
}

func prefabSet(names ...string) stubPrefabs {
	p := stubPrefabs{}
	for _, n := range names {
		p[n] = &host.VehicleInfo{Name: n}
	}
	return p
}
