// Package panel builds the per-building view models behind the selection
// UI: one tab per eligible transfer, each with the vehicles available for
// the building's effective class and the vehicles currently selected.
package panel

import (
	"vehicleselect/internal/host"
	"vehicleselect/internal/transfers"
	"vehicleselect/internal/vehicles"
)

// TransferView is one panel tab.
type TransferView struct {
	Title    string   `json:"title"`
	Reason   string   `json:"reason"`
	Incoming bool     `json:"incoming"`
	Class    string   `json:"class"`
	Selected []string `json:"selected"`
	// Available lists the prefabs matching the effective class that are
	// not already selected, in prefab load order.
	Available []string `json:"available"`
}

// BuildingView is the whole panel for one building.
type BuildingView struct {
	BuildingID uint16         `json:"building_id"`
	Name       string         `json:"name"`
	District   uint8          `json:"district,omitempty"`
	Park       uint8          `json:"park,omitempty"`
	Transfers  []TransferView `json:"transfers"`
}

type Builder struct {
	world   host.World
	prefabs host.PrefabRegistry
	store   *vehicles.Store
}

func NewBuilder(world host.World, prefabs host.PrefabRegistry, store *vehicles.Store) *Builder {
	return &Builder{world: world, prefabs: prefabs, store: store}
}

// Build returns the panel view for a building, or nil for an unknown id or
// a building with no eligible transfers.
func (p *Builder) Build(buildingID uint16) *BuildingView {
	b := p.world.Building(buildingID)
	if b == nil {
		return nil
	}
	ops := transfers.Classify(p.world, b)
	if len(ops) == 0 {
		return nil
	}
	view := &BuildingView{
		BuildingID: buildingID,
		Name:       b.Name,
		District:   p.world.District(b.Position),
		Park:       p.world.Park(b.Position),
	}
	for _, op := range ops {
		view.Transfers = append(view.Transfers, p.transferView(b, op))
	}
	return view
}

func (p *Builder) transferView(b *host.Building, op transfers.Operation) TransferView {
	class := vehicles.EffectiveClass(p.world, b, op.Reason)
	tv := TransferView{
		Title:    op.Title,
		Reason:   op.Reason.String(),
		Incoming: op.Incoming,
		Class:    className(class),
	}

	selected := p.store.Assigned(b.ID, op.Reason)
	inSelected := make(map[*host.VehicleInfo]bool, len(selected))
	for _, v := range selected {
		tv.Selected = append(tv.Selected, v.Name)
		inSelected[v] = true
	}

	p.prefabs.ForEachVehicle(func(v *host.VehicleInfo) {
		if !available(b, class, op.Reason, v) || inSelected[v] {
			return
		}
		tv.Available = append(tv.Available, v.Name)
	})
	return tv
}

// available reports whether a prefab belongs in a transfer's available list.
// Service and sub-service must match the effective class. Level must match
// too, except for the industry services, whose buildings level up without
// changing vehicle compatibility. For fishing, boats appear only on the boat
// transfer and fish trucks only on the others. A building that dispatches a
// single vehicle category lists only that category; airport subservices
// always dispatch planes.
func available(b *host.Building, class host.ItemClass, reason host.Reason, v *host.VehicleInfo) bool {
	if v.Class.Service != class.Service || v.Class.SubService != class.SubService {
		return false
	}
	if v.Class.Level != class.Level &&
		class.Service != host.ServiceIndustrial && class.Service != host.ServicePlayerIndustry {
		return false
	}
	if class.Service == host.ServiceFishing &&
		(v.Type == host.VehicleShip) != (reason == host.ReasonNone) {
		return false
	}
	if class.SubService == host.SubPublicTransportPlane {
		return v.Type == host.VehiclePlane
	}
	if b.DispatchType != nil && v.Type != *b.DispatchType {
		return false
	}
	return true
}

func className(c host.ItemClass) string {
	s := c.Service.String()
	if c.SubService != host.SubNone {
		s += "/" + c.SubService.String()
	}
	return s
}
