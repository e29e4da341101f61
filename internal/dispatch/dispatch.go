// Package dispatch substitutes custom vehicle selection at each host call
// site that would otherwise pick a random prefab. Call sites are explicit
// registration points; competing external providers are chained per site in
// declared precedence order, resolved once at session start.
package dispatch

import (
	"vehicleselect/internal/host"
	"vehicleselect/internal/vehicles"
)

// CallSite names one host vehicle-choice location.
type CallSite string

const (
	// SiteStartTransfer covers the service-building StartTransfer family
	// (hospitals, police, fire, garbage, post, maintenance, banks, ...).
	SiteStartTransfer CallSite = "start_transfer"

	// SiteWarehouseTransfer covers warehouse/extractor/processor
	// transfers selected by material and level.
	SiteWarehouseTransfer CallSite = "warehouse_transfer"

	// SiteTransportStation covers intercity vehicle creation at
	// transport stations (in and out).
	SiteTransportStation CallSite = "transport_station"

	// SiteCargoHub covers cargo vehicle re-typing between cargo
	// stations (trains, ships, trucks).
	SiteCargoHub CallSite = "cargo_hub"

	// SiteFishingBoat covers fishing harbor boat spawning.
	SiteFishingBoat CallSite = "fishing_boat"

	// SiteAviationClub covers private airport plane checks.
	SiteAviationClub CallSite = "aviation_club"
)

// Request carries the call-site arguments to an external provider.
type Request struct {
	Rand             *host.Randomizer
	Class            host.ItemClass
	VehicleType      host.VehicleType
	HasVehicleType   bool
	Reason           host.Reason
	Level            host.Level
	BuildingID       uint16
	SourceBuildingID uint16

	// SourceClassName is the source building's prefab class name tag, for
	// providers that exclude specific facility kinds by name.
	SourceClassName string
}

// Provider is one optional external override for a call site. Choose may
// return nil to pass; absence of a provider is the normal case.
type Provider struct {
	Name   string
	Choose func(req Request) *host.VehicleInfo
}

// Registry holds the per-site provider chains. Registration order is
// precedence order.
type Registry struct {
	chains map[CallSite][]Provider
}

func NewRegistry() *Registry {
	return &Registry{chains: make(map[CallSite][]Provider)}
}

func (r *Registry) Register(site CallSite, p Provider) {
	r.chains[site] = append(r.chains[site], p)
}

// Providers returns the chain for a site in precedence order.
func (r *Registry) Providers(site CallSite) []Provider {
	return r.chains[site]
}

// Dispatcher resolves vehicle choices: the assignment store first, then the
// site's provider chain, then the host default.
type Dispatcher struct {
	world    host.World
	store    *vehicles.Store
	defaults host.DefaultSelector
	registry *Registry
}

func New(world host.World, store *vehicles.Store, defaults host.DefaultSelector, registry *Registry) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Dispatcher{world: world, store: store, defaults: defaults, registry: registry}
}

// pick draws uniformly from a non-empty list, consuming exactly one value
// from the shared stream (replacing the draw the default path would make).
func pick(r *host.Randomizer, list []*host.VehicleInfo) *host.VehicleInfo {
	return list[r.Int32(uint32(len(list)))]
}

func (d *Dispatcher) consult(site CallSite, req Request) *host.VehicleInfo {
	for _, p := range d.registry.Providers(site) {
		if v := p.Choose(req); v != nil {
			return v
		}
	}
	return nil
}

// SelectedVehicle is the override-only path: it returns the chosen prefab,
// or nil to fall through to the host's own selection callback.
func (d *Dispatcher) SelectedVehicle(r *host.Randomizer, buildingID uint16, reason host.Reason) *host.VehicleInfo {
	list := d.store.Get(buildingID, reason)
	if len(list) == 0 {
		return nil
	}
	return pick(r, list)
}

// ChooseVehicle services the standard StartTransfer call sites.
func (d *Dispatcher) ChooseVehicle(r *host.Randomizer, class host.ItemClass, buildingID uint16, reason host.Reason) *host.VehicleInfo {
	if list := d.store.Get(buildingID, reason); len(list) > 0 {
		return pick(r, list)
	}
	if v := d.consult(SiteStartTransfer, Request{Rand: r, Class: class, Reason: reason, BuildingID: buildingID}); v != nil {
		return v
	}
	return d.defaults.RandomVehicle(r, class)
}

// ChooseVehicleTyped is ChooseVehicle with the additional vehicle-type
// argument some call sites carry (helicopter depots and the like).
func (d *Dispatcher) ChooseVehicleTyped(r *host.Randomizer, class host.ItemClass, t host.VehicleType, buildingID uint16, reason host.Reason) *host.VehicleInfo {
	if list := d.store.Get(buildingID, reason); len(list) > 0 {
		return pick(r, list)
	}
	req := Request{Rand: r, Class: class, VehicleType: t, HasVehicleType: true, Reason: reason, BuildingID: buildingID}
	if v := d.consult(SiteStartTransfer, req); v != nil {
		return v
	}
	return d.defaults.RandomVehicleTyped(r, class, t)
}

// WarehouseTransfer services warehouse, extractor and processor transfers.
// The source building id is zero except for warehouse dispatches, where
// providers need it.
func (d *Dispatcher) WarehouseTransfer(r *host.Randomizer, reason host.Reason, level host.Level, buildingID, sourceBuildingID uint16) *host.VehicleInfo {
	if list := d.store.Get(buildingID, reason); len(list) > 0 {
		return pick(r, list)
	}
	req := Request{Rand: r, Reason: reason, Level: level, BuildingID: buildingID, SourceBuildingID: sourceBuildingID}
	if v := d.consult(SiteWarehouseTransfer, req); v != nil {
		return v
	}
	return d.defaults.TransferVehicle(r, reason, level)
}

// TransportStation services intercity vehicle creation. Station overrides
// are keyed on the neutral reason.
func (d *Dispatcher) TransportStation(r *host.Randomizer, class host.ItemClass, t host.VehicleType, buildingID uint16) *host.VehicleInfo {
	if list := d.store.Get(buildingID, host.ReasonNone); len(list) > 0 {
		return pick(r, list)
	}
	req := Request{Rand: r, Class: class, VehicleType: t, HasVehicleType: true, BuildingID: buildingID}
	if v := d.consult(SiteTransportStation, req); v != nil {
		return v
	}
	return d.defaults.RandomVehicleTyped(r, class, t)
}

// CargoHub services cargo vehicle re-typing between two cargo stations.
// Direction follows from whether the source is the outside connection; the
// owning station is the city-side one. Rail legs of ship/rail cargo hubs are
// keyed on the dummy-train reason so train and truck overrides stay apart.
func (d *Dispatcher) CargoHub(r *host.Randomizer, class host.ItemClass, sourceStation, destStation uint16, material host.Reason) *host.VehicleInfo {
	source := d.world.Building(sourceStation)
	incoming := source != nil && source.AI == host.AIOutsideConnection

	reason := host.ReasonNone
	if class.SubService == host.SubPublicTransportTrain {
		cargoBuilding := source
		if incoming {
			cargoBuilding = d.world.Building(destStation)
		}
		if cargoBuilding != nil && cargoBuilding.Class.SubService == host.SubPublicTransportShip {
			reason = host.ReasonDummyTrain
		}
	}

	owner := sourceStation
	if incoming {
		owner = destStation
	}
	if list := d.store.Get(owner, reason); len(list) > 0 {
		return pick(r, list)
	}

	req := Request{
		Rand:             r,
		Class:            class,
		Reason:           material,
		BuildingID:       owner,
		SourceBuildingID: sourceStation,
	}
	if source != nil {
		req.SourceClassName = source.ClassName
	}
	if v := d.consult(SiteCargoHub, req); v != nil {
		return v
	}
	return d.defaults.RandomVehicle(r, class)
}

// FishingBoat services harbor boat spawning, keyed on the neutral reason.
func (d *Dispatcher) FishingBoat(r *host.Randomizer, class host.ItemClass, t host.VehicleType, buildingID uint16) *host.VehicleInfo {
	if list := d.store.Get(buildingID, host.ReasonNone); len(list) > 0 {
		return pick(r, list)
	}
	req := Request{Rand: r, Class: class, VehicleType: t, HasVehicleType: true, BuildingID: buildingID}
	if v := d.consult(SiteFishingBoat, req); v != nil {
		return v
	}
	return d.defaults.RandomVehicleTyped(r, class, t)
}

// AviationClub services private-airport plane checks, keyed on the neutral
// reason.
func (d *Dispatcher) AviationClub(r *host.Randomizer, class host.ItemClass, buildingID uint16) *host.VehicleInfo {
	if list := d.store.Get(buildingID, host.ReasonNone); len(list) > 0 {
		return pick(r, list)
	}
	if v := d.consult(SiteAviationClub, Request{Rand: r, Class: class, BuildingID: buildingID}); v != nil {
		return v
	}
	return d.defaults.RandomVehicle(r, class)
}
