package host

import "fmt"

// AIKind tags the behaviour variant attached to a building prefab.
type AIKind uint8

const (
	AIUnknown AIKind = iota
	AIHospital
	AIHelicopterDepot
	AICemetery
	AIFireStation
	AIWaterFacility
	AIDisasterResponse
	AIPoliceStation
	AIBankOffice
	AIMaintenanceDepot
	AISnowDump
	AIPostOffice
	AITransportStation
	AIAirportGate
	AIAirportCargoGate
	AICableCarStation
	AILandfillSite
	AIFishingHarbor
	AIFishFarm
	AIExtractingFacility
	AIProcessingFacility
	AIUniqueFactory
	AIWarehouse
	AIIndustrialBuilding
	AIIndustrialExtractor
	AIPrivateAirport
	AIOutsideConnection
)

var aiNames = map[AIKind]string{
	AIUnknown:             "unknown",
	AIHospital:            "hospital",
	AIHelicopterDepot:     "helicopter_depot",
	AICemetery:            "cemetery",
	AIFireStation:         "fire_station",
	AIWaterFacility:       "water_facility",
	AIDisasterResponse:    "disaster_response",
	AIPoliceStation:       "police_station",
	AIBankOffice:          "bank_office",
	AIMaintenanceDepot:    "maintenance_depot",
	AISnowDump:            "snow_dump",
	AIPostOffice:          "post_office",
	AITransportStation:    "transport_station",
	AIAirportGate:         "airport_gate",
	AIAirportCargoGate:    "airport_cargo_gate",
	AICableCarStation:     "cable_car_station",
	AILandfillSite:        "landfill_site",
	AIFishingHarbor:       "fishing_harbor",
	AIFishFarm:            "fish_farm",
	AIExtractingFacility:  "extracting_facility",
	AIProcessingFacility:  "processing_facility",
	AIUniqueFactory:       "unique_factory",
	AIWarehouse:           "warehouse",
	AIIndustrialBuilding:  "industrial_building",
	AIIndustrialExtractor: "industrial_extractor",
	AIPrivateAirport:      "private_airport",
	AIOutsideConnection:   "outside_connection",
}

func (k AIKind) String() string {
	if n, ok := aiNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ai(%d)", uint8(k))
}

// ParseAIKind resolves a catalog AI name.
func ParseAIKind(name string) (AIKind, error) {
	if name == "" {
		return AIUnknown, nil
	}
	for k, n := range aiNames {
		if n == name {
			return k, nil
		}
	}
	return AIUnknown, fmt.Errorf("unknown building AI %q", name)
}

// BuildingFlags mirrors the host's per-building state bits this module reads.
type BuildingFlags uint16

const (
	FlagCreated BuildingFlags = 1 << iota
	FlagDowngrading
)

// Building is the host's read-only descriptor for one placed building.
// Fields beyond ID and Class are populated only where the AI variant defines
// them; zero values mean "not configured".
type Building struct {
	ID         uint16
	Name       string
	Class      ItemClass
	ClassName  string // prefab class name tag, for soft integration matching
	AI         AIKind
	AITypeName string // concrete AI type name, for optional-extension matching
	Flags      BuildingFlags

	GraveCount            int
	PumpingVehicles       int
	PostVanCount          int
	ElectricityProduction int
	MaterialProduction    int

	// OutputResource is the configured output of extractors and processors.
	OutputResource Reason
	// VehicleReason is the spawn reason configured on the station's
	// transport info (cable car stations).
	VehicleReason Reason
	// BoatClass is the fishing harbor's boat prefab class.
	BoatClass *ItemClass
	// SecondaryClass is the class of a station's secondary transport info,
	// when the prefab carries one (bus / intercity-bus hubs).
	SecondaryClass *ItemClass
	// DispatchType is the single vehicle category the building's AI
	// dispatches, when the AI declares one (helicopter depots, depots with
	// a fixed fleet). Nil means the AI dispatches by class alone.
	DispatchType *VehicleType

	Position [2]float64
}

// HasFlag reports whether all bits in f are set.
func (b *Building) HasFlag(f BuildingFlags) bool {
	return b != nil && b.Flags&f == f
}

// VehicleType is the host's coarse vehicle category.
type VehicleType uint8

const (
	VehicleCar VehicleType = iota
	VehicleTruck
	VehicleHelicopter
	VehicleTrain
	VehicleShip
	VehiclePlane
	VehicleCableCar
)

var vehicleTypeNames = map[VehicleType]string{
	VehicleCar:        "car",
	VehicleTruck:      "truck",
	VehicleHelicopter: "helicopter",
	VehicleTrain:      "train",
	VehicleShip:       "ship",
	VehiclePlane:      "plane",
	VehicleCableCar:   "cable_car",
}

func (t VehicleType) String() string {
	if n, ok := vehicleTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("vehicle_type(%d)", uint8(t))
}

// ParseVehicleType resolves a catalog vehicle type name.
func ParseVehicleType(name string) (VehicleType, error) {
	if name == "" {
		return VehicleCar, nil
	}
	for t, n := range vehicleTypeNames {
		if n == name {
			return t, nil
		}
	}
	return VehicleCar, fmt.Errorf("unknown vehicle type %q", name)
}

// VehicleInfo is a loaded vehicle prefab. Prefabs are compared by pointer
// identity within one session; Name is the stable cross-session identifier.
type VehicleInfo struct {
	Name  string
	Class ItemClass
	Type  VehicleType
}

// World is the host query surface this module consumes. Implementations are
// single-threaded by the host's contract; no method mutates host state.
type World interface {
	// Building returns the descriptor for id, or nil if no building with
	// that id is created.
	Building(id uint16) *Building

	// WarehouseReason resolves a warehouse building's current transfer
	// reason by calling into its AI. Only meaningful for AIWarehouse.
	WarehouseReason(id uint16) Reason

	// ForEachBuilding visits every created building in id order.
	ForEachBuilding(fn func(*Building))

	// District and Park return the area membership for a world position,
	// zero meaning "none".
	District(pos [2]float64) uint8
	Park(pos [2]float64) uint8
}

// PrefabRegistry is the host's loaded vehicle prefab set.
type PrefabRegistry interface {
	// FindLoaded returns the prefab with the given stable name, or nil.
	FindLoaded(name string) *VehicleInfo

	// ForEachVehicle visits every loaded vehicle prefab in load order.
	ForEachVehicle(fn func(*VehicleInfo))
}

// DefaultSelector is the host's own random vehicle selection, used whenever
// no override (and no external provider) claims a call site.
type DefaultSelector interface {
	// RandomVehicle draws a random prefab matching the class.
	RandomVehicle(r *Randomizer, class ItemClass) *VehicleInfo

	// RandomVehicleTyped draws a random prefab matching class and type.
	RandomVehicleTyped(r *Randomizer, class ItemClass, t VehicleType) *VehicleInfo

	// TransferVehicle is the host's material+level based selection used by
	// warehouse-style transfers.
	TransferVehicle(r *Randomizer, reason Reason, level Level) *VehicleInfo
}
