// Package catalog loads the building and vehicle-prefab catalogs from JSON
// and serves them behind the host query interfaces. Catalog files are
// schema-validated before decoding; a file that fails validation fails the
// whole load.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"vehicleselect/internal/host"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type vehicleDef struct {
	Name       string `json:"name"`
	Service    string `json:"service"`
	SubService string `json:"sub_service,omitempty"`
	Level      int    `json:"level"`
	Type       string `json:"type"`
}

type classDef struct {
	Service    string `json:"service"`
	SubService string `json:"sub_service,omitempty"`
	Level      int    `json:"level"`
}

type buildingDef struct {
	ID         uint16 `json:"id"`
	Name       string `json:"name"`
	Service    string `json:"service"`
	SubService string `json:"sub_service,omitempty"`
	Level      int    `json:"level"`
	ClassName  string `json:"class_name,omitempty"`
	AI         string `json:"ai,omitempty"`
	AITypeName string `json:"ai_type_name,omitempty"`

	Created     bool `json:"created"`
	Downgrading bool `json:"downgrading"`

	GraveCount            int `json:"grave_count,omitempty"`
	PumpingVehicles       int `json:"pumping_vehicles,omitempty"`
	PostVanCount          int `json:"post_van_count,omitempty"`
	ElectricityProduction int `json:"electricity_production,omitempty"`
	MaterialProduction    int `json:"material_production,omitempty"`

	OutputResource  string `json:"output_resource,omitempty"`
	VehicleReason   string `json:"vehicle_reason,omitempty"`
	WarehouseReason string `json:"warehouse_reason,omitempty"`

	BoatClass      *classDef `json:"boat_class,omitempty"`
	SecondaryClass *classDef `json:"secondary_class,omitempty"`
	DispatchType   string    `json:"dispatch_type,omitempty"`

	Position [2]float64 `json:"position"`
	District uint8      `json:"district,omitempty"`
	Park     uint8      `json:"park,omitempty"`
}

// Catalog implements host.World, host.PrefabRegistry and
// host.DefaultSelector over the loaded catalog files.
type Catalog struct {
	buildings map[uint16]*host.Building
	order     []uint16

	vehicles []*host.VehicleInfo
	byName   map[string]*host.VehicleInfo

	warehouseReasons map[uint16]host.Reason
	districts        map[[2]float64]uint8
	parks            map[[2]float64]uint8
}

// Load reads vehicles.json and buildings.json from dir.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		buildings:        map[uint16]*host.Building{},
		byName:           map[string]*host.VehicleInfo{},
		warehouseReasons: map[uint16]host.Reason{},
		districts:        map[[2]float64]uint8{},
		parks:            map[[2]float64]uint8{},
	}
	if err := c.loadVehicles(filepath.Join(dir, "vehicles.json")); err != nil {
		return nil, err
	}
	if err := c.loadBuildings(filepath.Join(dir, "buildings.json")); err != nil {
		return nil, err
	}
	return c, nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func readValidated(path, schemaName string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := compileSchema(schemaName)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", schemaName, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return raw, nil
}

func (c *Catalog) loadVehicles(path string) error {
	raw, err := readValidated(path, "vehicles.schema.json")
	if err != nil {
		return err
	}
	var defs []vehicleDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("vehicles.json: %w", err)
	}
	for _, d := range defs {
		if _, dup := c.byName[d.Name]; dup {
			return fmt.Errorf("vehicles.json: duplicate vehicle %q", d.Name)
		}
		class, err := parseClass(d.Service, d.SubService, d.Level)
		if err != nil {
			return fmt.Errorf("vehicles.json: %q: %w", d.Name, err)
		}
		t, err := host.ParseVehicleType(d.Type)
		if err != nil {
			return fmt.Errorf("vehicles.json: %q: %w", d.Name, err)
		}
		v := &host.VehicleInfo{Name: d.Name, Class: class, Type: t}
		c.vehicles = append(c.vehicles, v)
		c.byName[d.Name] = v
	}
	return nil
}

func (c *Catalog) loadBuildings(path string) error {
	raw, err := readValidated(path, "buildings.schema.json")
	if err != nil {
		return err
	}
	var defs []buildingDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("buildings.json: %w", err)
	}
	for _, d := range defs {
		if _, dup := c.buildings[d.ID]; dup {
			return fmt.Errorf("buildings.json: duplicate building id %d", d.ID)
		}
		b, err := d.toBuilding()
		if err != nil {
			return fmt.Errorf("buildings.json: id %d: %w", d.ID, err)
		}
		c.buildings[d.ID] = b
		c.order = append(c.order, d.ID)
		c.districts[b.Position] = d.District
		c.parks[b.Position] = d.Park
		if d.WarehouseReason != "" {
			reason, err := host.ParseReason(d.WarehouseReason)
			if err != nil {
				return fmt.Errorf("buildings.json: id %d: %w", d.ID, err)
			}
			c.warehouseReasons[d.ID] = reason
		}
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
	return nil
}

func (d buildingDef) toBuilding() (*host.Building, error) {
	class, err := parseClass(d.Service, d.SubService, d.Level)
	if err != nil {
		return nil, err
	}
	ai, err := host.ParseAIKind(d.AI)
	if err != nil {
		return nil, err
	}
	output, err := parseOptionalReason(d.OutputResource)
	if err != nil {
		return nil, err
	}
	vehicleReason, err := parseOptionalReason(d.VehicleReason)
	if err != nil {
		return nil, err
	}
	var flags host.BuildingFlags
	if d.Created {
		flags |= host.FlagCreated
	}
	if d.Downgrading {
		flags |= host.FlagDowngrading
	}
	b := &host.Building{
		ID:                    d.ID,
		Name:                  d.Name,
		Class:                 class,
		ClassName:             d.ClassName,
		AI:                    ai,
		AITypeName:            d.AITypeName,
		Flags:                 flags,
		GraveCount:            d.GraveCount,
		PumpingVehicles:       d.PumpingVehicles,
		PostVanCount:          d.PostVanCount,
		ElectricityProduction: d.ElectricityProduction,
		MaterialProduction:    d.MaterialProduction,
		OutputResource:        output,
		VehicleReason:         vehicleReason,
		Position:              d.Position,
	}
	if d.BoatClass != nil {
		boat, err := parseClass(d.BoatClass.Service, d.BoatClass.SubService, d.BoatClass.Level)
		if err != nil {
			return nil, err
		}
		b.BoatClass = &boat
	}
	if d.SecondaryClass != nil {
		secondary, err := parseClass(d.SecondaryClass.Service, d.SecondaryClass.SubService, d.SecondaryClass.Level)
		if err != nil {
			return nil, err
		}
		b.SecondaryClass = &secondary
	}
	if d.DispatchType != "" {
		t, err := host.ParseVehicleType(d.DispatchType)
		if err != nil {
			return nil, err
		}
		b.DispatchType = &t
	}
	return b, nil
}

func parseClass(service, subService string, level int) (host.ItemClass, error) {
	var class host.ItemClass
	svc, err := host.ParseService(service)
	if err != nil {
		return class, err
	}
	sub, err := host.ParseSubService(subService)
	if err != nil {
		return class, err
	}
	if level < 1 || level > 5 {
		return class, fmt.Errorf("level %d out of range", level)
	}
	class = host.ItemClass{Service: svc, SubService: sub, Level: host.Level(level)}
	return class, nil
}

func parseOptionalReason(name string) (host.Reason, error) {
	if name == "" {
		return host.ReasonNone, nil
	}
	return host.ParseReason(name)
}

// --- host.World ---

func (c *Catalog) Building(id uint16) *host.Building {
	return c.buildings[id]
}

func (c *Catalog) WarehouseReason(id uint16) host.Reason {
	if reason, ok := c.warehouseReasons[id]; ok {
		return reason
	}
	return host.ReasonNone
}

func (c *Catalog) ForEachBuilding(fn func(*host.Building)) {
	for _, id := range c.order {
		fn(c.buildings[id])
	}
}

func (c *Catalog) District(pos [2]float64) uint8 { return c.districts[pos] }
func (c *Catalog) Park(pos [2]float64) uint8     { return c.parks[pos] }

// --- host.PrefabRegistry ---

func (c *Catalog) FindLoaded(name string) *host.VehicleInfo {
	return c.byName[name]
}

func (c *Catalog) ForEachVehicle(fn func(*host.VehicleInfo)) {
	for _, v := range c.vehicles {
		fn(v)
	}
}

// --- host.DefaultSelector ---

// RandomVehicle draws uniformly from the prefabs whose class matches,
// consuming one randomizer value. Nil when none match.
func (c *Catalog) RandomVehicle(r *host.Randomizer, class host.ItemClass) *host.VehicleInfo {
	var candidates []*host.VehicleInfo
	for _, v := range c.vehicles {
		if v.Class == class {
			candidates = append(candidates, v)
		}
	}
	return draw(r, candidates)
}

func (c *Catalog) RandomVehicleTyped(r *host.Randomizer, class host.ItemClass, t host.VehicleType) *host.VehicleInfo {
	var candidates []*host.VehicleInfo
	for _, v := range c.vehicles {
		if v.Class == class && v.Type == t {
			candidates = append(candidates, v)
		}
	}
	return draw(r, candidates)
}

// TransferVehicle picks by material and level the way the host's transfer
// dispatcher does: the material fixes the industrial class, the level picks
// the tier.
func (c *Catalog) TransferVehicle(r *host.Randomizer, reason host.Reason, level host.Level) *host.VehicleInfo {
	class := materialClass(reason)
	class.Level = level
	var candidates []*host.VehicleInfo
	for _, v := range c.vehicles {
		if v.Class == class {
			candidates = append(candidates, v)
		}
	}
	return draw(r, candidates)
}

func draw(r *host.Randomizer, candidates []*host.VehicleInfo) *host.VehicleInfo {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[r.Int32(uint32(len(candidates)))]
}

func materialClass(reason host.Reason) host.ItemClass {
	class := host.ItemClass{Service: host.ServiceIndustrial, SubService: host.SubIndustrialGeneric}
	switch reason {
	case host.ReasonLogs, host.ReasonLumber, host.ReasonPaper, host.ReasonPlanedTimber:
		class.SubService = host.SubIndustrialForestry
	case host.ReasonGrain, host.ReasonFood, host.ReasonFlours, host.ReasonAnimalProducts:
		class.SubService = host.SubIndustrialFarming
	case host.ReasonOil, host.ReasonPetrol, host.ReasonPetroleum, host.ReasonPlastics:
		class.SubService = host.SubIndustrialOil
	case host.ReasonOre, host.ReasonCoal, host.ReasonGlass, host.ReasonMetals:
		class.SubService = host.SubIndustrialOre
	case host.ReasonFish:
		class = host.ItemClass{Service: host.ServiceFishing}
	}
	return class
}
