package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vehicleselect/internal/host"
)

func writeCatalog(t *testing.T, vehicles, buildings string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicles.json"), []byte(vehicles), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "buildings.json"), []byte(buildings), 0o644))
	return dir
}

const testVehicles = `[
  {"name": "Garbage Truck 01", "service": "garbage", "level": 1, "type": "truck"},
  {"name": "Garbage Truck 02", "service": "garbage", "level": 1, "type": "truck"},
  {"name": "Police Car", "service": "police", "level": 1, "type": "car"},
  {"name": "Log Truck", "service": "industrial", "sub_service": "industrial_forestry", "level": 2, "type": "truck"}
]`

const testBuildings = `[
  {"id": 1, "name": "Landfill", "service": "garbage", "level": 1, "ai": "landfill_site",
   "created": true, "position": [100, 200], "district": 3, "park": 0},
  {"id": 2, "name": "Sawmill Warehouse", "service": "player_industry", "level": 1, "ai": "warehouse",
   "created": true, "warehouse_reason": "planed_timber", "position": [300, 400]}
]`

func TestLoadCatalog(t *testing.T) {
	c, err := Load(writeCatalog(t, testVehicles, testBuildings))
	require.NoError(t, err)

	b := c.Building(1)
	require.NotNil(t, b)
	require.Equal(t, host.ServiceGarbage, b.Class.Service)
	require.Equal(t, host.AILandfillSite, b.AI)
	require.True(t, b.HasFlag(host.FlagCreated))
	require.Nil(t, c.Building(99))

	require.Equal(t, host.ReasonPlanedTimber, c.WarehouseReason(2))
	require.Equal(t, host.ReasonNone, c.WarehouseReason(1))

	require.EqualValues(t, 3, c.District([2]float64{100, 200}))
	require.EqualValues(t, 0, c.Park([2]float64{100, 200}))

	v := c.FindLoaded("Police Car")
	require.NotNil(t, v)
	require.Equal(t, host.ServicePolice, v.Class.Service)
	require.Nil(t, c.FindLoaded("Missing"))

	var ids []uint16
	c.ForEachBuilding(func(b *host.Building) { ids = append(ids, b.ID) })
	require.Equal(t, []uint16{1, 2}, ids)
}

func TestDefaultSelector(t *testing.T) {
	c, err := Load(writeCatalog(t, testVehicles, testBuildings))
	require.NoError(t, err)

	r := host.NewRandomizer(42)
	garbage := host.ItemClass{Service: host.ServiceGarbage, Level: host.Level1}

	v := c.RandomVehicle(r, garbage)
	require.NotNil(t, v)
	require.Equal(t, garbage, v.Class)

	require.Nil(t, c.RandomVehicle(r, host.ItemClass{Service: host.ServiceFire, Level: host.Level1}))

	typed := c.RandomVehicleTyped(r, garbage, host.VehicleTruck)
	require.NotNil(t, typed)
	require.Nil(t, c.RandomVehicleTyped(r, garbage, host.VehicleHelicopter))

	// Material-based selection maps the reason onto the industrial class.
	log := c.TransferVehicle(r, host.ReasonLogs, host.Level2)
	require.NotNil(t, log)
	require.Equal(t, "Log Truck", log.Name)
	require.Nil(t, c.TransferVehicle(r, host.ReasonOre, host.Level2))
}

func TestLoadRejectsInvalidSchema(t *testing.T) {
	// Vehicle level out of range.
	_, err := Load(writeCatalog(t,
		`[{"name": "x", "service": "garbage", "level": 9, "type": "truck"}]`,
		testBuildings))
	require.Error(t, err)

	// Building id zero.
	_, err = Load(writeCatalog(t, testVehicles,
		`[{"id": 0, "name": "x", "service": "garbage", "level": 1}]`))
	require.Error(t, err)

	// Not even JSON.
	_, err = Load(writeCatalog(t, `{not json`, testBuildings))
	require.Error(t, err)
}

func TestLoadRejectsDuplicatesAndUnknownNames(t *testing.T) {
	_, err := Load(writeCatalog(t,
		`[{"name": "x", "service": "garbage", "level": 1, "type": "truck"},
		  {"name": "x", "service": "garbage", "level": 1, "type": "truck"}]`,
		testBuildings))
	require.Error(t, err)

	_, err = Load(writeCatalog(t,
		`[{"name": "x", "service": "warp_drive", "level": 1, "type": "truck"}]`,
		testBuildings))
	require.Error(t, err)
}
