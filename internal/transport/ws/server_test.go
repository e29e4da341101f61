package ws

import (
	"context"
	"testing"

	"vehicleselect/internal/dispatch"
	"vehicleselect/internal/host"
	"vehicleselect/internal/panel"
	"vehicleselect/internal/session"
)

type stubWorld struct {
	buildings map[uint16]*host.Building
}

func (w stubWorld) Building(id uint16) *host.Building       { return w.buildings[id] }
func (w stubWorld) WarehouseReason(id uint16) host.Reason   { return host.ReasonNone }
func (w stubWorld) District(pos [2]float64) uint8           { return 0 }
func (w stubWorld) Park(pos [2]float64) uint8               { return 0 }

func (w stubWorld) ForEachBuilding(fn func(*host.Building)) {
	for id := uint16(1); id < 10; id++ {
		if b, ok := w.buildings[id]; ok {
			fn(b)
		}
	}
}

type stubPrefabs []*host.VehicleInfo

func (p stubPrefabs) FindLoaded(name string) *host.VehicleInfo {
	for _, v := range p {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (p stubPrefabs) ForEachVehicle(fn func(*host.VehicleInfo)) {
	for _, v := range p {
		fn(v)
	}
}

type stubSelector struct{}

func (stubSelector) RandomVehicle(r *host.Randomizer, class host.ItemClass) *host.VehicleInfo {
	r.Int32(1)
	return nil
}

func (stubSelector) RandomVehicleTyped(r *host.Randomizer, class host.ItemClass, t host.VehicleType) *host.VehicleInfo {
	r.Int32(1)
	return nil
}

func (stubSelector) TransferVehicle(r *host.Randomizer, reason host.Reason, level host.Level) *host.VehicleInfo {
	r.Int32(1)
	return nil
}

func newServer(t *testing.T) (*Server, stubPrefabs) {
	t.Helper()
	garbageClass := host.ItemClass{Service: host.ServiceGarbage, Level: host.Level1}
	world := stubWorld{buildings: map[uint16]*host.Building{
		1: {ID: 1, Name: "Landfill A", Class: garbageClass, AI: host.AILandfillSite, Flags: host.FlagCreated, Position: [2]float64{1, 0}},
		2: {ID: 2, Name: "Landfill B", Class: garbageClass, AI: host.AILandfillSite, Flags: host.FlagCreated, Position: [2]float64{2, 0}},
	}}
	prefabs := stubPrefabs{
		{Name: "Garbage Truck 01", Class: garbageClass, Type: host.VehicleTruck},
		{Name: "Garbage Truck 02", Class: garbageClass, Type: host.VehicleTruck},
	}

	sess, err := session.New(context.Background(), session.Options{World: world, Prefabs: prefabs})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	dispatcher := dispatch.New(world, sess.Store(), stubSelector{}, nil)
	panels := panel.NewBuilder(world, prefabs, sess.Store())
	return NewServer(sess, world, prefabs, panels, dispatcher, host.NewRandomizer(1), nil), prefabs
}

func TestHandlePanelAndEdits(t *testing.T) {
	s, _ := newServer(t)

	resp := s.handle(Request{Op: "panel", Building: 1})
	if !resp.Ok || resp.Panel == nil || len(resp.Panel.Transfers) != 2 {
		t.Fatalf("panel response: %+v", resp)
	}

	resp = s.handle(Request{Op: "add", Building: 1, Reason: "garbage", Vehicle: "Garbage Truck 01"})
	if !resp.Ok {
		t.Fatalf("add failed: %+v", resp)
	}
	if got := resp.Panel.Transfers[0].Selected; len(got) != 1 || got[0] != "Garbage Truck 01" {
		t.Fatalf("selected after add: %v", got)
	}

	resp = s.handle(Request{Op: "remove", Building: 1, Reason: "garbage", Vehicle: "Garbage Truck 01"})
	if !resp.Ok || len(resp.Panel.Transfers[0].Selected) != 0 {
		t.Fatalf("remove response: %+v", resp)
	}
}

func TestHandleCopyPasteAll(t *testing.T) {
	s, _ := newServer(t)

	if resp := s.handle(Request{Op: "add", Building: 1, Reason: "garbage", Vehicle: "Garbage Truck 02"}); !resp.Ok {
		t.Fatalf("add failed: %+v", resp)
	}
	if resp := s.handle(Request{Op: "copy", Building: 1}); !resp.Ok {
		t.Fatalf("copy failed: %+v", resp)
	}
	if resp := s.handle(Request{Op: "paste", Building: 2}); !resp.Ok {
		t.Fatalf("paste failed: %+v", resp)
	}
	resp := s.handle(Request{Op: "panel", Building: 2})
	if got := resp.Panel.Transfers[0].Selected; len(got) != 1 || got[0] != "Garbage Truck 02" {
		t.Fatalf("pasted selection: %v", got)
	}

	if resp := s.handle(Request{Op: "paste_all", Building: 1}); !resp.Ok || resp.Pasted != 1 {
		t.Fatalf("paste_all response: %+v", resp)
	}
}

func TestHandlePreview(t *testing.T) {
	s, _ := newServer(t)

	if resp := s.handle(Request{Op: "add", Building: 1, Reason: "garbage", Vehicle: "Garbage Truck 01"}); !resp.Ok {
		t.Fatalf("add failed: %+v", resp)
	}
	resp := s.handle(Request{Op: "preview", Building: 1, Reason: "garbage"})
	if !resp.Ok || resp.Vehicle != "Garbage Truck 01" {
		t.Fatalf("preview response: %+v", resp)
	}
}

func TestHandleErrors(t *testing.T) {
	s, _ := newServer(t)

	if resp := s.handle(Request{Op: "warp"}); resp.Ok || resp.Code != ErrUnknownOp {
		t.Fatalf("unknown op: %+v", resp)
	}
	if resp := s.handle(Request{Op: "panel", Building: 99}); resp.Ok || resp.Code != ErrNoBuilding {
		t.Fatalf("missing building: %+v", resp)
	}
	if resp := s.handle(Request{Op: "add", Building: 1, Reason: "warp", Vehicle: "Garbage Truck 01"}); resp.Ok || resp.Code != ErrBadReason {
		t.Fatalf("bad reason: %+v", resp)
	}
	if resp := s.handle(Request{Op: "add", Building: 1, Reason: "garbage", Vehicle: "Missing"}); resp.Ok || resp.Code != ErrNoVehicle {
		t.Fatalf("bad vehicle: %+v", resp)
	}
	if resp := s.handle(Request{Op: "paste", Building: 2}); resp.Ok || resp.Code != ErrInvalidTarget {
		t.Fatalf("paste without copy: %+v", resp)
	}
}
