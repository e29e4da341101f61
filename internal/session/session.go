// Package session ties one loaded savegame to its assignment state: it owns
// the store and the copy engine, loads them from the savedata container on
// start, serializes them on save and clears them on teardown. Consumers get
// the store through the session, never through package state.
package session

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"github.com/rs/xid"

	"vehicleselect/internal/copypaste"
	"vehicleselect/internal/host"
	auditlog "vehicleselect/internal/persistence/log"
	"vehicleselect/internal/persistence/savedata"
	"vehicleselect/internal/vehicles"
)

type Options struct {
	World     host.World
	Prefabs   host.PrefabRegistry
	Container *savedata.Container
	Audit     *auditlog.AuditLogger
	Logger    *log.Logger

	// LegacyImport reads the predecessor's blob when our own is absent.
	LegacyImport bool
}

type Session struct {
	ID string

	world     host.World
	prefabs   host.PrefabRegistry
	container *savedata.Container
	audit     *auditlog.AuditLogger
	logger    *log.Logger

	store  *vehicles.Store
	copier *copypaste.Engine
}

// New builds the session and loads any persisted assignments. A missing or
// unsupported blob starts the session empty; only I/O failures are errors.
func New(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{
		ID:        xid.New().String(),
		world:     opts.World,
		prefabs:   opts.Prefabs,
		container: opts.Container,
		audit:     opts.Audit,
		logger:    opts.Logger,
	}
	s.store = vehicles.NewStore(opts.Logger)
	s.copier = copypaste.NewEngine(opts.World, s.store, opts.Logger)

	if s.container == nil {
		return s, nil
	}
	if err := s.load(ctx, opts.LegacyImport); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load(ctx context.Context, legacyImport bool) error {
	payload, ok, err := s.container.Load(ctx, savedata.DataID)
	if err != nil {
		return err
	}
	if ok {
		return s.loadCurrent(payload)
	}
	if !legacyImport {
		return nil
	}
	payload, ok, err = s.container.Load(ctx, savedata.LegacyDataID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.loadLegacy(payload)
}

func (s *Session) loadCurrent(payload []byte) error {
	r := bytes.NewReader(payload)
	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read data version: %w", err)
	}
	if version < 0 || version > vehicles.FormatVersion {
		s.logf("unsupported data version %d, starting empty", version)
		return nil
	}
	if err := s.store.Deserialize(r, s.prefabs); err != nil {
		return fmt.Errorf("deserialize assignments: %w", err)
	}
	s.logf("session %s loaded %d assignment entries", s.ID, s.store.Len())
	return nil
}

func (s *Session) loadLegacy(payload []byte) error {
	r := bytes.NewReader(payload)
	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read legacy data version: %w", err)
	}
	if err := s.store.DeserializeLegacy(r, version, s.prefabs); err != nil {
		s.logf("legacy import failed, starting empty: %v", err)
		s.store.Clear()
		return nil
	}
	s.logf("session %s imported %d entries from legacy data", s.ID, s.store.Len())
	return nil
}

// Save serializes the store under the current data id.
func (s *Session) Save(ctx context.Context) error {
	if s.container == nil {
		return fmt.Errorf("session has no savedata container")
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, vehicles.FormatVersion); err != nil {
		return err
	}
	if err := s.store.Serialize(&buf); err != nil {
		return err
	}
	return s.container.Save(ctx, savedata.DataID, buf.Bytes())
}

// Close clears the assignment state. The container and audit logger belong
// to the caller and stay open.
func (s *Session) Close() {
	s.store.Clear()
}

func (s *Session) Store() *vehicles.Store    { return s.store }
func (s *Session) Copier() *copypaste.Engine { return s.copier }

// Add assigns a vehicle and audits the mutation.
func (s *Session) Add(buildingID uint16, reason host.Reason, vehicle *host.VehicleInfo) {
	s.store.Add(buildingID, reason, vehicle)
	name := ""
	if vehicle != nil {
		name = vehicle.Name
	}
	s.writeAudit("add", buildingID, reason, name, len(s.store.Assigned(buildingID, reason)))
}

// Remove unassigns a vehicle and audits the mutation.
func (s *Session) Remove(buildingID uint16, reason host.Reason, vehicle *host.VehicleInfo) {
	s.store.Remove(buildingID, reason, vehicle)
	name := ""
	if vehicle != nil {
		name = vehicle.Name
	}
	s.writeAudit("remove", buildingID, reason, name, len(s.store.Assigned(buildingID, reason)))
}

// Copy snapshots a source building into the copy buffer.
func (s *Session) Copy(buildingID uint16) {
	s.copier.Copy(buildingID)
}

// Paste applies the copy buffer to one target building.
func (s *Session) Paste(buildingID uint16) {
	s.copier.Paste(buildingID)
	s.writeAudit("paste", buildingID, 0, "", s.store.Len())
}

// PasteAll propagates a source building's assignments to every matching
// building and returns how many were written.
func (s *Session) PasteAll(sourceID uint16, sameDistrict, samePark bool) int {
	n := s.copier.PropagateToMatching(sourceID, sameDistrict, samePark)
	s.writeAudit("paste_all", sourceID, 0, "", n)
	return n
}

// Release drops every assignment for a demolished building.
func (s *Session) Release(buildingID uint16) {
	s.store.Release(buildingID)
	s.writeAudit("release", buildingID, 0, "", s.store.Len())
}

func (s *Session) writeAudit(op string, buildingID uint16, reason host.Reason, vehicle string, count int) {
	if s.audit == nil {
		return
	}
	entry := auditlog.AuditEntry{
		Time:     time.Now().UTC().Format(time.RFC3339),
		Session:  s.ID,
		Op:       op,
		Building: buildingID,
		Vehicle:  vehicle,
		Count:    count,
	}
	if op == "add" || op == "remove" {
		entry.Reason = reason.String()
	}
	if err := s.audit.WriteAudit(entry); err != nil {
		s.logf("audit write failed: %v", err)
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
