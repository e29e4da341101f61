// Package ws is the panel bridge: a websocket endpoint the UI process uses
// to read building panels and edit assignments. One JSON request per
// message, one JSON response back.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vehicleselect/internal/dispatch"
	"vehicleselect/internal/host"
	"vehicleselect/internal/panel"
	"vehicleselect/internal/session"
	"vehicleselect/internal/vehicles"
)

const (
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrUnknownOp     = "E_UNKNOWN_OP"
	ErrNoBuilding    = "E_NO_BUILDING"
	ErrNoVehicle     = "E_NO_VEHICLE"
	ErrBadReason     = "E_BAD_REASON"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrInternal      = "E_INTERNAL"
)

type Request struct {
	Op       string `json:"op"`
	Building uint16 `json:"building,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Vehicle  string `json:"vehicle,omitempty"`

	// paste_all scope flags.
	SameDistrict bool `json:"same_district,omitempty"`
	SamePark     bool `json:"same_park,omitempty"`
}

type Response struct {
	Ok      bool                `json:"ok"`
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Panel   *panel.BuildingView `json:"panel,omitempty"`
	Pasted  int                 `json:"pasted,omitempty"`
	Vehicle string              `json:"vehicle,omitempty"`
}

type Server struct {
	session    *session.Session
	world      host.World
	prefabs    host.PrefabRegistry
	panels     *panel.Builder
	dispatcher *dispatch.Dispatcher
	rand       *host.Randomizer
	log        *log.Logger

	// Edits arrive from any number of panel connections; the session and
	// store have no locking of their own.
	mu sync.Mutex

	upgrader websocket.Upgrader
}

func NewServer(sess *session.Session, world host.World, prefabs host.PrefabRegistry, panels *panel.Builder, dispatcher *dispatch.Dispatcher, rand *host.Randomizer, logger *log.Logger) *Server {
	return &Server{
		session:    sess,
		world:      world,
		prefabs:    prefabs,
		panels:     panels,
		dispatcher: dispatcher,
		rand:       rand,
		log:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			if s.log != nil {
				s.log.Printf("upgrade failed: %v", err)
			}
			return
		}
		defer conn.Close()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req Request
			if err := json.Unmarshal(msg, &req); err != nil {
				if err := writeJSON(conn, Response{Ok: false, Code: ErrBadRequest, Message: "malformed request"}); err != nil {
					return
				}
				continue
			}
			if err := writeJSON(conn, s.handle(req)); err != nil {
				return
			}
		}
	}
}

func (s *Server) handle(req Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Op {
	case "panel":
		view := s.panels.Build(req.Building)
		if view == nil {
			return fail(ErrNoBuilding, "no eligible building")
		}
		return Response{Ok: true, Panel: view}

	case "add", "remove":
		reason, err := host.ParseReason(req.Reason)
		if err != nil {
			return fail(ErrBadReason, err.Error())
		}
		vehicle := s.prefabs.FindLoaded(req.Vehicle)
		if vehicle == nil {
			return fail(ErrNoVehicle, "unknown vehicle "+req.Vehicle)
		}
		if req.Op == "add" {
			s.session.Add(req.Building, reason, vehicle)
		} else {
			s.session.Remove(req.Building, reason, vehicle)
		}
		return Response{Ok: true, Panel: s.panels.Build(req.Building)}

	case "copy":
		s.session.Copy(req.Building)
		return Response{Ok: true}

	case "paste":
		if !s.session.Copier().IsValidTarget(req.Building) {
			return fail(ErrInvalidTarget, "paste target does not match copied building")
		}
		s.session.Paste(req.Building)
		return Response{Ok: true, Panel: s.panels.Build(req.Building)}

	case "paste_all":
		n := s.session.PasteAll(req.Building, req.SameDistrict, req.SamePark)
		return Response{Ok: true, Pasted: n}

	case "release":
		s.session.Release(req.Building)
		return Response{Ok: true}

	// preview runs the live selection path for a building and reason,
	// showing which prefab the next transfer would get.
	case "preview":
		reason, err := host.ParseReason(req.Reason)
		if err != nil {
			return fail(ErrBadReason, err.Error())
		}
		b := s.world.Building(req.Building)
		if b == nil {
			return fail(ErrNoBuilding, "no such building")
		}
		class := vehicles.EffectiveClass(s.world, b, reason)
		v := s.dispatcher.ChooseVehicle(s.rand, class, req.Building, reason)
		if v == nil {
			return fail(ErrNoVehicle, "no vehicle available for class")
		}
		return Response{Ok: true, Vehicle: v.Name}

	default:
		return fail(ErrUnknownOp, "unknown op "+req.Op)
	}
}

func fail(code, message string) Response {
	return Response{Ok: false, Code: code, Message: message}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
