package dispatch

import (
	"log"

	"vehicleselect/internal/host"
)

// Integration names one recognized external chooser and the call site it
// participates in. Order within a site is the order providers run. Skip,
// when set, bypasses the provider for requests it declares out of scope.
type Integration struct {
	Name string
	Site CallSite
	Skip func(Request) bool
}

// Class name tags of the cargo facilities the truck limiter leaves to the
// choosers after it in the chain.
const (
	heliCargoClassName  = "Helicopter Cargo Facility"
	ferryCargoClassName = "Ferry Cargo Facility"
)

func heliOrFerryCargo(req Request) bool {
	return req.SourceClassName == heliCargoClassName ||
		req.SourceClassName == ferryCargoClassName
}

// knownIntegrations lists the external choosers probed at session start.
// Providers run only after our own assignments have had their chance; the
// truck limiter participates at both the warehouse and cargo hub sites, and
// the cargo hub consults its three choosers in this order.
var knownIntegrations = []Integration{
	{Name: "big-truck-limiter", Site: SiteWarehouseTransfer},
	{Name: "line-vehicle-manager", Site: SiteTransportStation},
	{Name: "big-truck-limiter", Site: SiteCargoHub, Skip: heliOrFerryCargo},
	{Name: "cargo-ferries", Site: SiteCargoHub},
	{Name: "freight-transporters", Site: SiteCargoHub},
}

// Discoverer resolves an integration by name. It returns nil when the
// integration is not installed; it may panic on a broken installation.
type Discoverer func(name string) func(Request) *host.VehicleInfo

// RegisterKnown probes each known integration and registers the ones
// present, preserving the declared order. A probe that fails or panics
// leaves that integration unregistered for the rest of the session.
func RegisterKnown(reg *Registry, discover Discoverer, logger *log.Logger) {
	if discover == nil {
		return
	}
	for _, integ := range knownIntegrations {
		choose := probe(discover, integ.Name, logger)
		if choose == nil {
			continue
		}
		if skip := integ.Skip; skip != nil {
			inner := choose
			choose = func(req Request) *host.VehicleInfo {
				if skip(req) {
					return nil
				}
				return inner(req)
			}
		}
		reg.Register(integ.Site, Provider{Name: integ.Name, Choose: choose})
		if logger != nil {
			logger.Printf("integration %s active at %s", integ.Name, integ.Site)
		}
	}
}

func probe(discover Discoverer, name string, logger *log.Logger) (choose func(Request) *host.VehicleInfo) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Printf("integration %s probe failed: %v", name, r)
			}
			choose = nil
		}
	}()
	return discover(name)
}
