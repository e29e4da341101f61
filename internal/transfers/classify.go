// Package transfers classifies buildings into the transfer operations they
// can dispatch vehicles for.
package transfers

import "vehicleselect/internal/host"

// Operation is one transfer a building can dispatch a vehicle for.
type Operation struct {
	Reason   host.Reason
	Incoming bool
	Title    string
}

// MaxTransfers is the most operations any classified building exposes (post
// offices are the dense case with 3).
const MaxTransfers = 4

// PrisonCopterStationAIName is the concrete AI type name of the optional
// prison-extension police station. The match is by name, not type: the
// extension is optional and never referenced directly.
const PrisonCopterStationAIName = "PrisonCopterPoliceStationAI"

// Classify returns the eligible transfer operations for a building, in the
// fixed per-branch order. The order is load-bearing: copy/paste aligns
// buffers positionally. An empty result means the building type is not
// supported, which is a normal outcome and not an error.
func Classify(w host.World, b *host.Building) []Operation {
	if b == nil {
		return nil
	}

	switch b.Class.Service {
	case host.ServiceHealthCare:
		switch b.AI {
		case host.AIHospital:
			return []Operation{{Reason: host.ReasonSick, Incoming: true, Title: TitleAmbulance}}
		case host.AIHelicopterDepot:
			return []Operation{{Reason: host.ReasonSick2, Incoming: true, Title: TitleMedicalHelicopter}}
		case host.AICemetery:
			ops := []Operation{{Reason: host.ReasonDead, Incoming: true, Title: TitleHearse}}
			// Cemeteries (grave capacity configured) also move their dead out.
			if b.GraveCount > 0 {
				ops = append(ops, Operation{Reason: host.ReasonDeadMove, Incoming: false, Title: TitleDeadTransfer})
			}
			return ops
		}
		// Other healthcare AIs (saunas etc.) spawn nothing.
		return nil

	case host.ServiceFire:
		if b.AI == host.AIHelicopterDepot {
			return []Operation{{Reason: host.ReasonFire2, Incoming: true, Title: TitleFireHelicopter}}
		}
		return []Operation{{Reason: host.ReasonFire, Incoming: true, Title: TitleFireTruck}}

	case host.ServiceWater:
		// Only level-1 water facilities with pumping vehicles dispatch.
		if b.AI == host.AIWaterFacility && b.Class.Level == host.Level1 && b.PumpingVehicles > 0 {
			return []Operation{{Reason: host.ReasonFloodWater, Incoming: true, Title: TitleWaterPump}}
		}
		return nil

	case host.ServiceDisaster:
		if b.AI == host.AIDisasterResponse {
			return []Operation{
				{Reason: host.ReasonCollapsed, Incoming: true, Title: TitleDisasterTruck},
				{Reason: host.ReasonCollapsed2, Incoming: true, Title: TitleDisasterHelicopter},
			}
		}
		return nil

	case host.ServicePolice:
		if b.AI == host.AIHelicopterDepot {
			ops := []Operation{{Reason: host.ReasonCrime, Incoming: true, Title: TitlePoliceHelicopter}}
			// Prison extension: depots flagged as downgrading also run
			// prisoner transfer flights.
			if b.HasFlag(host.FlagDowngrading) {
				ops = append(ops, Operation{Reason: host.ReasonPrisonHeliMove, Incoming: true, Title: TitlePrisonHelicopter})
			}
			return ops
		}
		if b.Class.Level >= host.Level4 {
			// Prisons.
			return []Operation{{Reason: host.ReasonCriminalMove, Incoming: true, Title: TitlePrisonVan}}
		}
		ops := []Operation{{Reason: host.ReasonCrime, Incoming: true, Title: TitlePoliceCar}}
		// Prison extension central stations collect prisoners from smaller
		// stations. Matched by AI type name; see PrisonCopterStationAIName.
		if b.AITypeName == PrisonCopterStationAIName && b.HasFlag(host.FlagDowngrading) {
			ops = append(ops, Operation{Reason: host.ReasonPrisonVanMove, Incoming: true, Title: TitlePrisonVan})
		}
		return ops

	case host.ServiceIndustrial:
		return []Operation{zonedIndustrial(b)}

	case host.ServicePlayerIndustry:
		switch b.AI {
		case host.AIExtractingFacility:
			return []Operation{{Reason: b.OutputResource, Incoming: false, Title: TitleCargoTruck}}
		case host.AIProcessingFacility:
			if b.Class.Level < host.Level5 {
				return []Operation{{Reason: b.OutputResource, Incoming: false, Title: TitleCargoTruck}}
			}
			return nil
		case host.AIUniqueFactory:
			return []Operation{{Reason: host.ReasonLuxuryProducts, Incoming: false, Title: TitleCargoTruck}}
		case host.AIWarehouse:
			// The warehouse's reason is dynamic; resolve through its AI.
			return []Operation{{Reason: w.WarehouseReason(b.ID), Incoming: false, Title: TitleCargoTruck}}
		}
		return nil

	case host.ServiceRoad:
		switch b.AI {
		case host.AIMaintenanceDepot:
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleRoadMaintenance}}
		case host.AISnowDump:
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleSnowPlough}}
		}
		return nil

	case host.ServiceBeautification:
		if b.AI == host.AIMaintenanceDepot {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleParkMaintenance}}
		}
		return nil

	case host.ServicePublicTransport:
		return publicTransport(b)

	case host.ServiceGarbage:
		return garbage(b)

	case host.ServiceFishing:
		switch b.AI {
		case host.AIFishingHarbor:
			return []Operation{
				{Reason: host.ReasonFish, Incoming: false, Title: TitleFishTruck},
				{Reason: host.ReasonNone, Incoming: false, Title: TitleFishingBoat},
			}
		case host.AIFishFarm:
			// Farms have no boats.
			return []Operation{{Reason: host.ReasonFish, Incoming: false, Title: TitleFishTruck}}
		case host.AIProcessingFacility:
			return []Operation{{Reason: host.ReasonGoods, Incoming: false, Title: TitleCargoTruck}}
		}
		return nil
	}

	return nil
}

// zonedIndustrial classifies zoned industry: odd levels are extractors for
// the specialized sub-services, everything else ships processed output.
func zonedIndustrial(b *host.Building) Operation {
	extractor := b.Class.Level == host.Level2
	switch b.Class.SubService {
	case host.SubIndustrialForestry:
		if extractor {
			return Operation{Reason: host.ReasonLogs, Incoming: false, Title: TitleLogs}
		}
		return Operation{Reason: host.ReasonLumber, Incoming: false, Title: TitleLumber}
	case host.SubIndustrialFarming:
		if extractor {
			return Operation{Reason: host.ReasonGrain, Incoming: false, Title: TitleGrain}
		}
		return Operation{Reason: host.ReasonFood, Incoming: false, Title: TitleFood}
	case host.SubIndustrialOil:
		if extractor {
			return Operation{Reason: host.ReasonOil, Incoming: false, Title: TitleOil}
		}
		return Operation{Reason: host.ReasonPetrol, Incoming: false, Title: TitlePetrol}
	case host.SubIndustrialOre:
		if extractor {
			return Operation{Reason: host.ReasonOre, Incoming: false, Title: TitleOre}
		}
		return Operation{Reason: host.ReasonCoal, Incoming: false, Title: TitleCoal}
	}
	return Operation{Reason: host.ReasonGoods, Incoming: false, Title: TitleCargoTruck}
}

func publicTransport(b *host.Building) []Operation {
	switch {
	case b.AI == host.AIPostOffice:
		// Post offices own vans; sorting facilities don't.
		if b.PostVanCount > 0 {
			return []Operation{
				{Reason: host.ReasonMail, Incoming: true, Title: TitleMailCollection},
				{Reason: host.ReasonUnsortedMail, Incoming: false, Title: TitleUnsortedMail},
				{Reason: host.ReasonSortedMail, Incoming: true, Title: TitleSortedMail},
			}
		}
		return []Operation{
			{Reason: host.ReasonSortedMail, Incoming: false, Title: TitleSortedMail},
			{Reason: host.ReasonOutgoingMail, Incoming: false, Title: TitleMailExport},
		}

	case b.Class.SubService == host.SubPublicTransportTaxi:
		return []Operation{{Reason: host.ReasonTaxi, Incoming: false, Title: TitleTaxi}}

	case b.Class.SubService == host.SubPublicTransportTrain:
		if b.Class.Level == host.Level1 {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitlePassengerTrain}}
		}
		if b.Class.Level == host.Level4 {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleCargoTrain}}
		}
		return nil

	case b.AI == host.AIAirportGate:
		return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitlePassengerPlane}}

	case b.AI == host.AIAirportCargoGate:
		return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleCargoPlane}}

	case b.Class.SubService == host.SubPublicTransportShip:
		if b.Class.Level == host.Level1 {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitlePassengerShip}}
		}
		if b.Class.Level == host.Level4 {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleCargoShip}}
		}
		return nil

	case b.Class.SubService == host.SubPublicTransportBus:
		isIntercity := b.Class.Level == host.Level3
		if !isIntercity && b.SecondaryClass != nil {
			// Bus / intercity-bus hubs classify via their secondary
			// transport info.
			isIntercity = b.SecondaryClass.SubService == host.SubPublicTransportBus &&
				b.SecondaryClass.Level == host.Level3
		}
		if isIntercity {
			return []Operation{{Reason: host.ReasonNone, Incoming: true, Title: TitleIntercityBus}}
		}
		return nil

	case b.AI == host.AICableCarStation:
		return []Operation{{Reason: b.VehicleReason, Incoming: true, Title: TitleCableCar}}
	}

	return nil
}

// garbage distinguishes the five landfill-AI facility types by level and the
// two production fields. Both dimensions matter; level alone is ambiguous.
func garbage(b *host.Building) []Operation {
	if b.AI != host.AILandfillSite {
		return nil
	}
	level := b.Class.Level
	switch {
	case level == host.Level1 && b.ElectricityProduction != 0:
		// Incineration plant.
		return []Operation{{Reason: host.ReasonGarbage, Incoming: true, Title: TitleGarbageCollection}}
	case level == host.Level2 && b.MaterialProduction != 0:
		// Recycling center.
		return []Operation{{Reason: host.ReasonGarbage, Incoming: true, Title: TitleGarbageCollection}}
	case level == host.Level1:
		// Landfill site: collects, and moves out when emptied.
		return []Operation{
			{Reason: host.ReasonGarbage, Incoming: true, Title: TitleGarbageCollection},
			{Reason: host.ReasonGarbageMove, Incoming: false, Title: TitleGarbageTransfer},
		}
	case level == host.Level3 && b.ElectricityProduction == 0:
		// Waste transfer facility.
		return []Operation{{Reason: host.ReasonGarbage, Incoming: true, Title: TitleGarbageCollection}}
	case level == host.Level4:
		// Waste processing complex receives from transfer facilities.
		return []Operation{{Reason: host.ReasonGarbageTransfer, Incoming: true, Title: TitleGarbageTransfer}}
	}
	return nil
}
