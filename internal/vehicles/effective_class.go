package vehicles

import "vehicleselect/internal/host"

// EffectiveClass resolves the (service, sub-service, level) triple that
// determines which vehicle prefabs are compatible with a building for a given
// transfer reason. The default is the building's own class; multi-purpose
// building types re-derive. Never cached: the underlying AI state (flags,
// dynamic output resource) can change between calls.
func EffectiveClass(w host.World, b *host.Building, reason host.Reason) host.ItemClass {
	class := b.Class

	switch {
	case b.Class.Service == host.ServicePlayerIndustry:
		return playerIndustryClass(w, b)

	case b.Class.SubService == host.SubPublicTransportPost:
		// Post vans are the low tier; trucks the high-capacity one.
		if reason == host.ReasonMail {
			class.Level = host.Level2
		} else {
			class.Level = host.Level5
		}

	case b.Class.Service == host.ServiceFishing:
		switch {
		case reason == host.ReasonNone && b.AI == host.AIFishingHarbor:
			// Boat selection: substitute the harbor's boat class wholesale.
			if b.BoatClass != nil {
				class = *b.BoatClass
			}
		case b.AI == host.AIFishFarm:
			// Fish trucks are tier-1.
			class.Level = host.Level1
		case b.AI == host.AIProcessingFacility:
			class.Service = host.ServiceIndustrial
			class.SubService = host.SubIndustrialGeneric
		}

	case b.Class.SubService == host.SubPublicTransportBus && b.Class.Level == host.Level1:
		// Intercity-bus hub: the secondary transport info carries the level.
		if b.SecondaryClass != nil && b.SecondaryClass.SubService == host.SubPublicTransportBus {
			class.Level = b.SecondaryClass.Level
		}

	case reason == host.ReasonPrisonVanMove || reason == host.ReasonPrisonHeliMove:
		// Prison-extension transfers use depot-tier vehicles.
		class.Level = host.Level4
	}

	return class
}

// playerIndustryClass remaps player-built industry onto the private-industry
// equivalent class the vehicle prefabs are registered under. The mapping is
// keyed by the building's actual output reason, which for warehouses and
// extractors/processors is resolved dynamically.
func playerIndustryClass(w host.World, b *host.Building) host.ItemClass {
	class := host.ItemClass{
		Service:    host.ServiceIndustrial,
		SubService: host.SubNone,
		Level:      b.Class.Level,
	}

	reason := host.ReasonNone
	switch b.AI {
	case host.AIWarehouse:
		reason = w.WarehouseReason(b.ID)
	case host.AIExtractingFacility, host.AIProcessingFacility:
		reason = b.OutputResource
	}

	switch reason {
	case host.ReasonOre, host.ReasonCoal, host.ReasonGlass, host.ReasonMetals:
		class.SubService = host.SubIndustrialOre
	case host.ReasonLogs, host.ReasonLumber, host.ReasonPaper, host.ReasonPlanedTimber:
		class.SubService = host.SubIndustrialForestry
	case host.ReasonOil, host.ReasonPetrol, host.ReasonPetroleum, host.ReasonPlastics:
		class.SubService = host.SubIndustrialOil
	case host.ReasonGrain, host.ReasonFood, host.ReasonFlours:
		class.SubService = host.SubIndustrialFarming
	case host.ReasonAnimalProducts:
		// Animal products keep their own service category.
		class.Service = host.ServicePlayerIndustry
		class.SubService = host.SubPlayerIndustryFarming
	case host.ReasonGoods:
		class.SubService = host.SubIndustrialGeneric
	case host.ReasonLuxuryProducts:
		class.Service = host.ServicePlayerIndustry
	case host.ReasonFish:
		// Fish warehousing draws from the fishing service.
		if b.AI == host.AIWarehouse {
			class.Service = host.ServiceFishing
		}
	}

	return class
}
