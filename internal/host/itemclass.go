package host

import "fmt"

// Service is a building's top-level service category.
type Service uint8

const (
	ServiceNone Service = iota
	ServiceResidential
	ServiceCommercial
	ServiceIndustrial
	ServiceOffice
	ServiceElectricity
	ServiceWater
	ServiceGarbage
	ServiceHealthCare
	ServicePolice
	ServiceFire
	ServiceEducation
	ServiceBeautification
	ServiceMonument
	ServiceRoad
	ServicePublicTransport
	ServiceDisaster
	ServicePlayerIndustry
	ServiceFishing
)

type SubService uint8

const (
	SubNone SubService = iota
	SubIndustrialGeneric
	SubIndustrialForestry
	SubIndustrialFarming
	SubIndustrialOil
	SubIndustrialOre
	SubPlayerIndustryForestry
	SubPlayerIndustryFarming
	SubPlayerIndustryOil
	SubPlayerIndustryOre
	SubPublicTransportBus
	SubPublicTransportTrain
	SubPublicTransportShip
	SubPublicTransportPlane
	SubPublicTransportTaxi
	SubPublicTransportCableCar
	SubPublicTransportPost
)

// Level is a building or vehicle tier (1-5).
type Level uint8

const (
	Level1 Level = 1 + iota
	Level2
	Level3
	Level4
	Level5
)

// ItemClass is the (service, sub-service, level) triple the engine uses to
// match vehicle prefabs to buildings.
type ItemClass struct {
	Service    Service
	SubService SubService
	Level      Level
}

var serviceNames = map[Service]string{
	ServiceNone:            "none",
	ServiceResidential:     "residential",
	ServiceCommercial:      "commercial",
	ServiceIndustrial:      "industrial",
	ServiceOffice:          "office",
	ServiceElectricity:     "electricity",
	ServiceWater:           "water",
	ServiceGarbage:         "garbage",
	ServiceHealthCare:      "healthcare",
	ServicePolice:          "police",
	ServiceFire:            "fire",
	ServiceEducation:       "education",
	ServiceBeautification:  "beautification",
	ServiceMonument:        "monument",
	ServiceRoad:            "road",
	ServicePublicTransport: "public_transport",
	ServiceDisaster:        "disaster",
	ServicePlayerIndustry:  "player_industry",
	ServiceFishing:         "fishing",
}

var subServiceNames = map[SubService]string{
	SubNone:                    "none",
	SubIndustrialGeneric:       "industrial_generic",
	SubIndustrialForestry:      "industrial_forestry",
	SubIndustrialFarming:       "industrial_farming",
	SubIndustrialOil:           "industrial_oil",
	SubIndustrialOre:           "industrial_ore",
	SubPlayerIndustryForestry:  "player_industry_forestry",
	SubPlayerIndustryFarming:   "player_industry_farming",
	SubPlayerIndustryOil:       "player_industry_oil",
	SubPlayerIndustryOre:       "player_industry_ore",
	SubPublicTransportBus:      "transport_bus",
	SubPublicTransportTrain:    "transport_train",
	SubPublicTransportShip:     "transport_ship",
	SubPublicTransportPlane:    "transport_plane",
	SubPublicTransportTaxi:     "transport_taxi",
	SubPublicTransportCableCar: "transport_cable_car",
	SubPublicTransportPost:     "transport_post",
}

func (s Service) String() string {
	if n, ok := serviceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("service(%d)", uint8(s))
}

func (s SubService) String() string {
	if n, ok := subServiceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("sub_service(%d)", uint8(s))
}

// ParseService resolves a catalog service name.
func ParseService(name string) (Service, error) {
	for s, n := range serviceNames {
		if n == name {
			return s, nil
		}
	}
	return ServiceNone, fmt.Errorf("unknown service %q", name)
}

// ParseSubService resolves a catalog sub-service name.
func ParseSubService(name string) (SubService, error) {
	if name == "" {
		return SubNone, nil
	}
	for s, n := range subServiceNames {
		if n == name {
			return s, nil
		}
	}
	return SubNone, fmt.Errorf("unknown sub-service %q", name)
}
