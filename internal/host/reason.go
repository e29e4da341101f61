package host

import "fmt"

// Reason is a transfer-reason code. The domain is open: codes outside the
// named set are injected by external extensions and must be carried opaquely.
type Reason int32

const (
	ReasonGarbage         Reason = 0
	ReasonCrime           Reason = 1
	ReasonSick            Reason = 2
	ReasonDead            Reason = 3
	ReasonFire            Reason = 4
	ReasonGarbageMove     Reason = 5
	ReasonGarbageTransfer Reason = 6
	ReasonCriminalMove    Reason = 7
	ReasonSick2           Reason = 8
	ReasonFire2           Reason = 9
	ReasonCollapsed       Reason = 10
	ReasonCollapsed2      Reason = 11
	ReasonFloodWater      Reason = 12
	ReasonDeadMove        Reason = 13
	ReasonTaxi            Reason = 14
	ReasonMail            Reason = 15
	ReasonUnsortedMail    Reason = 16
	ReasonSortedMail      Reason = 17
	ReasonOutgoingMail    Reason = 18
	ReasonLogs            Reason = 19
	ReasonLumber          Reason = 20
	ReasonPaper           Reason = 21
	ReasonPlanedTimber    Reason = 22
	ReasonGrain           Reason = 23
	ReasonFood            Reason = 24
	ReasonFlours          Reason = 25
	ReasonAnimalProducts  Reason = 26
	ReasonOil             Reason = 27
	ReasonPetrol          Reason = 28
	ReasonPetroleum       Reason = 29
	ReasonPlastics        Reason = 30
	ReasonOre             Reason = 31
	ReasonCoal            Reason = 32
	ReasonGlass           Reason = 33
	ReasonMetals          Reason = 34
	ReasonGoods           Reason = 35
	ReasonLuxuryProducts  Reason = 36
	ReasonFish            Reason = 37
	ReasonDummyTrain      Reason = 38
	ReasonCash            Reason = 39

	// Externally injected prison-transfer codes. Values are fixed by the
	// extension that defines them and are carried verbatim.
	ReasonPrisonVanMove  Reason = 120
	ReasonPrisonHeliMove Reason = 121

	// ReasonNone is the neutral code: no reason filter, match on vehicle
	// class alone.
	ReasonNone Reason = 255
)

var reasonNames = map[Reason]string{
	ReasonGarbage:         "garbage",
	ReasonCrime:           "crime",
	ReasonSick:            "sick",
	ReasonDead:            "dead",
	ReasonFire:            "fire",
	ReasonGarbageMove:     "garbage_move",
	ReasonGarbageTransfer: "garbage_transfer",
	ReasonCriminalMove:    "criminal_move",
	ReasonSick2:           "sick2",
	ReasonFire2:           "fire2",
	ReasonCollapsed:       "collapsed",
	ReasonCollapsed2:      "collapsed2",
	ReasonFloodWater:      "flood_water",
	ReasonDeadMove:        "dead_move",
	ReasonTaxi:            "taxi",
	ReasonMail:            "mail",
	ReasonUnsortedMail:    "unsorted_mail",
	ReasonSortedMail:      "sorted_mail",
	ReasonOutgoingMail:    "outgoing_mail",
	ReasonLogs:            "logs",
	ReasonLumber:          "lumber",
	ReasonPaper:           "paper",
	ReasonPlanedTimber:    "planed_timber",
	ReasonGrain:           "grain",
	ReasonFood:            "food",
	ReasonFlours:          "flours",
	ReasonAnimalProducts:  "animal_products",
	ReasonOil:             "oil",
	ReasonPetrol:          "petrol",
	ReasonPetroleum:       "petroleum",
	ReasonPlastics:        "plastics",
	ReasonOre:             "ore",
	ReasonCoal:            "coal",
	ReasonGlass:           "glass",
	ReasonMetals:          "metals",
	ReasonGoods:           "goods",
	ReasonLuxuryProducts:  "luxury_products",
	ReasonFish:            "fish",
	ReasonDummyTrain:      "dummy_train",
	ReasonCash:            "cash",
	ReasonPrisonVanMove:   "prison_van_move",
	ReasonPrisonHeliMove:  "prison_heli_move",
	ReasonNone:            "none",
}

func (r Reason) String() string {
	if n, ok := reasonNames[r]; ok {
		return n
	}
	return fmt.Sprintf("reason(%d)", int32(r))
}

// ParseReason resolves a catalog reason name.
func ParseReason(name string) (Reason, error) {
	if name == "" {
		return ReasonNone, nil
	}
	for r, n := range reasonNames {
		if n == name {
			return r, nil
		}
	}
	return ReasonNone, fmt.Errorf("unknown reason %q", name)
}
