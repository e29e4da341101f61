package transfers

// Display labels for transfer operations. Kept as plain strings; the panel
// layer is responsible for any localization.
const (
	TitleAmbulance          = "Ambulance"
	TitleMedicalHelicopter  = "Medical helicopter"
	TitleHearse             = "Hearse"
	TitleDeadTransfer       = "Deceased transfer"
	TitleFireTruck          = "Fire truck"
	TitleFireHelicopter     = "Fire helicopter"
	TitleWaterPump          = "Water pump truck"
	TitleDisasterTruck      = "Disaster response"
	TitleDisasterHelicopter = "Disaster helicopter"
	TitlePoliceCar          = "Police car"
	TitlePoliceHelicopter   = "Police helicopter"
	TitlePrisonHelicopter   = "Prison helicopter"
	TitlePrisonVan          = "Prison van"
	TitleCargoTruck         = "Cargo truck"
	TitleLogs               = "Logs"
	TitleLumber             = "Lumber"
	TitleGrain              = "Grain"
	TitleFood               = "Food"
	TitleOil                = "Oil"
	TitlePetrol             = "Petrol"
	TitleOre                = "Ore"
	TitleCoal               = "Coal"
	TitleRoadMaintenance    = "Road maintenance"
	TitleSnowPlough         = "Snow plough"
	TitleParkMaintenance    = "Park maintenance"
	TitleMailCollection     = "Mail collection"
	TitleUnsortedMail       = "Unsorted mail"
	TitleSortedMail         = "Sorted mail"
	TitleMailExport         = "Mail export"
	TitleTaxi               = "Taxi"
	TitlePassengerTrain     = "Intercity train"
	TitleCargoTrain         = "Cargo train"
	TitlePassengerPlane     = "Passenger aircraft"
	TitleCargoPlane         = "Cargo aircraft"
	TitlePassengerShip      = "Passenger ship"
	TitleCargoShip          = "Cargo ship"
	TitleIntercityBus       = "Intercity bus"
	TitleCableCar           = "Cable car"
	TitleGarbageCollection  = "Garbage collection"
	TitleGarbageTransfer    = "Garbage transfer"
	TitleFishTruck          = "Fish truck"
	TitleFishingBoat        = "Fishing boat"
)
