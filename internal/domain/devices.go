package domain

// Devices is the catalog of brewers recipes can target, keyed by BrewID.
var Devices = []BrewDevice{
	{ID: "aeropress", Name: "AeroPress", Category: "immersion", Capacity: 250},
	{ID: "stagg-x", Name: "Fellow Stagg [X]", Category: "percolation", Capacity: 600},
	{ID: "v60", Name: "Hario V60", Category: "percolation", Capacity: 700},
	{ID: "french-press", Name: "French Press", Category: "immersion", Capacity: 1000},
}

// DeviceByID returns the catalog entry for id.
func DeviceByID(id string) (BrewDevice, bool) {
	for _, d := range Devices {
		if d.ID == id {
			return d, true
		}
	}
	return BrewDevice{}, false
}
