package weather

// CustomLocationName names a manually entered coordinate pair.
const CustomLocationName = "Ubicación Personalizada"

// LocationMode selects where the working set of locations comes from.
type LocationMode int

const (
	LocationModeFixed LocationMode = iota
	LocationModeManual
)

func (m LocationMode) String() string {
	switch m {
	case LocationModeManual:
		return "manual"
	default:
		return "fixed"
	}
}

// FixedLocations returns the five Galician cities reported by default, in order.
// A fresh slice is returned on every call.
func FixedLocations() []Location {
	return []Location{
		{Name: "Santiago de Compostela", Latitude: 42.8805, Longitude: -8.5463},
		{Name: "A Coruña", Latitude: 43.3623, Longitude: -8.4115},
		{Name: "Vigo", Latitude: 42.2406, Longitude: -8.7207},
		{Name: "Lugo", Latitude: 43.0125, Longitude: -7.5583},
		{Name: "Ourense", Latitude: 42.3409, Longitude: -7.8641},
	}
}

// DefaultLocation is the fallback used when manual input cannot be parsed.
func DefaultLocation() Location {
	return FixedLocations()[0]
}

// CustomLocation builds the location for manually entered coordinates.
func CustomLocation(lat, lon float64) Location {
	return Location{Name: CustomLocationName, Latitude: lat, Longitude: lon}
}

// SelectLocations returns the working set for mode. manual is only used in
// LocationModeManual.
func SelectLocations(mode LocationMode, manual Location) []Location {
	if mode == LocationModeManual {
		return []Location{manual}
	}
	return FixedLocations()
}
