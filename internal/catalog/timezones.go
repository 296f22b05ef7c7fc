package catalog

// Zone is one selectable timezone with its country and a fixed integer UTC
// offset. Offsets ignore daylight saving on purpose: the original bot's
// abbreviation table was not DST-aware and suggestions inherit that
// approximation.
type Zone struct {
	ID      string
	Country string
	Offset  int
}

// Region groups countries for the manual drill-down path
type Region struct {
	Name  string
	Zones []Zone
}

// TimezoneRegions is the ordered region → country → zone catalog
var TimezoneRegions = []Region{
	{Name: "North America", Zones: []Zone{
		{ID: "America/Los_Angeles", Country: "USA (Pacific)", Offset: -8},
		{ID: "America/Denver", Country: "USA (Mountain)", Offset: -7},
		{ID: "America/Chicago", Country: "USA (Central)", Offset: -6},
		{ID: "America/New_York", Country: "USA (Eastern)", Offset: -5},
		{ID: "America/Toronto", Country: "Canada (Eastern)", Offset: -5},
		{ID: "America/Mexico_City", Country: "Mexico", Offset: -6},
	}},
	{Name: "South America", Zones: []Zone{
		{ID: "America/Sao_Paulo", Country: "Brazil", Offset: -3},
		{ID: "America/Argentina/Buenos_Aires", Country: "Argentina", Offset: -3},
		{ID: "America/Bogota", Country: "Colombia", Offset: -5},
		{ID: "America/Santiago", Country: "Chile", Offset: -4},
	}},
	{Name: "Europe (West)", Zones: []Zone{
		{ID: "Europe/London", Country: "United Kingdom", Offset: 0},
		{ID: "Europe/Lisbon", Country: "Portugal", Offset: 0},
		{ID: "Europe/Paris", Country: "France", Offset: 1},
		{ID: "Europe/Berlin", Country: "Germany", Offset: 1},
		{ID: "Europe/Madrid", Country: "Spain", Offset: 1},
		{ID: "Europe/Amsterdam", Country: "Netherlands", Offset: 1},
	}},
	{Name: "Europe (East)", Zones: []Zone{
		{ID: "Europe/Helsinki", Country: "Finland", Offset: 2},
		{ID: "Europe/Athens", Country: "Greece", Offset: 2},
		{ID: "Europe/Bucharest", Country: "Romania", Offset: 2},
		{ID: "Europe/Moscow", Country: "Russia (Moscow)", Offset: 3},
	}},
	{Name: "Middle East", Zones: []Zone{
		{ID: "Asia/Istanbul", Country: "Turkey", Offset: 3},
		{ID: "Asia/Dubai", Country: "UAE", Offset: 4},
		{ID: "Asia/Riyadh", Country: "Saudi Arabia", Offset: 3},
	}},
	{Name: "Asia (South)", Zones: []Zone{
		{ID: "Asia/Karachi", Country: "Pakistan", Offset: 5},
		{ID: "Asia/Kolkata", Country: "India", Offset: 5},
		{ID: "Asia/Dhaka", Country: "Bangladesh", Offset: 6},
	}},
	{Name: "Asia (Southeast)", Zones: []Zone{
		{ID: "Asia/Bangkok", Country: "Thailand", Offset: 7},
		{ID: "Asia/Jakarta", Country: "Indonesia (West)", Offset: 7},
		{ID: "Asia/Singapore", Country: "Singapore", Offset: 8},
		{ID: "Asia/Manila", Country: "Philippines", Offset: 8},
		{ID: "Asia/Ho_Chi_Minh", Country: "Vietnam", Offset: 7},
	}},
	{Name: "Asia (East)", Zones: []Zone{
		{ID: "Asia/Shanghai", Country: "China", Offset: 8},
		{ID: "Asia/Taipei", Country: "Taiwan", Offset: 8},
		{ID: "Asia/Hong_Kong", Country: "Hong Kong", Offset: 8},
		{ID: "Asia/Tokyo", Country: "Japan", Offset: 9},
		{ID: "Asia/Seoul", Country: "South Korea", Offset: 9},
	}},
	{Name: "Oceania", Zones: []Zone{
		{ID: "Australia/Perth", Country: "Australia (West)", Offset: 8},
		{ID: "Australia/Sydney", Country: "Australia (East)", Offset: 10},
		{ID: "Pacific/Auckland", Country: "New Zealand", Offset: 12},
	}},
}

// Regions lists the region names in catalog order
func Regions() []string {
	names := make([]string, 0, len(TimezoneRegions))
	for _, r := range TimezoneRegions {
		names = append(names, r.Name)
	}
	return names
}

// Countries lists the countries of one region, in catalog order. Returns
// nil for an unknown region.
func Countries(region string) []string {
	for _, r := range TimezoneRegions {
		if r.Name != region {
			continue
		}
		countries := make([]string, 0, len(r.Zones))
		for _, z := range r.Zones {
			countries = append(countries, z.Country)
		}
		return countries
	}
	return nil
}

// ZonesFor returns the zones of one country within a region
func ZonesFor(region, country string) []Zone {
	for _, r := range TimezoneRegions {
		if r.Name != region {
			continue
		}
		var zones []Zone
		for _, z := range r.Zones {
			if z.Country == country {
				zones = append(zones, z)
			}
		}
		return zones
	}
	return nil
}

// ZonesByOffset returns every zone whose fixed offset equals the given
// whole-hour offset. The result may be empty; callers fall back to the
// manual drill-down.
func ZonesByOffset(offset int) []Zone {
	var zones []Zone
	for _, r := range TimezoneRegions {
		for _, z := range r.Zones {
			if z.Offset == offset {
				zones = append(zones, z)
			}
		}
	}
	return zones
}

// FindZone looks a zone up by its ID
func FindZone(id string) (Zone, bool) {
	for _, r := range TimezoneRegions {
		for _, z := range r.Zones {
			if z.ID == id {
				return z, true
			}
		}
	}
	return Zone{}, false
}
