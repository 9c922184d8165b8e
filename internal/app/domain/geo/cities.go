package geo

import "github.com/FACorreiaa/loci-itinerary/internal/app/models"

// defaultCities is the built-in lookup table. Order matters: substring
// matching returns the first entry that matches.
var defaultCities = []models.Location{
	// Europe
	{Name: "Lisbon", Lat: 38.7223, Lng: -9.1393},
	{Name: "Porto", Lat: 41.1579, Lng: -8.6291},
	{Name: "Madrid", Lat: 40.4168, Lng: -3.7038},
	{Name: "Barcelona", Lat: 41.3874, Lng: 2.1686},
	{Name: "Seville", Lat: 37.3891, Lng: -5.9845},
	{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
	{Name: "Nice", Lat: 43.7102, Lng: 7.2620},
	{Name: "London", Lat: 51.5074, Lng: -0.1278},
	{Name: "Edinburgh", Lat: 55.9533, Lng: -3.1883},
	{Name: "Dublin", Lat: 53.3498, Lng: -6.2603},
	{Name: "Amsterdam", Lat: 52.3676, Lng: 4.9041},
	{Name: "Brussels", Lat: 50.8503, Lng: 4.3517},
	{Name: "Berlin", Lat: 52.5200, Lng: 13.4050},
	{Name: "Munich", Lat: 48.1351, Lng: 11.5820},
	{Name: "Frankfurt", Lat: 50.1109, Lng: 8.6821},
	{Name: "Zurich", Lat: 47.3769, Lng: 8.5417},
	{Name: "Geneva", Lat: 46.2044, Lng: 6.1432},
	{Name: "Vienna", Lat: 48.2082, Lng: 16.3738},
	{Name: "Prague", Lat: 50.0755, Lng: 14.4378},
	{Name: "Budapest", Lat: 47.4979, Lng: 19.0402},
	{Name: "Warsaw", Lat: 52.2297, Lng: 21.0122},
	{Name: "Krakow", Lat: 50.0647, Lng: 19.9450},
	{Name: "Rome", Lat: 41.9028, Lng: 12.4964},
	{Name: "Milan", Lat: 45.4642, Lng: 9.1900},
	{Name: "Florence", Lat: 43.7696, Lng: 11.2558},
	{Name: "Venice", Lat: 45.4408, Lng: 12.3155},
	{Name: "Naples", Lat: 40.8518, Lng: 14.2681},
	{Name: "Athens", Lat: 37.9838, Lng: 23.7275},
	{Name: "Istanbul", Lat: 41.0082, Lng: 28.9784},
	{Name: "Copenhagen", Lat: 55.6761, Lng: 12.5683},
	{Name: "Stockholm", Lat: 59.3293, Lng: 18.0686},
	{Name: "Oslo", Lat: 59.9139, Lng: 10.7522},
	{Name: "Helsinki", Lat: 60.1699, Lng: 24.9384},
	{Name: "Reykjavik", Lat: 64.1466, Lng: -21.9426},
	{Name: "Moscow", Lat: 55.7558, Lng: 37.6173},

	// Americas
	{Name: "New York", Lat: 40.7128, Lng: -74.0060},
	{Name: "Boston", Lat: 42.3601, Lng: -71.0589},
	{Name: "Washington", Lat: 38.9072, Lng: -77.0369},
	{Name: "Chicago", Lat: 41.8781, Lng: -87.6298},
	{Name: "Miami", Lat: 25.7617, Lng: -80.1918},
	{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437},
	{Name: "San Francisco", Lat: 37.7749, Lng: -122.4194},
	{Name: "Las Vegas", Lat: 36.1699, Lng: -115.1398},
	{Name: "Seattle", Lat: 47.6062, Lng: -122.3321},
	{Name: "Toronto", Lat: 43.6532, Lng: -79.3832},
	{Name: "Vancouver", Lat: 49.2827, Lng: -123.1207},
	{Name: "Montreal", Lat: 45.5017, Lng: -73.5673},
	{Name: "Mexico City", Lat: 19.4326, Lng: -99.1332},
	{Name: "Cancun", Lat: 21.1619, Lng: -86.8515},
	{Name: "Havana", Lat: 23.1136, Lng: -82.3666},
	{Name: "Bogota", Lat: 4.7110, Lng: -74.0721},
	{Name: "Lima", Lat: -12.0464, Lng: -77.0428},
	{Name: "Rio de Janeiro", Lat: -22.9068, Lng: -43.1729},
	{Name: "Sao Paulo", Lat: -23.5505, Lng: -46.6333},
	{Name: "Buenos Aires", Lat: -34.6037, Lng: -58.3816},
	{Name: "Santiago", Lat: -33.4489, Lng: -70.6693},

	// Africa & Middle East
	{Name: "Marrakech", Lat: 31.6295, Lng: -7.9811},
	{Name: "Cairo", Lat: 30.0444, Lng: 31.2357},
	{Name: "Cape Town", Lat: -33.9249, Lng: 18.4241},
	{Name: "Nairobi", Lat: -1.2921, Lng: 36.8219},
	{Name: "Dubai", Lat: 25.2048, Lng: 55.2708},
	{Name: "Doha", Lat: 25.2854, Lng: 51.5310},
	{Name: "Tel Aviv", Lat: 32.0853, Lng: 34.7818},

	// Asia & Oceania
	{Name: "Delhi", Lat: 28.7041, Lng: 77.1025},
	{Name: "Mumbai", Lat: 19.0760, Lng: 72.8777},
	{Name: "Bangkok", Lat: 13.7563, Lng: 100.5018},
	{Name: "Singapore", Lat: 1.3521, Lng: 103.8198},
	{Name: "Kuala Lumpur", Lat: 3.1390, Lng: 101.6869},
	{Name: "Bali", Lat: -8.3405, Lng: 115.0920},
	{Name: "Hong Kong", Lat: 22.3193, Lng: 114.1694},
	{Name: "Shanghai", Lat: 31.2304, Lng: 121.4737},
	{Name: "Beijing", Lat: 39.9042, Lng: 116.4074},
	{Name: "Seoul", Lat: 37.5665, Lng: 126.9780},
	{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503},
	{Name: "Kyoto", Lat: 35.0116, Lng: 135.7681},
	{Name: "Osaka", Lat: 34.6937, Lng: 135.5023},
	{Name: "Sydney", Lat: -33.8688, Lng: 151.2093},
	{Name: "Melbourne", Lat: -37.8136, Lng: 144.9631},
	{Name: "Auckland", Lat: -36.8485, Lng: 174.7633},
}
