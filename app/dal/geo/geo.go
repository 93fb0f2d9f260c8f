package geo

// Point is a GeoJSON point as stored on vendor and courier documents.
// Coordinates are [lng, lat], matching the 2dsphere index expectations.
type Point struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewPoint(lat, lng float64) Point {
	return Point{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p Point) Lng() float64 {
	if len(p.Coordinates) > 0 {
		return p.Coordinates[0]
	}
	return 0
}

func (p Point) Lat() float64 {
	if len(p.Coordinates) > 1 {
		return p.Coordinates[1]
	}
	return 0
}

// LatLng is the wire form carried by customer requests and order documents.
type LatLng struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Centroid returns the arithmetic mean of the given coordinates. It is an
// approximation of the delivery midpoint, not a routing optimum.
func Centroid(locations []LatLng) LatLng {
	if len(locations) == 0 {
		return LatLng{}
	}
	var total LatLng
	for _, loc := range locations {
		total.Lat += loc.Lat
		total.Lng += loc.Lng
	}
	return LatLng{
		Lat: total.Lat / float64(len(locations)),
		Lng: total.Lng / float64(len(locations)),
	}
}
