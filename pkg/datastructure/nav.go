package datastructure

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Vertex is a road intersection. ID comes from the source map data (osm node id).
type Vertex struct {
	ID  int64
	Lon float64
	Lat float64
}

func NewVertex(id int64, lon, lat float64) Vertex {
	return Vertex{
		ID:  id,
		Lon: lon,
		Lat: lat,
	}
}

func (v Vertex) Coordinate() Coordinate {
	return NewCoordinate(v.Lat, v.Lon)
}
