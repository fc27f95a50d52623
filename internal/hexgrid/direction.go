package hexgrid

// Direction names one of the six edges of a flat-top hex.
type Direction int

const (
	N Direction = iota
	NE
	SE
	S
	SW
	NW
	DirectionCount // Sentinel
)

// Coord addresses a cell in offset coordinates. Odd columns sit half a row lower.
type Coord struct {
	Col int
	Row int
}

type directionInfo struct {
	name      string
	dCol      int
	dRowEven  int
	dRowOdd   int
	edge      [2]int // rim vertex indices shared with the neighbor
	opposite  Direction
	clockwise Direction
}

// directionTable is the adjacency of an offset flat-top grid with rim
// vertices ordered clockwise from 0°. Read-only.
var directionTable = [DirectionCount]directionInfo{
	N:  {name: "N", dCol: 0, dRowEven: -1, dRowOdd: -1, edge: [2]int{4, 5}, opposite: S, clockwise: NE},
	NE: {name: "NE", dCol: +1, dRowEven: -1, dRowOdd: 0, edge: [2]int{5, 0}, opposite: SW, clockwise: SE},
	SE: {name: "SE", dCol: +1, dRowEven: 0, dRowOdd: +1, edge: [2]int{0, 1}, opposite: NW, clockwise: S},
	S:  {name: "S", dCol: 0, dRowEven: +1, dRowOdd: +1, edge: [2]int{1, 2}, opposite: N, clockwise: SW},
	SW: {name: "SW", dCol: -1, dRowEven: 0, dRowOdd: +1, edge: [2]int{2, 3}, opposite: NE, clockwise: NW},
	NW: {name: "NW", dCol: -1, dRowEven: -1, dRowOdd: 0, edge: [2]int{3, 4}, opposite: SE, clockwise: N},
}

// Directions lists all six directions in clockwise order starting at N.
var Directions = [DirectionCount]Direction{N, NE, SE, S, SW, NW}

// StitchDirections are the directions a cell stitches toward. The other
// three edges are stitched by the neighbor on the far side.
var StitchDirections = [3]Direction{SE, S, SW}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= N && d < DirectionCount
}

func (d Direction) String() string {
	if !d.Valid() {
		return "Direction(?)"
	}
	return directionTable[d].name
}

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	return directionTable[d].opposite
}

// Clockwise returns the next direction clockwise.
func (d Direction) Clockwise() Direction {
	return directionTable[d].clockwise
}

// Edge returns the pair of rim vertex indices on the edge facing d.
func (d Direction) Edge() [2]int {
	return directionTable[d].edge
}

// Offset returns the (col, row) step toward d from a cell in column col.
func (d Direction) Offset(col int) (int, int) {
	info := directionTable[d]
	if col&1 == 1 {
		return info.dCol, info.dRowOdd
	}
	return info.dCol, info.dRowEven
}

// Neighbor returns the coordinate one step toward d, without bounds checks.
func (c Coord) Neighbor(d Direction) Coord {
	dc, dr := d.Offset(c.Col)
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Less orders coordinates column-major.
func (c Coord) Less(o Coord) bool {
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Row < o.Row
}
