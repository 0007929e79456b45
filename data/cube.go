package data

// Vertex is a cube vertex: a position in model space and a texture coordinate
type Vertex struct {
	Pos      [3]int8
	TexCoord [2]uint8
}

// FaceCount is the number of faces on the cube
const FaceCount = 6

// CubeVertices lists four vertices per face: +Z, -Z, +X, -X, +Y, -Y.
var CubeVertices = []Vertex{
	// top (+Z)
	{Pos: [3]int8{-1, -1, 1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{1, -1, 1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{1, 1, 1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{-1, 1, 1}, TexCoord: [2]uint8{0, 1}},

	// bottom (-Z)
	{Pos: [3]int8{1, 1, -1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{-1, 1, -1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{-1, -1, -1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{1, -1, -1}, TexCoord: [2]uint8{0, 1}},

	// right (+X)
	{Pos: [3]int8{1, -1, -1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{1, 1, -1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{1, 1, 1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{1, -1, 1}, TexCoord: [2]uint8{0, 1}},

	// left (-X)
	{Pos: [3]int8{-1, 1, 1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{-1, -1, 1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{-1, -1, -1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{-1, 1, -1}, TexCoord: [2]uint8{0, 1}},

	// front (+Y)
	{Pos: [3]int8{-1, 1, -1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{1, 1, -1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{1, 1, 1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{-1, 1, 1}, TexCoord: [2]uint8{0, 1}},

	// back (-Y)
	{Pos: [3]int8{1, -1, 1}, TexCoord: [2]uint8{0, 0}},
	{Pos: [3]int8{-1, -1, 1}, TexCoord: [2]uint8{1, 0}},
	{Pos: [3]int8{-1, -1, -1}, TexCoord: [2]uint8{1, 1}},
	{Pos: [3]int8{1, -1, -1}, TexCoord: [2]uint8{0, 1}},
}

// CubeIndices is a triangle list, two triangles per face
var CubeIndices = []uint16{
	0, 1, 2, 2, 3, 0,
	4, 5, 6, 6, 7, 4,
	8, 9, 10, 10, 11, 8,
	12, 13, 14, 14, 15, 12,
	16, 17, 18, 18, 19, 16,
	20, 21, 22, 22, 23, 20,
}
