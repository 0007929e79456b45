package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeIndicesStayOnTheirFace(t *testing.T) {
	require.Len(t, CubeVertices, FaceCount*4)
	require.Len(t, CubeIndices, FaceCount*6)

	for face := 0; face < FaceCount; face++ {
		lo, hi := uint16(face*4), uint16(face*4+3)
		used := map[uint16]bool{}
		for _, idx := range CubeIndices[face*6 : face*6+6] {
			assert.True(t, idx >= lo && idx <= hi, "face %d references vertex %d", face, idx)
			used[idx] = true
		}
		assert.Len(t, used, 4, "face %d must use all four corners", face)
	}
}

func TestCubeFacesArePlanar(t *testing.T) {
	for face := 0; face < FaceCount; face++ {
		corners := CubeVertices[face*4 : face*4+4]

		// Every face has one axis fixed at +1 or -1
		planar := false
		for axis := 0; axis < 3; axis++ {
			v := corners[0].Pos[axis]
			same := true
			for _, c := range corners[1:] {
				same = same && c.Pos[axis] == v
			}
			planar = planar || same
		}
		assert.True(t, planar, "face %d", face)
	}
}
