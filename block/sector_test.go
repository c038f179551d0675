package block_test

import (
	"testing"

	"github.com/quietgrove/mkdisk/block"
	"github.com/stretchr/testify/assert"
)

func TestSectorClone(t *testing.T) {
	var s block.Sector
	s[0] = 0xAB

	clone := s.Clone()
	clone[0] = 0xCD

	assert.EqualValues(t, 0xAB, s[0], "mutating the clone must not affect the original")
	assert.EqualValues(t, 0xCD, clone[0])
}

func TestEmptySectorIsZero(t *testing.T) {
	assert.Equal(t, block.Sector{}, block.EmptySector)
}
