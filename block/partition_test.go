package block_test

import (
	"testing"

	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionTranslatesLBA(t *testing.T) {
	dev := block.NewRAMDevice(16)
	part := block.NewPartition(dev, 4, 8)

	data := make([]byte, block.SectorSize)
	data[0] = 0x11
	require.NoError(t, part.WriteSector(0, data))

	fromDevice, err := dev.ReadSector(4)
	require.NoError(t, err)
	assert.EqualValues(t, 0x11, fromDevice[0])
}

func TestPartitionIsolatesBeyondItsOwnSize(t *testing.T) {
	dev := block.NewRAMDevice(16)
	part := block.NewPartition(dev, 4, 8)

	_, err := part.ReadSector(8)
	assert.ErrorIs(t, err, dderrors.ErrBeyondDiskSize)

	// The underlying device still has room; the partition view must not
	// leak its boundary.
	_, err = dev.ReadSector(12)
	require.NoError(t, err)
}

func TestPartitionsOverDisjointRegionsStayIsolated(t *testing.T) {
	dev := block.NewRAMDevice(16)
	partA := block.NewPartition(dev, 0, 8)
	partB := block.NewPartition(dev, 8, 8)

	data := make([]byte, block.SectorSize)
	data[0] = 0x99
	require.NoError(t, partA.WriteSector(0, data))

	sec, err := partB.ReadSector(0)
	require.NoError(t, err)
	assert.NotEqualValues(t, 0x99, sec[0], "partitions over disjoint regions must stay isolated")
}
