package block_test

import (
	"testing"

	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRAMDeviceHasBootSignature(t *testing.T) {
	dev := block.NewRAMDevice(128)

	sec, err := dev.ReadSector(0)
	require.NoError(t, err)
	assert.EqualValues(t, 0x55, sec[510])
	assert.EqualValues(t, 0xAA, sec[511])
}

func TestRAMDeviceUnwrittenSectorReadsZero(t *testing.T) {
	dev := block.NewRAMDevice(128)

	sec, err := dev.ReadSector(64)
	require.NoError(t, err)
	assert.Equal(t, block.EmptySector, sec)
}

func TestRAMDeviceWriteReadRoundTrip(t *testing.T) {
	dev := block.NewRAMDevice(4)
	data := make([]byte, block.SectorSize)
	data[0] = 0x42

	require.NoError(t, dev.WriteSector(2, data))

	sec, err := dev.ReadSector(2)
	require.NoError(t, err)
	assert.EqualValues(t, 0x42, sec[0])
}

func TestRAMDeviceBeyondCapacity(t *testing.T) {
	dev := block.NewRAMDevice(4)

	_, err := dev.ReadSector(4)
	assert.ErrorIs(t, err, dderrors.ErrBeyondDiskSize)

	err = dev.WriteSector(4, make([]byte, block.SectorSize))
	assert.ErrorIs(t, err, dderrors.ErrBeyondDiskSize)
}

func TestRAMDeviceRejectsOversizedWrite(t *testing.T) {
	dev := block.NewRAMDevice(4)
	err := dev.WriteSector(0, make([]byte, block.SectorSize+1))
	assert.ErrorIs(t, err, dderrors.ErrWriteError)
}

func TestRAMDeviceGrowsLazily(t *testing.T) {
	dev := block.NewRAMDevice(16)
	assert.Len(t, dev.Sectors(), 1, "constructing the device should only materialize sector 0")

	require.NoError(t, dev.WriteSector(10, make([]byte, block.SectorSize)))
	assert.Len(t, dev.Sectors(), 11)
}
