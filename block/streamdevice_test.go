package block_test

import (
	"io"
	"testing"

	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/stretchr/testify/assert"
)

func newBackingStream(totalSectors uint32) io.ReadWriteSeeker {
	buf := make([]byte, int(totalSectors)*block.SectorSize)
	return bytesextra.NewReadWriteSeeker(buf)
}

func TestStreamDeviceWriteReadRoundTrip(t *testing.T) {
	stream := newBackingStream(4)
	dev := block.NewStreamDevice(stream, 4)

	data := make([]byte, block.SectorSize)
	data[1] = 0x7F
	require.NoError(t, dev.WriteSector(1, data))

	sec, err := dev.ReadSector(1)
	require.NoError(t, err)
	assert.EqualValues(t, 0x7F, sec[1])
}

func TestStreamDeviceBeyondCapacity(t *testing.T) {
	stream := newBackingStream(2)
	dev := block.NewStreamDevice(stream, 2)

	_, err := dev.ReadSector(2)
	assert.ErrorIs(t, err, dderrors.ErrBeyondDiskSize)
}
