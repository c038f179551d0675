package block

import (
	"io"

	"github.com/quietgrove/mkdisk/dderrors"
)

// StreamDevice adapts any io.ReadWriteSeeker — a real file, or a byte slice
// wrapped with bytesextra.NewReadWriteSeeker in tests — into a Device. It is
// the collaborator to reach for when the image is too large to hold
// entirely in memory, or when round-tripping a fixture through a seekable
// byte buffer.
type StreamDevice struct {
	stream       io.ReadWriteSeeker
	totalSectors uint32
}

// NewStreamDevice wraps stream as a Device with totalSectors addressable
// 512-byte sectors starting at the stream's current offset 0.
func NewStreamDevice(stream io.ReadWriteSeeker, totalSectors uint32) *StreamDevice {
	return &StreamDevice{stream: stream, totalSectors: totalSectors}
}

func (d *StreamDevice) Info() Info {
	return Info{TotalSectors: d.totalSectors, SectorSize: SectorSize}
}

func (d *StreamDevice) seekToSector(lba uint32) error {
	_, err := d.stream.Seek(int64(lba)*SectorSize, io.SeekStart)
	return err
}

func (d *StreamDevice) ReadSector(lba uint32) (Sector, error) {
	if err := checkBounds(lba, d.totalSectors); err != nil {
		return Sector{}, err
	}
	if err := d.seekToSector(lba); err != nil {
		return Sector{}, dderrors.ErrBeyondDiskSize.Wrap(err)
	}

	var sec Sector
	if _, err := io.ReadFull(d.stream, sec[:]); err != nil {
		return Sector{}, dderrors.ErrCorruptDisk.Wrap(err)
	}
	return sec, nil
}

func (d *StreamDevice) WriteSector(lba uint32, data []byte) error {
	if err := checkBounds(lba, d.totalSectors); err != nil {
		return err
	}
	if len(data) > SectorSize {
		return dderrors.ErrWriteError.WithMessage("write exceeds sector size")
	}
	if err := d.seekToSector(lba); err != nil {
		return dderrors.ErrWriteError.Wrap(err)
	}

	var sec Sector
	copy(sec[:], data)
	if _, err := d.stream.Write(sec[:]); err != nil {
		return dderrors.ErrWriteError.Wrap(err)
	}
	return nil
}
