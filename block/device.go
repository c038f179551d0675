package block

import "github.com/quietgrove/mkdisk/dderrors"

// Info describes the geometry of a BlockDevice.
type Info struct {
	// TotalSectors is the number of addressable sectors on the device.
	TotalSectors uint32
	// SectorSize is the size, in bytes, of a single sector. Always
	// block.SectorSize for every device this module provides.
	SectorSize uint32
}

// Device is the capability every collaborator in this module implements: a
// flat, linearly addressed array of fixed-size sectors. Implementations
// return dderrors.ErrBeyondDiskSize for any LBA outside [0, Info().TotalSectors).
type Device interface {
	Info() Info
	ReadSector(lba uint32) (Sector, error)
	WriteSector(lba uint32, data []byte) error
}

// checkBounds is shared by every Device implementation in this package.
func checkBounds(lba uint32, total uint32) error {
	if lba >= total {
		return dderrors.ErrBeyondDiskSize
	}
	return nil
}
