package block

import "github.com/quietgrove/mkdisk/dderrors"

// RAMDevice is an in-memory block device. Sectors are allocated lazily: the
// backing slice only grows as far as the highest LBA written so far, and
// any LBA within the device's declared capacity that hasn't been written
// yet reads back as a zero-filled sector.
//
// It mirrors a RAM-backed disk image used to assemble a bootable image in
// memory before it is ever written to a file.
type RAMDevice struct {
	capacity uint32
	sectors  []Sector
}

// NewRAMDevice returns a RAMDevice with room for totalSectors sectors and
// the MBR boot signature (0x55AA) already present at the end of sector 0,
// matching what a freshly zeroed disk with a valid (if empty) MBR looks
// like.
func NewRAMDevice(totalSectors uint32) *RAMDevice {
	dev := &RAMDevice{capacity: totalSectors}
	dev.ensureLength(1)
	dev.sectors[0][510] = 0x55
	dev.sectors[0][511] = 0xAA
	return dev
}

func (d *RAMDevice) ensureLength(n uint32) {
	for uint32(len(d.sectors)) < n {
		d.sectors = append(d.sectors, Sector{})
	}
}

func (d *RAMDevice) Info() Info {
	return Info{TotalSectors: d.capacity, SectorSize: SectorSize}
}

func (d *RAMDevice) ReadSector(lba uint32) (Sector, error) {
	if err := checkBounds(lba, d.capacity); err != nil {
		return Sector{}, err
	}
	if lba >= uint32(len(d.sectors)) {
		return EmptySector, nil
	}
	return d.sectors[lba], nil
}

func (d *RAMDevice) WriteSector(lba uint32, data []byte) error {
	if err := checkBounds(lba, d.capacity); err != nil {
		return err
	}
	if len(data) > SectorSize {
		return dderrors.ErrWriteError.WithMessage("write exceeds sector size")
	}

	d.ensureLength(lba + 1)
	var sec Sector
	copy(sec[:], data)
	d.sectors[lba] = sec
	return nil
}

// Sectors returns the live, currently-allocated prefix of the device's
// backing storage, in LBA order, for sequential emission of a finished
// image. LBAs at or beyond len(Sectors()) and below TotalSectors are
// implicitly zero and are not materialized here.
func (d *RAMDevice) Sectors() []Sector {
	return d.sectors
}
