package block

// Partition is an LBA-translating view over a region of an underlying
// Device: LBA 0 of the partition is StartLBA of the backing device, and
// reads/writes past SectorCount return dderrors.ErrBeyondDiskSize without
// ever reaching the backing device.
//
// Unlike the raw-pointer aliasing a Partition would need in a language
// without a garbage collector, this just holds the backing Device as an
// ordinary interface value: Go's interfaces are already safe shared
// handles, so no unsafe indirection is needed to let multiple Partition
// views share one underlying device.
type Partition struct {
	device      Device
	startLBA    uint32
	sectorCount uint32
}

// NewPartition returns a Partition view into device spanning sectorCount
// sectors starting at startLBA. It does not validate that the region lies
// within device's own bounds; the first out-of-range access will surface
// that as dderrors.ErrBeyondDiskSize from the backing device.
func NewPartition(device Device, startLBA, sectorCount uint32) *Partition {
	return &Partition{device: device, startLBA: startLBA, sectorCount: sectorCount}
}

func (p *Partition) Info() Info {
	return Info{TotalSectors: p.sectorCount, SectorSize: SectorSize}
}

func (p *Partition) ReadSector(lba uint32) (Sector, error) {
	if err := checkBounds(lba, p.sectorCount); err != nil {
		return Sector{}, err
	}
	return p.device.ReadSector(p.startLBA + lba)
}

func (p *Partition) WriteSector(lba uint32, data []byte) error {
	if err := checkBounds(lba, p.sectorCount); err != nil {
		return err
	}
	return p.device.WriteSector(p.startLBA+lba, data)
}

var _ Device = (*Partition)(nil)
