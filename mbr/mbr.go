// Package mbr reads and writes the classic DOS master boot record: the
// boot signature at the end of sector 0 and its four 16-byte partition
// table entries.
package mbr

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"
	"github.com/go-restruct/restruct"
	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
)

var byteOrder = binary.LittleEndian

const (
	partitionTableOffset = 446
	partitionEntrySize   = 16
	signatureOffset      = 510
	numPartitions        = 4
)

// Format identifies what a partition table entry's type byte says the
// partition holds.
type Format byte

const (
	// FormatNone marks an unused partition table slot.
	FormatNone Format = 0x00
	// FormatFAT32LBA is a FAT32 partition addressed with LBA, not CHS.
	FormatFAT32LBA Format = 0x0C
)

// Unrecognized reports whether f is a type byte this package has no
// specific constant for. Mounting such a partition is a programming error,
// not a recoverable condition: see Mount.
func (f Format) Unrecognized() bool {
	return f != FormatNone && f != FormatFAT32LBA
}

// rawEntry is the on-disk 16-byte partition table entry. CHS fields are
// carried but never interpreted: this package only supports LBA addressing.
type rawEntry struct {
	BootIndicator uint8
	CHSStart      [3]uint8
	PartitionType uint8
	CHSEnd        [3]uint8
	StartLBA      uint32
	SectorCount   uint32
}

// Info is the decoded form of a partition table entry.
type Info struct {
	Format      Format
	StartLBA    uint32
	SectorCount uint32
	Bootable    bool
}

func readSector0(device block.Device) (block.Sector, error) {
	sec, err := device.ReadSector(0)
	if err != nil {
		return block.Sector{}, err
	}
	if sec[signatureOffset] != 0x55 || sec[signatureOffset+1] != 0xAA {
		return block.Sector{}, dderrors.ErrCorruptDisk
	}
	return sec, nil
}

func entryBounds(index int) (int, int) {
	start := partitionTableOffset + index*partitionEntrySize
	return start, start + partitionEntrySize
}

// GetPartitionInfo reads and decodes partition table entry index (0-3) from
// device's sector 0. It returns dderrors.ErrCorruptDisk if sector 0 is
// missing the 0x55AA boot signature.
//
// index must be in [0, 4); an out-of-range index is a programming error and
// panics, matching the reference implementation's own bounds assertion.
func GetPartitionInfo(device block.Device, index int) (Info, error) {
	if index < 0 || index >= numPartitions {
		panic("mbr: partition table index out of range [0, 4)")
	}

	sec, err := readSector0(device)
	if err != nil {
		return Info{}, err
	}

	start, end := entryBounds(index)
	var raw rawEntry
	if err := restruct.Unpack(sec[start:end], byteOrder, &raw); err != nil {
		return Info{}, dderrors.ErrCorruptDisk.Wrap(err)
	}

	return Info{
		Format:      Format(raw.PartitionType),
		StartLBA:    raw.StartLBA,
		SectorCount: raw.SectorCount,
		Bootable:    raw.BootIndicator >= 0x80,
	}, nil
}

// SetPartitionInfo writes info into partition table entry index (0-3) of
// device's sector 0, then writes the sector back. CHS fields are always
// zeroed; this package never emits CHS addresses.
func SetPartitionInfo(device block.Device, index int, info Info) error {
	if index < 0 || index >= numPartitions {
		panic("mbr: partition table index out of range [0, 4)")
	}

	sec, err := device.ReadSector(0)
	if err != nil {
		return err
	}

	bootIndicator := uint8(0x00)
	if info.Bootable {
		bootIndicator = 0x80
	}
	raw := rawEntry{
		BootIndicator: bootIndicator,
		PartitionType: uint8(info.Format),
		StartLBA:      info.StartLBA,
		SectorCount:   info.SectorCount,
	}

	packed, err := restruct.Pack(byteOrder, &raw)
	if err != nil {
		return dderrors.ErrWriteError.Wrap(err)
	}

	start, end := entryBounds(index)
	copy(sec[start:end], packed)
	sec[signatureOffset] = 0x55
	sec[signatureOffset+1] = 0xAA

	return device.WriteSector(0, sec[:])
}

// OccupiedSlots returns a 4-bit bitmap over the partition table of device:
// bit i is set if slot i holds anything other than FormatNone. It is a
// diagnostic convenience, not something the FAT32 engine depends on.
func OccupiedSlots(device block.Device) (bitmap.Bitmap, error) {
	occupied := bitmap.New(numPartitions)

	sec, err := readSector0(device)
	if err != nil {
		return occupied, err
	}

	for i := 0; i < numPartitions; i++ {
		start, _ := entryBounds(i)
		occupied.Set(i, sec[start+4] != byte(FormatNone))
	}
	return occupied, nil
}
