// Package fat32 implements the FAT32-LBA filesystem engine: cluster
// allocation, FAT chain management, directory-entry placement, and the
// narrow make_dir/write_file/read_file/delete surface the CLI drives.
package fat32

import (
	"encoding/binary"

	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
)

// RootCluster is the fixed cluster number of the root directory.
const RootCluster = 2

// FileSystem is a mounted FAT32 volume. It owns the block device it was
// constructed over for its lifetime — when that device is a
// *block.Partition, the partition already carries its own LBA offset, so
// the engine never needs the raw-pointer aliasing the original host
// language used; holding the device as an ordinary interface value is
// enough.
type FileSystem struct {
	device block.Device

	fatBegin      uint32
	clusterBegin  uint32
	clusterSize   uint32
	rdirCluster   uint32
	fatCount      uint32
	sectorsPerFAT uint32
	totalClusters uint32
}

// New mounts a FAT32 volume over device. It reads the header fields from
// sector 0 but never validates FAT contents.
//
// fat_begin is computed as 1+reservedSectors rather than read verbatim
// from the header's reserved-sector field, resolving the discrepancy
// between where format places the FATs and where the header's own
// reserved-sector count would otherwise point the engine; see DESIGN.md.
func New(device block.Device) (*FileSystem, error) {
	sec, err := device.ReadSector(0)
	if err != nil {
		return nil, err
	}

	sectorsPerCluster := uint32(sec[13])
	if sectorsPerCluster == 0 {
		sectorsPerCluster = 1
	}
	reservedSectors := binary.LittleEndian.Uint16(sec[14:16])
	numFATs := uint32(sec[16])
	totalSectors := binary.LittleEndian.Uint32(sec[32:36])
	sectorsPerFAT := binary.LittleEndian.Uint32(sec[36:40])

	fatBegin := uint32(1) + uint32(reservedSectors)
	clusterBegin := fatBegin + numFATs*sectorsPerFAT

	var totalClusters uint32
	if totalSectors > clusterBegin {
		totalClusters = (totalSectors - clusterBegin) / sectorsPerCluster
	}
	// Clusters 0 and 1 take FAT slots too, so the table can address at most
	// sectorsPerFAT*128-2 data clusters.
	fatEntries := sectorsPerFAT * (block.SectorSize / 4)
	if fatEntries < 2 {
		totalClusters = 0
	} else if totalClusters > fatEntries-2 {
		totalClusters = fatEntries - 2
	}

	return &FileSystem{
		device:        device,
		fatBegin:      fatBegin,
		clusterBegin:  clusterBegin,
		clusterSize:   sectorsPerCluster,
		rdirCluster:   RootCluster,
		fatCount:      numFATs,
		sectorsPerFAT: sectorsPerFAT,
		totalClusters: totalClusters,
	}, nil
}

// RootDirCluster returns the cluster number of the root directory (always 2).
func (fs *FileSystem) RootDirCluster() uint32 { return fs.rdirCluster }

func (fs *FileSystem) clusterLBA(c uint32) uint32 {
	if c < 2 {
		panic("fat32: cluster numbers below 2 are reserved")
	}
	return fs.clusterBegin + (c-2)*fs.clusterSize
}

// readCluster returns the clusterSize*512 bytes of cluster c.
func (fs *FileSystem) readCluster(c uint32) ([]byte, error) {
	lba := fs.clusterLBA(c)
	buf := make([]byte, 0, fs.clusterSize*block.SectorSize)
	for s := uint32(0); s < fs.clusterSize; s++ {
		sec, err := fs.device.ReadSector(lba + s)
		if err != nil {
			return nil, err
		}
		buf = append(buf, sec[:]...)
	}
	return buf, nil
}

// writeCluster writes data into cluster c, zero-padding short input to a
// full cluster.
func (fs *FileSystem) writeCluster(c uint32, data []byte) error {
	lba := fs.clusterLBA(c)
	for s := uint32(0); s < fs.clusterSize; s++ {
		start := int(s) * block.SectorSize
		end := start + block.SectorSize
		var chunk []byte
		if start < len(data) {
			if end > len(data) {
				end = len(data)
			}
			chunk = data[start:end]
		}
		if err := fs.device.WriteSector(lba+s, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (fs *FileSystem) fatEntryLocation(c uint32, fatIndex uint32) (sector uint32, offset uint32) {
	sector = fs.fatBegin + fatIndex*fs.sectorsPerFAT + c/128
	offset = (c % 128) * 4
	return
}

// readFATEntry reads cluster c's entry from the primary FAT.
func (fs *FileSystem) readFATEntry(c uint32) (FATEntry, error) {
	if c < 2 {
		panic("fat32: cluster numbers below 2 are reserved")
	}
	sector, offset := fs.fatEntryLocation(c, 0)
	sec, err := fs.device.ReadSector(sector)
	if err != nil {
		return FATEntry{}, err
	}
	raw := binary.LittleEndian.Uint32(sec[offset : offset+4])
	return decodeFATEntry(raw), nil
}

// writeFATEntry writes cluster c's entry to every FAT copy: the reference
// implementation only maintains one, but mirroring every copy keeps the
// image consistent for any reader that prefers a non-primary FAT; see
// DESIGN.md.
func (fs *FileSystem) writeFATEntry(c uint32, entry FATEntry) error {
	if c < 2 {
		panic("fat32: cluster numbers below 2 are reserved")
	}
	raw := encodeFATEntry(entry)

	for k := uint32(0); k < fs.fatCount; k++ {
		sector, offset := fs.fatEntryLocation(c, k)
		sec, err := fs.device.ReadSector(sector)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(sec[offset:offset+4], raw)
		if err := fs.device.WriteSector(sector, sec[:]); err != nil {
			return err
		}
	}
	return nil
}

// nextCluster follows the chain link at c: (next, true, nil) for Cont,
// (0, false, nil) for End, and an error for anything else encountered
// where a continuation was expected.
func (fs *FileSystem) nextCluster(c uint32) (uint32, bool, error) {
	entry, err := fs.readFATEntry(c)
	if err != nil {
		return 0, false, err
	}
	switch entry.Kind {
	case Cont:
		return entry.Next, true, nil
	case End:
		return 0, false, nil
	default:
		return 0, false, dderrors.ErrCorruptFAT.WithMessage("unexpected FAT entry mid-chain")
	}
}

// allocCluster finds a free cluster, zeroes it, marks it End, and — if old
// is non-nil — extends old's chain to point at it. The scan starts at
// clusterBegin per the reference algorithm, wrapped and bounded to
// totalClusters so it always terminates with WriteError instead of
// reading past the FAT table; see DESIGN.md (disk-full open question).
func (fs *FileSystem) allocCluster(old *uint32) (uint32, error) {
	if fs.totalClusters == 0 {
		return 0, dderrors.ErrWriteError.WithMessage("no clusters available")
	}

	start := fs.clusterBegin
	var newCluster uint32
	found := false
	for i := uint32(0); i < fs.totalClusters; i++ {
		candidate := 2 + (start-2+i)%fs.totalClusters
		entry, err := fs.readFATEntry(candidate)
		if err != nil {
			return 0, err
		}
		if entry.Kind == Free {
			newCluster = candidate
			found = true
			break
		}
	}
	if !found {
		return 0, dderrors.ErrWriteError.WithMessage("disk full: no free cluster")
	}

	if err := fs.writeCluster(newCluster, nil); err != nil {
		return 0, err
	}

	if old != nil {
		cur := *old
		for {
			entry, err := fs.readFATEntry(cur)
			if err != nil {
				return 0, err
			}
			switch entry.Kind {
			case End:
				if err := fs.writeFATEntry(cur, FATEntry{Kind: Cont, Next: newCluster}); err != nil {
					return 0, err
				}
				goto extended
			case Cont:
				cur = entry.Next
			default:
				return 0, dderrors.ErrCorruptFAT.WithMessage("chain walk hit a non-chain entry")
			}
		}
	extended:
	}

	if err := fs.writeFATEntry(newCluster, FATEntry{Kind: End}); err != nil {
		return 0, err
	}
	return newCluster, nil
}
