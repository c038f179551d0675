package fat32

import (
	"encoding/binary"

	"github.com/quietgrove/mkdisk/block"
)

// Format constants, fixed by scope: this engine only ever produces
// single-sector clusters and two FAT copies.
const (
	formatFATCount        = 2
	formatReservedSectors = 32
	formatClusterSectors  = 1
)

// calcSizes approximates sectorsPerFAT and the resulting data-cluster
// count for a device of diskSectors total sectors, following the
// reference tool's iterative approach: each additional FAT sector backs
// another 128 clusters, until fewer than that many sectors remain.
func calcSizes(diskSectors, fats, reserved uint32) (sectorsPerFAT, clusterCount uint32) {
	available := int64(diskSectors) - int64(reserved) - 1
	for available > int64(128+fats) {
		sectorsPerFAT++
		clusterCount += 128
		available -= 128 + int64(fats)
	}
	if available > int64(fats) {
		sectorsPerFAT++
		available -= int64(fats)
		clusterCount += uint32(available)
	}
	return
}

// Format lays down an empty FAT32-LBA volume on device: the header
// sector, zeroed reserved sectors, and formatFATCount FAT copies
// whose first three entries reserve clusters 0 and 1 and terminate the
// root directory's single cluster.
func Format(device block.Device) error {
	info := device.Info()
	sectorsPerFAT, _ := calcSizes(info.TotalSectors, formatFATCount, formatReservedSectors)

	var header [block.SectorSize]byte
	binary.LittleEndian.PutUint16(header[11:13], block.SectorSize)
	header[13] = formatClusterSectors
	binary.LittleEndian.PutUint16(header[14:16], formatReservedSectors)
	header[16] = formatFATCount
	binary.LittleEndian.PutUint32(header[32:36], info.TotalSectors)
	binary.LittleEndian.PutUint32(header[36:40], sectorsPerFAT)
	if err := device.WriteSector(0, header[:]); err != nil {
		return err
	}

	zero := make([]byte, block.SectorSize)
	for lba := uint32(1); lba < 1+formatReservedSectors; lba++ {
		if err := device.WriteSector(lba, zero); err != nil {
			return err
		}
	}

	fatBegin := uint32(1) + formatReservedSectors
	for k := uint32(0); k < formatFATCount; k++ {
		var firstSector [block.SectorSize]byte
		binary.LittleEndian.PutUint32(firstSector[0:4], 0x00000001)
		binary.LittleEndian.PutUint32(firstSector[4:8], 0x00000001)
		binary.LittleEndian.PutUint32(firstSector[8:12], 0x0FFFFFFF)

		fatStart := fatBegin + k*sectorsPerFAT
		if err := device.WriteSector(fatStart, firstSector[:]); err != nil {
			return err
		}
		for s := uint32(1); s < sectorsPerFAT; s++ {
			if err := device.WriteSector(fatStart+s, zero); err != nil {
				return err
			}
		}
	}

	return nil
}
