package mbr

import (
	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/fat32"
)

// Mount fetches partition index's table entry, builds a partition view over
// it, and mounts a FAT32 engine on top.
//
// An absent (FormatNone) or Unrecognized partition type is a programming
// error in this offline tool, not a recoverable condition — the caller
// asked to mount something that was never written — so both panic rather
// than returning an error, matching the panic-on-logic-violation policy the
// rest of this module follows for out-of-range indices and sub-cluster-2
// accesses.
func Mount(device block.Device, index int) (*fat32.FileSystem, error) {
	info, err := GetPartitionInfo(device, index)
	if err != nil {
		return nil, err
	}
	if info.Format == FormatNone {
		panic("mbr: cannot mount an unused partition slot")
	}
	if info.Format.Unrecognized() {
		panic("mbr: cannot mount an unrecognized partition type")
	}

	partition := block.NewPartition(device, info.StartLBA, info.SectorCount)
	return fat32.New(partition)
}
