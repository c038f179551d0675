package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// minDiskSectors enforces the reference tool's own floor: a disk too
// small to hold a header, two FAT copies, and a usable data area isn't
// worth building.
const minDiskSectors = 128

// parseDiskSize resolves a --size argument: either one of the named slugs
// in namedDiskSizes, or a free-form byte count/suffix string ("64M",
// "1.4MiB", "737280") parsed by go-humanize.
func parseDiskSize(s string) (uint64, error) {
	if bytes, ok := namedDiskSizes[s]; ok {
		return bytes, nil
	}

	bytes, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --size %q: %w", s, err)
	}
	return bytes, nil
}

func sectorsForSize(bytes uint64) (uint32, error) {
	sectors := bytes / 512
	if sectors < minDiskSectors {
		return 0, fmt.Errorf("disk too small: minimum size is %s", humanize.Bytes(minDiskSectors*512))
	}
	if sectors > uint64(^uint32(0)) {
		return 0, fmt.Errorf("disk too large: %d sectors exceeds a 32-bit LBA", sectors)
	}
	return uint32(sectors), nil
}
