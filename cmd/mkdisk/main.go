// Command mkdisk builds a bootable FAT32 disk image from a source tree,
// a master bootloader, and an optional volume bootloader.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/noxer/bytewriter"
	"github.com/urfave/cli/v2"

	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/fat32"
	"github.com/quietgrove/mkdisk/mbr"
)

// vbrJumpBytes is the literal 3-byte jump instruction the reference tool
// writes at the start of the volume boot record: EB 58 90 jumps over a
// 90-byte header. The 0x58 (=90-2) is a design constant tied to the
// external volume bootloader's own layout, not derived from anything this
// program computes; see DESIGN.md.
var vbrJumpBytes = [3]byte{0xEB, 0x58, 0x90}

func main() {
	app := &cli.App{
		Name:  "mkdisk",
		Usage: "assemble a bootable FAT32 disk image from a source tree",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "size", Aliases: []string{"s"}, Required: true, Usage: "disk size (e.g. 64M, 1.4MiB, or a preset slug like floppy1440)"},
			&cli.StringFlag{Name: "source", Aliases: []string{"source-dir"}, Required: true, Usage: "directory tree to copy onto the volume"},
			&cli.StringFlag{Name: "bootloader", Usage: "master bootloader image, written to the leading sectors"},
			&cli.StringFlag{Name: "volume-loader", Usage: "volume bootloader image, installed as the partition's VBR"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output disk image path"},
		},
		Action: runBuild,
		Commands: []*cli.Command{
			{
				Name:  "list-sizes",
				Usage: "list the named disk-size presets accepted by --size",
				Action: func(c *cli.Context) error {
					for _, slug := range sortedKeys(namedDiskSizes) {
						fmt.Printf("%-16s %d bytes\n", slug, namedDiskSizes[slug])
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "mkdisk:", err)
		os.Exit(1)
	}
}

func runBuild(c *cli.Context) error {
	totalBytes, err := parseDiskSize(c.String("size"))
	if err != nil {
		return err
	}
	totalSectors, err := sectorsForSize(totalBytes)
	if err != nil {
		return err
	}

	var masterBootloader []byte
	if path := c.String("bootloader"); path != "" {
		masterBootloader, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading master bootloader: %w", err)
		}
	}

	device := block.NewRAMDevice(totalSectors)

	bootSectors := uint32(1)
	if len(masterBootloader) > 0 {
		bootSectors = uint32(math.Ceil(float64(len(masterBootloader)) / float64(block.SectorSize)))
		if err := writeSectorsSequentially(device, 0, masterBootloader); err != nil {
			return fmt.Errorf("writing master bootloader: %w", err)
		}
	}

	partitionStart := bootSectors
	if partitionStart == 0 {
		partitionStart = 1
	}
	if partitionStart >= totalSectors {
		return fmt.Errorf("bootloader (%d sectors) leaves no room for a partition", partitionStart)
	}
	partitionSectors := totalSectors - partitionStart

	if err := mbr.SetPartitionInfo(device, 0, mbr.Info{
		Format:      mbr.FormatFAT32LBA,
		StartLBA:    partitionStart,
		SectorCount: partitionSectors,
		Bootable:    true,
	}); err != nil {
		return fmt.Errorf("writing MBR: %w", err)
	}

	partition := block.NewPartition(device, partitionStart, partitionSectors)
	if err := fat32.Format(partition); err != nil {
		return fmt.Errorf("formatting partition: %w", err)
	}

	if path := c.String("volume-loader"); path != "" {
		if err := installVolumeBootRecord(partition, path); err != nil {
			return fmt.Errorf("installing volume boot record: %w", err)
		}
	}

	volume, err := mbr.Mount(device, 0)
	if err != nil {
		return fmt.Errorf("mounting formatted partition: %w", err)
	}

	if err := populateTree(volume, c.String("source")); err != nil {
		return fmt.Errorf("populating volume: %w", err)
	}

	if err := emitImage(device, c.String("out")); err != nil {
		return fmt.Errorf("writing output image: %w", err)
	}
	return nil
}

// writeSectorsSequentially writes data across consecutive sectors starting
// at lba, zero-padding the final partial sector.
func writeSectorsSequentially(device block.Device, lba uint32, data []byte) error {
	for offset := 0; offset < len(data); offset += block.SectorSize {
		end := offset + block.SectorSize
		if end > len(data) {
			end = len(data)
		}
		if err := device.WriteSector(lba, data[offset:end]); err != nil {
			return err
		}
		lba++
	}
	return nil
}

// installVolumeBootRecord writes the volume bootloader's first sector over
// the partition's VBR with the jump patched to skip the header, then
// writes the bootloader's remaining sectors starting at partition sector 1.
func installVolumeBootRecord(partition block.Device, path string) error {
	loader, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(loader) < block.SectorSize {
		return fmt.Errorf("volume bootloader must be at least %d bytes", block.SectorSize)
	}

	vbr := make([]byte, block.SectorSize)
	copy(vbr, loader[:block.SectorSize])
	copy(vbr[0:3], vbrJumpBytes[:])

	if vbr[510] != 0x55 || vbr[511] != 0xAA {
		return fmt.Errorf("volume bootloader is missing its 0x55AA boot signature")
	}

	if err := partition.WriteSector(0, vbr); err != nil {
		return err
	}
	if len(loader) > block.SectorSize {
		return writeSectorsSequentially(partition, 1, loader[block.SectorSize:])
	}
	return nil
}

// emitImage writes device's sectors, in LBA order, to outPath.
func emitImage(device *block.RAMDevice, outPath string) error {
	info := device.Info()
	out := make([]byte, int(info.TotalSectors)*block.SectorSize)

	w := bytewriter.New(out)
	sectors := device.Sectors()
	for lba := uint32(0); lba < info.TotalSectors; lba++ {
		var sec block.Sector
		if lba < uint32(len(sectors)) {
			sec = sectors[lba]
		}
		if _, err := w.Write(sec[:]); err != nil {
			return err
		}
	}

	return os.WriteFile(outPath, out, 0o644)
}
