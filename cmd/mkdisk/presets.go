package main

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// diskSize is one named entry of the built-in disk-size table, loaded from
// disk-sizes.csv at init time. It mirrors the teacher's named-geometry
// pattern, trimmed down to name, slug and byte count since CHS geometry is
// out of scope here.
type diskSize struct {
	Name  string `csv:"name"`
	Slug  string `csv:"slug"`
	Bytes uint64 `csv:"bytes"`
}

//go:embed disk-sizes.csv
var diskSizesCSV string

var namedDiskSizes map[string]uint64

func init() {
	namedDiskSizes = map[string]uint64{}
	err := gocsv.UnmarshalToCallback(strings.NewReader(diskSizesCSV), func(row diskSize) error {
		if _, exists := namedDiskSizes[row.Slug]; exists {
			return fmt.Errorf("duplicate disk size slug %q", row.Slug)
		}
		namedDiskSizes[row.Slug] = row.Bytes
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}
