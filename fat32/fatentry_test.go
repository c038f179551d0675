package fat32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFATEntryClassification(t *testing.T) {
	cases := []struct {
		name string
		raw  uint32
		want FATEntryKind
	}{
		{"free", 0x00000000, Free},
		{"reserved low", 0x00000001, Reserved},
		{"reserved high band", 0x0FFFFFF2, Reserved},
		{"bad", 0x0FFFFFF7, Bad},
		{"end low", 0x0FFFFFF8, End},
		{"end high", 0x0FFFFFFF, End},
		{"continuation", 0x00000005, Cont},
	}
	for _, c := range cases {
		got := decodeFATEntry(c.raw)
		assert.Equal(t, c.want, got.Kind, c.name)
	}
}

func TestDecodeFATEntryMasksUpperNibble(t *testing.T) {
	// upper 4 bits are ignored per the 28-bit field width
	got := decodeFATEntry(0xF0000005)
	assert.Equal(t, Cont, got.Kind)
	assert.Equal(t, uint32(5), got.Next)
}

func TestEncodeFATEntryRoundTrip(t *testing.T) {
	entry := FATEntry{Kind: Cont, Next: 42}
	raw := encodeFATEntry(entry)
	assert.Equal(t, entry, decodeFATEntry(raw))

	end := encodeFATEntry(FATEntry{Kind: End})
	assert.Equal(t, uint32(fatEndValue), end)

	free := encodeFATEntry(FATEntry{Kind: Free})
	assert.Equal(t, uint32(0), free)
}
