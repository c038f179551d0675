package fat32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietgrove/mkdisk/dderrors"
)

func TestSplitStemExt(t *testing.T) {
	cases := []struct {
		name     string
		wantStem string
		wantExt  string
	}{
		{"README.TXT", "README", "TXT"},
		{"noext", "noext", ""},
		{".", ".", ""},
		{"..", "..", ""},
		{".hidden", ".hidden", ""},
		{"archive.tar.gz", "archive.tar", "gz"},
	}
	for _, c := range cases {
		stem, ext := splitStemExt(c.name)
		assert.Equal(t, c.wantStem, stem, c.name)
		assert.Equal(t, c.wantExt, ext, c.name)
	}
}

func TestNormalizedNameOfTruncates(t *testing.T) {
	stem, ext, err := normalizedNameOf("LONGFILENAME.LONGEXT")
	require.NoError(t, err)
	assert.Equal(t, "LONGFILE", stem)
	assert.Equal(t, "LON", ext)
}

func TestNormalizedNameOfRejectsEmptyStem(t *testing.T) {
	_, _, err := normalizedNameOf("")
	require.Error(t, err)
	assert.ErrorIs(t, err, dderrors.ErrInvalidPath)
}

func TestNormalizedNameOfRejectsNonASCII(t *testing.T) {
	_, _, err := normalizedNameOf("caf\xc3\xa9.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, dderrors.ErrInvalidPath)
}

func TestNormalizedNameOfDotNames(t *testing.T) {
	stem, ext, err := normalizedNameOf(".")
	require.NoError(t, err)
	assert.Equal(t, ".", stem)
	assert.Equal(t, "", ext)
}
