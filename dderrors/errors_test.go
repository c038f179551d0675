package dderrors_test

import (
	stderrors "errors"
	"testing"

	"github.com/quietgrove/mkdisk/dderrors"
	"github.com/stretchr/testify/assert"
)

func TestKindWithMessage(t *testing.T) {
	newErr := dderrors.ErrCorruptFAT.WithMessage("cluster 9001")
	assert.Equal(t, "FAT chain is corrupt: cluster 9001", newErr.Error())
	assert.ErrorIs(t, newErr, dderrors.ErrCorruptFAT)
}

func TestKindWrap(t *testing.T) {
	originalErr := stderrors.New("short read")
	newErr := dderrors.ErrBeyondDiskSize.Wrap(originalErr)

	assert.Equal(t, "lba is beyond the size of the disk: short read", newErr.Error())
	assert.ErrorIs(t, newErr, originalErr)
	assert.ErrorIs(t, newErr, dderrors.ErrBeyondDiskSize)
}

func TestNonexistentError(t *testing.T) {
	err := dderrors.Nonexistent("boot/grub")
	assert.Equal(t, "path does not exist: boot/grub", err.Error())

	var nonexistent *dderrors.NonexistentError
	assert.True(t, stderrors.As(err, &nonexistent))
	assert.Equal(t, "boot/grub", nonexistent.Path)
}
