// Package dderrors defines the sentinel error kinds shared by the block,
// mbr and fat32 packages.
//
// Errors returned by this module describe disk-image-level failures, not
// arbitrary I/O noise: callers are expected to compare against the Err*
// sentinels with errors.Is, the same way they would compare against
// syscall.Errno values.
package dderrors

import "fmt"

// Kind is a disk-image error condition. It implements error directly so it
// can be returned bare, and WithMessage/Wrap let callers attach context
// without losing the ability to compare against the sentinel with
// errors.Is.
type Kind string

const (
	// ErrBeyondDiskSize is returned when an operation addresses an LBA at or
	// past the end of the device or partition.
	ErrBeyondDiskSize = Kind("lba is beyond the size of the disk")

	// ErrCorruptDisk is returned when the MBR signature is missing or a
	// partition table entry cannot be trusted.
	ErrCorruptDisk = Kind("disk is corrupt")

	// ErrCorruptFAT is returned when a cluster chain cannot be walked to
	// completion, e.g. it runs off the end of the table without hitting an
	// end-of-chain marker.
	ErrCorruptFAT = Kind("FAT chain is corrupt")

	// ErrWriteError is returned when a write is rejected by the underlying
	// block device, including when no free cluster can be found.
	ErrWriteError = Kind("write rejected by block device")

	// ErrInvalidPath is returned when a path component cannot be
	// represented as an 8.3 name.
	ErrInvalidPath = Kind("path is not representable as an 8.3 name")
)

func (k Kind) Error() string {
	return string(k)
}

// WithMessage returns a DriverError carrying k as its sentinel and message
// appended for context.
func (k Kind) WithMessage(message string) DriverError {
	return wrappedError{message: fmt.Sprintf("%s: %s", string(k), message), causes: []error{k}}
}

// Wrap returns a DriverError carrying k as its sentinel and err's text
// appended for context. Both k and err remain visible to errors.Is: a
// caller can match either the sentinel kind or the original underlying
// error.
func (k Kind) Wrap(err error) DriverError {
	return wrappedError{message: fmt.Sprintf("%s: %s", string(k), err.Error()), causes: []error{k, err}}
}

// DriverError is an error that remembers the sentinel Kind it originated
// from, so errors.Is(err, dderrors.ErrCorruptFAT) keeps working after
// WithMessage/Wrap has decorated it.
type DriverError interface {
	error
	WithMessage(message string) DriverError
	Wrap(err error) DriverError
}

type wrappedError struct {
	message string
	causes  []error
}

func (e wrappedError) Error() string { return e.message }

func (e wrappedError) WithMessage(message string) DriverError {
	return wrappedError{message: fmt.Sprintf("%s: %s", e.message, message), causes: []error{e}}
}

func (e wrappedError) Wrap(err error) DriverError {
	return wrappedError{message: fmt.Sprintf("%s: %s", e.message, err.Error()), causes: []error{e, err}}
}

// Unwrap exposes every cause wrappedError carries so errors.Is can match
// against the original sentinel Kind even after Wrap has layered a
// non-Kind error on top.
func (e wrappedError) Unwrap() []error { return e.causes }

// NonexistentError reports that a path component could not be found. Path
// is the absolute path walked up to and including the missing component.
type NonexistentError struct {
	Path string
}

func (e *NonexistentError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}

// Nonexistent builds a NonexistentError for path.
func Nonexistent(path string) error {
	return &NonexistentError{Path: path}
}
