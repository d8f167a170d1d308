// Package filemode canonicalizes workspace file permissions into the two
// tree-entry modes this system understands.
package filemode

import "os"

// FileMode is a tree-entry mode, restricted to what this system produces
// and accepts: regular files, executables, and directories. Unlike
// go-git's full FileMode (which also models symlinks and submodules),
// this system never stages symlinks or submodules, so those variants
// don't exist here.
type FileMode uint32

const (
	// Regular is a non-executable file, mode 100644.
	Regular FileMode = 0o100644
	// Executable is an owner-executable file, mode 100755.
	Executable FileMode = 0o100755
	// Dir is a sub-tree, mode 40000.
	Dir FileMode = 0o40000
)

// String returns the octal string used in tree-entry serialization.
func (m FileMode) String() string {
	switch m {
	case Dir:
		return "40000"
	case Executable:
		return "100755"
	default:
		return "100644"
	}
}

// New canonicalizes an on-disk os.FileMode into the mode this system
// records for a regular file: Executable if the owner-execute bit is
// set, Regular otherwise. Callers are expected to have already excluded
// directories.
func New(m os.FileMode) FileMode {
	if m&0o100 != 0 {
		return Executable
	}
	return Regular
}
