package fat32

import (
	"github.com/quietgrove/mkdisk/block"
	"github.com/quietgrove/mkdisk/dderrors"
)

// findDir resolves path to the cluster of the directory it names, walking
// one directory-entry lookup per component from the root. Every component
// — including "." and ".." — is looked up as a literal directory-entry
// name; this engine never interprets them as relative-path operators.
func (fs *FileSystem) findDir(path string) (uint32, error) {
	cur := fs.rdirCluster
	var consumed []string

	for _, comp := range splitComponents(path) {
		idx, found, err := fs.findEntryIndex(cur, comp)
		if err != nil {
			return 0, err
		}
		consumed = append(consumed, comp)
		if !found {
			return 0, dderrors.Nonexistent(joinAbs(consumed))
		}

		entry, err := fs.getDire(cur, idx)
		if err != nil {
			return 0, err
		}
		cur = entry.Start
	}
	return cur, nil
}

func (fs *FileSystem) findParentDir(path string) (uint32, error) {
	return fs.findDir(parentPath(path))
}

func joinAbs(comps []string) string {
	out := "/"
	for i, c := range comps {
		if i > 0 {
			out += "/"
		}
		out += c
	}
	return out
}

// MakeDir creates an empty subdirectory at path. Every path component up
// to the parent must already exist.
func (fs *FileSystem) MakeDir(path string) error {
	dir, err := fs.findParentDir(path)
	if err != nil {
		return err
	}

	stem, ext, err := normalizedNameOf(lastComponent(path))
	if err != nil {
		return err
	}

	newCluster, err := fs.allocCluster(nil)
	if err != nil {
		return err
	}
	if err := fs.writeDirentInCluster(newCluster, 0, Dirent{Kind: DirentEnd}); err != nil {
		return err
	}

	idx, err := fs.allocDire(dir)
	if err != nil {
		return err
	}

	return fs.setDire(dir, idx, Dirent{Kind: DirentDir, Name: stem, Ext: ext, Start: newCluster})
}

// WriteFile writes data at path, creating a new file entry or overwriting
// an existing one's contents in place. Overwriting a larger file with a
// smaller one frees the orphaned tail of the old chain rather than
// leaking it; see DESIGN.md (orphaned-clusters open question).
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	dir, err := fs.findParentDir(path)
	if err != nil {
		return err
	}

	name := lastComponent(path)
	stem, ext, err := normalizedNameOf(name)
	if err != nil {
		return err
	}

	idx, found, err := fs.findEntryIndex(dir, name)
	if err != nil {
		return err
	}

	var start uint32
	if found {
		existing, err := fs.getDire(dir, idx)
		if err != nil {
			return err
		}
		start = existing.Start
	} else {
		idx, err = fs.allocDire(dir)
		if err != nil {
			return err
		}
		start, err = fs.allocCluster(nil)
		if err != nil {
			return err
		}
	}

	if err := fs.setDire(dir, idx, Dirent{
		Kind:  DirentFile,
		Name:  stem,
		Ext:   ext,
		Start: start,
		Size:  uint32(len(data)),
	}); err != nil {
		return err
	}

	last, err := fs.writeChunks(start, data)
	if err != nil {
		return err
	}
	return fs.truncateChainTail(last)
}

// writeChunks writes data across the cluster chain rooted at start,
// extending the chain as needed, and returns the last cluster it wrote
// into (the point truncateChainTail should cut from, not start itself).
func (fs *FileSystem) writeChunks(start uint32, data []byte) (uint32, error) {
	chunkSize := int(fs.clusterSize) * block.SectorSize
	current := start

	for offset := 0; offset < len(data) || offset == 0; {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := fs.writeCluster(current, data[offset:end]); err != nil {
			return 0, err
		}

		offset = end
		if offset >= len(data) {
			break
		}

		next, hasNext, err := fs.nextCluster(current)
		if err != nil {
			return 0, err
		}
		if hasNext {
			current = next
		} else {
			current, err = fs.allocCluster(&current)
			if err != nil {
				return 0, err
			}
		}
	}
	return current, nil
}

// truncateChainTail frees every cluster reachable from last's successor
// and re-terminates the chain at last.
func (fs *FileSystem) truncateChainTail(last uint32) error {
	next, hasNext, err := fs.nextCluster(last)
	if err != nil {
		return err
	}
	for hasNext {
		var freeErr error
		next, hasNext, freeErr = fs.freeAndAdvance(next)
		if freeErr != nil {
			return freeErr
		}
	}
	return fs.writeFATEntry(last, FATEntry{Kind: End})
}

func (fs *FileSystem) freeAndAdvance(cluster uint32) (uint32, bool, error) {
	next, hasNext, err := fs.nextCluster(cluster)
	if err != nil {
		return 0, false, err
	}
	if err := fs.writeFATEntry(cluster, FATEntry{Kind: Free}); err != nil {
		return 0, false, err
	}
	return next, hasNext, nil
}

// ReadFile is present for symmetry with the rest of the filesystem
// surface; this engine's callers never read files back, so it is an
// in-scope no-op.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return nil, nil
}

// Delete is present for symmetry with the rest of the filesystem surface;
// this engine's callers never delete files, so it is an in-scope no-op.
func (fs *FileSystem) Delete(path string) error {
	return nil
}
