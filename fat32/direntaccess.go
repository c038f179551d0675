package fat32

import "github.com/quietgrove/mkdisk/dderrors"

// resolveChainOffset walks from startCluster via nextCluster until offset
// fits within a single cluster's 16 slots, returning the cluster that
// offset%16 indexes into.
//
// Per-entry navigation walking off the end of the chain means the caller
// computed an offset that doesn't actually exist in this directory's
// listing — a corrupt FAT, not a programming bug — so this returns
// CorruptFAT rather than panicking.
func (fs *FileSystem) resolveChainOffset(startCluster uint32, offset uint32) (uint32, uint32, error) {
	cluster := startCluster
	for offset >= direntsPerCluster {
		next, hasNext, err := fs.nextCluster(cluster)
		if err != nil {
			return 0, 0, err
		}
		if !hasNext {
			return 0, 0, dderrors.ErrCorruptFAT.WithMessage("directory offset past end of chain")
		}
		cluster = next
		offset -= direntsPerCluster
	}
	return cluster, offset, nil
}

func (fs *FileSystem) readDirentInCluster(cluster, slot uint32) (Dirent, error) {
	data, err := fs.readCluster(cluster)
	if err != nil {
		return Dirent{}, err
	}
	start := slot * DirentSize
	return decodeDirent(data[start : start+DirentSize]), nil
}

func (fs *FileSystem) writeDirentInCluster(cluster, slot uint32, entry Dirent) error {
	data, err := fs.readCluster(cluster)
	if err != nil {
		return err
	}
	raw := encodeDirent(entry)
	start := slot * DirentSize
	copy(data[start:start+DirentSize], raw[:])
	return fs.writeCluster(cluster, data)
}

// getDire reads the directory entry at logical offset within the chain
// rooted at startCluster.
func (fs *FileSystem) getDire(startCluster, offset uint32) (Dirent, error) {
	cluster, slot, err := fs.resolveChainOffset(startCluster, offset)
	if err != nil {
		return Dirent{}, err
	}
	return fs.readDirentInCluster(cluster, slot)
}

// setDire writes the directory entry at logical offset within the chain
// rooted at startCluster.
func (fs *FileSystem) setDire(startCluster, offset uint32, entry Dirent) error {
	cluster, slot, err := fs.resolveChainOffset(startCluster, offset)
	if err != nil {
		return err
	}
	return fs.writeDirentInCluster(cluster, slot, entry)
}

// findEntryIndex searches the directory chain rooted at dirCluster for an
// entry whose 8.3 name matches component's stem/extension (space-stripped,
// byte-for-byte). component is expected to already be an isolated
// filename, not a multi-segment path. It returns the logical index and
// true if found.
func (fs *FileSystem) findEntryIndex(dirCluster uint32, component string) (uint32, bool, error) {
	stem, ext := splitStemExt(component)

	cluster := dirCluster
	iteration := uint32(0)
	for {
		for i := uint32(0); i < direntsPerCluster; i++ {
			entry, err := fs.readDirentInCluster(cluster, i)
			if err != nil {
				return 0, false, err
			}
			switch entry.Kind {
			case DirentEnd:
				return 0, false, nil
			case DirentFree:
				continue
			default:
				if entry.Name == stem && entry.Ext == ext {
					return iteration*direntsPerCluster + i, true, nil
				}
			}
		}

		next, hasNext, err := fs.nextCluster(cluster)
		if err != nil {
			return 0, false, err
		}
		if !hasNext {
			return 0, false, dderrors.ErrCorruptFAT.WithMessage("directory chain has no end marker")
		}
		cluster = next
		iteration++
	}
}

// allocDire finds (or makes room for) a free slot in the directory chain
// rooted at dirCluster and returns its logical index.
func (fs *FileSystem) allocDire(dirCluster uint32) (uint32, error) {
	cluster := dirCluster
	iteration := uint32(0)
	for {
		for i := uint32(0); i < direntsPerCluster; i++ {
			entry, err := fs.readDirentInCluster(cluster, i)
			if err != nil {
				return 0, err
			}
			idx := iteration*direntsPerCluster + i

			switch entry.Kind {
			case DirentFree:
				return idx, nil
			case DirentEnd:
				if err := fs.writeDirentInCluster(cluster, i, Dirent{Kind: DirentFree}); err != nil {
					return 0, err
				}
				if i+1 < direntsPerCluster {
					if err := fs.writeDirentInCluster(cluster, i+1, Dirent{Kind: DirentEnd}); err != nil {
						return 0, err
					}
				} else {
					newCluster, err := fs.allocCluster(&dirCluster)
					if err != nil {
						return 0, err
					}
					if err := fs.writeDirentInCluster(newCluster, 0, Dirent{Kind: DirentEnd}); err != nil {
						return 0, err
					}
				}
				return idx, nil
			}
		}

		next, hasNext, err := fs.nextCluster(cluster)
		if err != nil {
			return 0, err
		}
		if !hasNext {
			return 0, dderrors.ErrCorruptFAT.WithMessage("directory chain has no end marker")
		}
		cluster = next
		iteration++
	}
}
