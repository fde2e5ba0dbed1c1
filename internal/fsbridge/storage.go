package fsbridge

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// minCacheSize is used when an invalid cache size is provided.
const minCacheSize = 100

// NewStorage creates a new repository storage backed by the given filesystem,
// with an LRU cache in front of the object database. History iteration reads
// the same trees and blobs repeatedly, so the cache directly reduces pack
// decoding work.
func NewStorage(billyFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = minCacheSize
	}

	objCache := cache.NewObjectLRU(cache.FileSize(cacheSize))
	return filesystem.NewStorage(billyFS, objCache)
}
