package resources

import (
	"path"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"golang.org/x/sync/singleflight"
)

// Source provides decoded resources by category and name.
type Source interface {
	Load(category, name string) (*Resource, error)
}

// Loader reads resources from archives below a root directory and decodes
// them with a decoder table. Every call to Load reads and decodes anew.
type Loader struct {
	root  string
	table DecoderTable
}

// NewLoader returns a loader for resources below root. A nil table means
// DefaultDecoders.
func NewLoader(root string, table DecoderTable) *Loader {
	if table == nil {
		table = DefaultDecoders()
	}
	return &Loader{root: root, table: table}
}

func (l *Loader) Root() string {
	return l.root
}

// Load reads and decodes root/category/name, either as a directory or as a
// zip archive.
func (l *Loader) Load(category, name string) (*Resource, error) {
	raw, err := ReadArchive(l.root, category, name)
	if err != nil {
		return nil, err
	}
	r, err := Decode(category, name, raw, l.table)
	if err != nil {
		return nil, err
	}
	glog.Infof("loaded resource %s/%s: %d files, %s", category, name, len(raw), humanize.Bytes(raw.Size()))
	return r, nil
}

// Cache keeps every resource loaded through it, so each archive is read and
// decoded once. Concurrent loads of the same resource share one underlying
// load. Failed loads are not cached.
type Cache struct {
	src   Source
	group singleflight.Group

	mu     sync.Mutex
	loaded map[string]*Resource
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:    src,
		loaded: map[string]*Resource{},
	}
}

func cacheKey(category, name string) string {
	return path.Join(category, name)
}

func (c *Cache) Load(category, name string) (*Resource, error) {
	key := cacheKey(category, name)

	c.mu.Lock()
	r, ok := c.loaded[key]
	c.mu.Unlock()
	if ok {
		return r, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		r, ok := c.loaded[key]
		c.mu.Unlock()
		if ok {
			return r, nil
		}

		r, err := c.src.Load(category, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.loaded[key] = r
		c.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		glog.V(2).Infof("resource %s shared a concurrent load", key)
	}
	return v.(*Resource), nil
}

// Forget drops a cached resource; the next Load reads it again.
func (c *Cache) Forget(category, name string) {
	c.mu.Lock()
	delete(c.loaded, cacheKey(category, name))
	c.mu.Unlock()
}

// Len returns the number of cached resources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loaded)
}
