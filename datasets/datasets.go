// Package datasets resolves catalog names to loaded tables. Each dataset is
// parsed at most once, on first access, and the materialized table is shared
// by every later lookup.
package datasets

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/muneeb706/ad-data-explorer/config"
	"github.com/muneeb706/ad-data-explorer/datasources/csv"
	"github.com/muneeb706/ad-data-explorer/table"
)

type Cache struct {
	mu      sync.Mutex
	loaders map[string]func() (*table.Table, error)
}

// NewCache builds a cache over the configured datasets without reading any
// of them yet.
func NewCache(cfg *config.Config) *Cache {
	cache := &Cache{
		loaders: make(map[string]func() (*table.Table, error)),
	}
	for _, dataset := range cfg.Datasets {
		cache.add(dataset)
	}
	return cache
}

func parseOptions(dataset config.DatasetConfig) []csv.Option {
	var opts []csv.Option
	if dataset.Delimiter != "" {
		opts = append(opts, csv.WithDelimiter(rune(dataset.Delimiter[0])))
	}
	if dataset.Quote != "" {
		opts = append(opts, csv.WithQuote(rune(dataset.Quote[0])))
	}
	if dataset.SkipMalformedRows {
		opts = append(opts, csv.WithSkipMalformedRows())
	}
	return opts
}

func (c *Cache) add(dataset config.DatasetConfig) {
	once := sync.Once{}
	opts := parseOptions(dataset)
	var out *table.Table
	var err error

	c.loaders[dataset.Name] = func() (*table.Table, error) {
		once.Do(func() {
			out, err = csv.ParseFile(dataset.Path, opts...)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't load dataset %s from %s", dataset.Name, dataset.Path)
		}
		return out, nil
	}
}

// Get returns the table for a catalog name, loading it on first access.
func (c *Cache) Get(name string) (*table.Table, error) {
	c.mu.Lock()
	loader, ok := c.loaders[name]
	c.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(config.ErrNotFound, "dataset %q", name)
	}
	return loader()
}

// Names returns the catalog names in sorted order.
func (c *Cache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.loaders))
	for name := range c.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register copies uploaded content to a temporary file and adds it to the
// catalog under the given name, replacing any previous dataset of that name.
func (c *Cache) Register(name string, content io.Reader, opts ...csv.Option) error {
	f, err := os.CreateTemp(os.TempDir(), "ad-data-explorer-upload-*.csv")
	if err != nil {
		return errors.Wrap(err, "couldn't create temporary file")
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return errors.Wrap(err, "couldn't write uploaded content")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "couldn't close temporary file")
	}

	path := f.Name()
	once := sync.Once{}
	var out *table.Table
	var loadErr error

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[name] = func() (*table.Table, error) {
		once.Do(func() {
			out, loadErr = csv.ParseFile(path, opts...)
		})
		if loadErr != nil {
			return nil, errors.Wrapf(loadErr, "couldn't load uploaded dataset %s", name)
		}
		return out, nil
	}
	return nil
}
