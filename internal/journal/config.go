package journal

import (
	"net/url"
	"strings"
)

type Config struct {
	uri     *url.URL
	durable bool
}

type ConfigFunc = func(c *Config)

// WithFile stores the journal in the provided file. The special name ":memory:" keeps it in
// memory.
func WithFile(file string) ConfigFunc {
	return func(c *Config) {
		c.File(file)
	}
}

// WithDurable makes every recorded item synced to disk before Record returns.
func WithDurable(durable bool) ConfigFunc {
	return func(c *Config) {
		c.Durable(durable)
	}
}

func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.uri = &url.URL{Scheme: "file", Opaque: file}
}

func (c *Config) Durable(durable bool) {
	c.durable = durable
}

func (c *Config) memory() bool {
	return c.uri.Opaque == memory
}
