package chain

import (
	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// Config holds the defaults a [Wrapper] hands to its operators.
type Config struct {
	// Strict makes in compare with [collections.StrictEqual] unless the call
	// passes its own strict flag. The default is loose equality.
	Strict bool

	// Shuffler is the entropy source for shuffle when the call does not pass
	// one. Defaults to [collections.DefaultShuffler] if nil.
	Shuffler collections.Shuffler

	// Logger receives a debug event for every dispatched operator. Nil uses
	// the package logger set with [SetLogger].
	Logger *zerolog.Logger
}

// DefaultConfig returns a [Config] populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shuffler: collections.DefaultShuffler,
	}
}

func (c *Config) shuffler() collections.Shuffler {
	if c.Shuffler == nil {
		return collections.DefaultShuffler
	}
	return c.Shuffler
}

func (c *Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		return logger()
	}
	return c.Logger
}
