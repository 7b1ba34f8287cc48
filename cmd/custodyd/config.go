package main

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the content of the config.toml file of the home directory.
type Config struct {
	// ChainID is used when generating a new genesis file.
	ChainID string `toml:"chain_id"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// Debug returns full error information in transaction results.
	Debug bool `toml:"debug"`
	// DBName is the name of the state database within the home directory.
	DBName string `toml:"db_name"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		ChainID:  "custody-dev",
		LogLevel: "info",
		DBName:   "custody.db",
	}
}

// LoadConfig reads the configuration from given path. Missing values are
// taken from the default configuration. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return conf, nil
}

// SaveConfig writes the configuration to given path.
func SaveConfig(path string, conf Config) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return fd.Close()
}

// Logger returns a logger writing to the given writer, filtered by the
// configured level.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "custody")
	return log.NewFilter(logger, opt), nil
}
