package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// validateCmd loads every given genesis file into an in memory store. The
// genesis file of the home directory is used when no path is given.
func validateCmd(e env, args []string) error {
	if len(args) == 0 {
		args = []string{filepath.Join(e.home, genesisFile)}
	}
	if err := ValidateGenesis(custodyd.Initializers(), args); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.stdout, "%d genesis file(s) valid\n", len(args))
	return err
}

// ValidateGenesis runs the initializer against the state of each genesis
// file. Nothing is persisted.
func ValidateGenesis(ini custody.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini custody.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var gen app.Genesis
	if err := json.Unmarshal(b, &gen); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	if !custody.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}
	var opts custody.Options
	if err := json.Unmarshal(gen.AppState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize app state: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(opts, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
