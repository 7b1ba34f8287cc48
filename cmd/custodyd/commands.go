package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	configFile  = "config.toml"
	genesisFile = "genesis.json"
	ownerKey    = "owner.key"
)

func initCmd(e env, args []string) error {
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	fl.SetOutput(e.stdout)
	fl.Usage = func() {
		fmt.Fprintln(e.stdout, `
Write the configuration and the genesis file of a new chain. The owner
address receives the initial native balance and controls the native
configuration. When no owner is given, a new key is generated and stored
in the home directory.

  custodyd init [-chain-id <id>] [owner address]
		`)
		fl.PrintDefaults()
	}
	var (
		chainIDFl = fl.String("chain-id", "", "Chain ID of the new chain. Configured value is used if not provided.")
	)
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := os.MkdirAll(e.home, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	confPath := filepath.Join(e.home, configFile)
	conf, err := LoadConfig(confPath)
	if err != nil {
		return err
	}
	if *chainIDFl != "" {
		conf.ChainID = *chainIDFl
	}
	if !custody.IsValidChainID(conf.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", conf.ChainID)
	}

	genPath := filepath.Join(e.home, genesisFile)
	if _, err := os.Stat(genPath); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "genesis file %s", genPath)
	}

	var owner custody.Address
	switch fl.NArg() {
	case 0:
		key, err := writeOwnerKey(filepath.Join(e.home, ownerKey))
		if err != nil {
			return err
		}
		owner = key.PublicKey().Address()
	case 1:
		owner, err = custody.ParseAddress(fl.Arg(0))
		if err != nil {
			return errors.Wrap(err, "owner")
		}
	default:
		return errors.Wrap(errors.ErrInput, "too many arguments")
	}

	state, err := custodyd.GenInitOptions(owner)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(app.Genesis{ChainID: conf.ChainID, AppState: state}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(genPath, raw, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := SaveConfig(confPath, conf); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "chain %s initialized, owner %s\n", conf.ChainID, owner)
	return err
}

// writeOwnerKey generates a new private key and writes it using the raw
// ed25519 format. An existing file is never overwritten.
func writeOwnerKey(path string) (*crypto.PrivateKey, error) {
	key := crypto.GenPrivKeyEd25519()
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if _, err := fd.Write(key.Ed25519); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return key, fd.Close()
}

// openApp loads the configuration from the home directory and returns the
// application using the persistent state. Returned closer must be called
// once done.
func openApp(e env) (app.BaseApp, func(), error) {
	conf, err := LoadConfig(filepath.Join(e.home, configFile))
	if err != nil {
		return app.BaseApp{}, nil, err
	}
	logger, err := conf.Logger(os.Stderr)
	if err != nil {
		return app.BaseApp{}, nil, err
	}
	stack, err := custodyd.Stack(e.metrics)
	if err != nil {
		return app.BaseApp{}, nil, err
	}
	kv, err := custodyd.CommitKVStore(filepath.Join(e.home, conf.DBName))
	if err != nil {
		return app.BaseApp{}, nil, err
	}
	base := custodyd.Application(stack, custodyd.TxDecoder, kv, conf.Debug)
	base.WithLogger(logger)
	return base, kv.Close, nil
}

// txResult is the outcome of a single transaction of an applied block.
type txResult struct {
	Code uint32            `json:"code"`
	Log  string            `json:"log,omitempty"`
	Data string            `json:"data,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

type blockResult struct {
	Height  int64      `json:"height"`
	AppHash string     `json:"app_hash"`
	Results []txResult `json:"results"`
}

func applyCmd(e env, args []string) error {
	fl := flag.NewFlagSet("apply", flag.ContinueOnError)
	fl.SetOutput(e.stdout)
	fl.Usage = func() {
		fmt.Fprintln(e.stdout, `
Execute serialized transactions as a single new block and commit the
result. Each argument is a file containing one binary transaction. When no
file is given, a single transaction is read from the standard input. The
genesis file is loaded when the state is not initialized yet.

  custodyd apply [tx file...]
		`)
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var txs [][]byte
	if fl.NArg() == 0 {
		raw, err := ioutil.ReadAll(e.stdin)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		txs = append(txs, raw)
	}
	for _, path := range fl.Args() {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		txs = append(txs, raw)
	}

	base, closeApp, err := openApp(e)
	if err != nil {
		return err
	}
	defer closeApp()

	// check state only reflects committed data, so the block that carries
	// the genesis state is delivered without the check phase
	genesis := base.GetChainID() == ""
	if genesis {
		if err := base.LoadGenesis(filepath.Join(e.home, genesisFile), custodyd.Initializers()); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}

	info := base.Info(abci.RequestInfo{})
	height := info.LastBlockHeight + 1
	base.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: height, ChainID: base.GetChainID()},
	})

	block := blockResult{Height: height}
	for _, raw := range txs {
		if !genesis {
			check := base.CheckTx(raw)
			if check.Code != 0 {
				block.Results = append(block.Results, txResult{Code: check.Code, Log: check.Log})
				continue
			}
		}
		res := base.DeliverTx(raw)
		block.Results = append(block.Results, txResult{
			Code: res.Code,
			Log:  res.Log,
			Data: hex.EncodeToString(res.Data),
			Tags: tagsMap(res.Tags),
		})
	}
	base.EndBlock(abci.RequestEndBlock{Height: height})
	commit := base.Commit()
	block.AppHash = hex.EncodeToString(commit.Data)

	return printJSON(e.stdout, block)
}

func tagsMap(tags []common.KVPair) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[string(t.Key)] = string(t.Value)
	}
	return m
}

// queryModels maps query paths to the model they return.
var queryModels = map[string]func() orm.Model{
	"/escrows":    func() orm.Model { return &escrow.EscrowRecord{} },
	"/cash":       func() orm.Model { return &cash.NativeAccount{} },
	"/tkmints":    func() orm.Model { return &token.Mint{} },
	"/tkaccounts": func() orm.Model { return &token.TokenAccount{} },
	"/auth":       func() orm.Model { return &sigs.UserData{} },
}

type queryResult struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func queryCmd(e env, args []string) error {
	fl := flag.NewFlagSet("query", flag.ContinueOnError)
	fl.SetOutput(e.stdout)
	fl.Usage = func() {
		fmt.Fprintln(e.stdout, `
Read the latest committed state. The argument is the hex encoded key to
look up, or the key prefix when -prefix is used.

  custodyd query [-path <path>] [-prefix] [hex key]
		`)
		fmt.Fprintf(e.stdout, "Available paths: %s\n\n", strings.Join(custodyd.QueryRouter().Paths(), ", "))
		fl.PrintDefaults()
	}
	var (
		pathFl   = fl.String("path", "/escrows", "Query path.")
		prefixFl = fl.Bool("prefix", false, "Use a prefix query.")
	)
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	data, err := hex.DecodeString(fl.Arg(0))
	if err != nil {
		return errors.Wrap(errors.ErrInput, "key must be hex encoded")
	}

	base, closeApp, err := openApp(e)
	if err != nil {
		return err
	}
	defer closeApp()

	path := *pathFl
	if *prefixFl {
		path += "?prefix"
	}
	resp := base.Query(abci.RequestQuery{Path: path, Data: data})
	if resp.Code != 0 {
		return errors.ABCIError(resp.Code, resp.Log)
	}

	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return errors.Wrap(err, "values")
	}
	models, err := app.JoinResults(&keys, &values)
	if err != nil {
		return err
	}

	results := make([]queryResult, 0, len(models))
	for _, m := range models {
		res := queryResult{Key: hex.EncodeToString(m.Key), Value: hex.EncodeToString(m.Value)}
		if newModel, ok := queryModels[*pathFl]; ok {
			obj := newModel()
			if err := obj.Unmarshal(m.Value); err != nil {
				return errors.Wrapf(err, "decode %s", hex.EncodeToString(m.Key))
			}
			res.Value = obj
		}
		results = append(results, res)
	}
	return printJSON(e.stdout, results)
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
