package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/crypto"
	"golang.org/x/crypto/ed25519"
)

// writeTx serialize the transaction. Output is what custodyd apply expects.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

// readTx consumes the whole input and decodes a single transaction from it.
func readTx(r io.Reader) (*app.Tx, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize transaction: %s", err)
	}
	return &tx, nil
}

// writeMsg writes a new unsigned transaction carrying given message.
func writeMsg(w io.Writer, msg custody.Msg) error {
	var tx app.Tx
	if err := tx.SetMsg(msg); err != nil {
		return fmt.Errorf("cannot create transaction: %s", err)
	}
	_, err := writeTx(w, &tx)
	return err
}

func decodePrivateKey(filepath string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", filepath, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return &crypto.PrivateKey{Ed25519: data}, nil
}
