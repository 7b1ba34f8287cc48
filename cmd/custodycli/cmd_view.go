package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	custody "github.com/iov-one/custody"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display transaction summary. This command is helpful when reciving a
binary representation of a transaction. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot get transaction message: %s", err)
	}

	summary := struct {
		Path    string
		Msg     custody.Msg
		Signers []signer
	}{
		Path: msg.Path(),
		Msg:  msg,
	}
	for _, s := range tx.Signatures {
		if s.Pubkey == nil {
			continue
		}
		summary.Signers = append(summary.Signers, signer{
			Address:  s.Pubkey.Address(),
			Sequence: s.Sequence,
		})
	}

	pretty, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type signer struct {
	Address  custody.Address
	Sequence int64
}
