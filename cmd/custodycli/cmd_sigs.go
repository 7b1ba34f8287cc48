package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The sequence must be the next sequence of the signer, as returned by the
custodyd query -path /auth command.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use CUSTODYCLI_PRIV_KEY environment variable to set it.")
		chainIDFl = fl.String("chain-id", env("CUSTODY_CHAIN_ID", ""),
			"Chain ID the transaction is signed for. You can use CUSTODY_CHAIN_ID environment variable to set it.")
		seqFl = fl.Int64("seq", 0, "Sequence of the signer.")
	)
	fl.Parse(args)

	if *chainIDFl == "" {
		return errors.New("chain ID is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	sig, err := sigs.SignTx(key, tx, *chainIDFl, *seqFl)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
