package main

import (
	"flag"
	"fmt"
	"io"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/x/token"
)

func cmdCreateMint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction registering a new token mint.
		`)
		fl.PrintDefaults()
	}
	var (
		authorityFl = flAddress(fl, "authority", "", "Optional mint authority. The main signer is used if not provided.")
		decimalsFl  = fl.Uint("decimals", 0, "Number of decimals of the token.")
	)
	fl.Parse(args)

	return writeMsg(output, &token.CreateMintMsg{
		Metadata:  &custody.Metadata{Schema: 1},
		Authority: *authorityFl,
		Decimals:  uint32(*decimalsFl),
	})
}

func cmdCreateTokenAccount(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction opening a new token account for given mint.
		`)
		fl.PrintDefaults()
	}
	var (
		mintFl  = flHex(fl, "mint", "", "Hex encoded mint key.")
		ownerFl = flAddress(fl, "owner", "", "Optional account owner. The main signer is used if not provided.")
	)
	fl.Parse(args)

	return writeMsg(output, &token.CreateAccountMsg{
		Metadata: &custody.Metadata{Schema: 1},
		Mint:     *mintFl,
		Owner:    *ownerFl,
	})
}

func cmdMintTo(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction creating new token units in given account. The
transaction must be signed by the mint authority.
		`)
		fl.PrintDefaults()
	}
	var (
		mintFl      = flHex(fl, "mint", "", "Hex encoded mint key.")
		accountFl   = flHex(fl, "account", "", "Hex encoded token account key.")
		authorityFl = flAddress(fl, "authority", "", "Address of the mint authority.")
		amountFl    = fl.Uint64("amount", 0, "Token amount to create.")
	)
	fl.Parse(args)

	return writeMsg(output, &token.MintToMsg{
		Metadata:  &custody.Metadata{Schema: 1},
		Mint:      *mintFl,
		Account:   *accountFl,
		Authority: *authorityFl,
		Amount:    *amountFl,
	})
}

func cmdTransferToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction moving token units between two accounts. The
transaction must be signed by the authority of the source account.
		`)
		fl.PrintDefaults()
	}
	var (
		fromFl      = flHex(fl, "from", "", "Hex encoded key of the source token account.")
		toFl        = flHex(fl, "to", "", "Hex encoded key of the destination token account.")
		authorityFl = flAddress(fl, "authority", "", "Address of the source account authority.")
		amountFl    = fl.Uint64("amount", 0, "Token amount to transfer.")
	)
	fl.Parse(args)

	return writeMsg(output, &token.TransferMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		Source:      *fromFl,
		Destination: *toFl,
		Authority:   *authorityFl,
		Amount:      *amountFl,
	})
}
