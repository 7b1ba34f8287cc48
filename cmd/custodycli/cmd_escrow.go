package main

import (
	"flag"
	"fmt"
	"io"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/x/escrow"
)

func cmdInitializeEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for initializing a new escrow record. The payer covers
the deposit of the escrow account and defaults to the main signer.
		`)
		fl.PrintDefaults()
	}
	var (
		idFl       = flHex(fl, "escrow", "", "Optional hex encoded escrow ID. A sequence value is used if not provided.")
		operatorFl = flAddress(fl, "operator", "", "Address of the operator allowed to distribute funds.")
		payerFl    = flAddress(fl, "payer", "", "Optional address of the deposit payer.")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.InitializeMsg{
		Metadata: &custody.Metadata{Schema: 1},
		EscrowID: *idFl,
		Operator: *operatorFl,
		Payer:    *payerFl,
	})
}

func cmdAuthorizeOperator(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction delegating the authority of a token account to the
operator of an escrow. The transaction must be signed by the current
authority of the token account.
		`)
		fl.PrintDefaults()
	}
	var (
		idFl        = flHex(fl, "escrow", "", "Hex encoded escrow ID.")
		accountFl   = flHex(fl, "account", "", "Hex encoded token account key.")
		authorityFl = flAddress(fl, "authority", "", "Address of the current token account authority.")
		operatorFl  = flAddress(fl, "operator", "", "Address of the escrow operator.")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.AuthorizeOperatorMsg{
		Metadata:         &custody.Metadata{Schema: 1},
		EscrowID:         *idFl,
		TokenAccount:     *accountFl,
		CurrentAuthority: *authorityFl,
		Operator:         *operatorFl,
	})
}

func cmdDistributeNative(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction releasing native funds from given escrow. The
transaction must be signed by the escrow operator.
		`)
		fl.PrintDefaults()
	}
	var (
		idFl     = flHex(fl, "escrow", "", "Hex encoded escrow ID.")
		destFl   = flAddress(fl, "dest", "", "Address of the destination account.")
		amountFl = fl.Uint64("amount", 0, "Native amount to distribute.")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.DistributeNativeMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		EscrowID:    *idFl,
		Destination: *destFl,
		Amount:      *amountFl,
	})
}

func cmdDistributeToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction moving tokens from an account whose authority was
delegated to the escrow operator. The transaction must be signed by the
escrow operator.
		`)
		fl.PrintDefaults()
	}
	var (
		idFl     = flHex(fl, "escrow", "", "Hex encoded escrow ID.")
		fromFl   = flHex(fl, "from", "", "Hex encoded key of the sender token account.")
		toFl     = flHex(fl, "to", "", "Hex encoded key of the recipient token account.")
		amountFl = fl.Uint64("amount", 0, "Token amount to distribute.")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.DistributeTokenMsg{
		Metadata:         &custody.Metadata{Schema: 1},
		EscrowID:         *idFl,
		SenderAccount:    *fromFl,
		RecipientAccount: *toFl,
		Amount:           *amountFl,
	})
}
