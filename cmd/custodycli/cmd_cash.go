package main

import (
	"flag"
	"fmt"
	"io"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/x/cash"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transferring native funds from the source account
to the destination account.
		`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "Address of the source account.")
		dstFl    = flAddress(fl, "dst", "", "Address of the destination account.")
		amountFl = fl.Uint64("amount", 0, "Native amount to transfer.")
		memoFl   = fl.String("memo", "", "Short message attached to the transfer.")
	)
	fl.Parse(args)

	return writeMsg(output, &cash.SendMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      *amountFl,
		Memo:        *memoFl,
	})
}
