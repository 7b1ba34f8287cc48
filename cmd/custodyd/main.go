package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	custody "github.com/iov-one/custody"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custody")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("          Escrow custodian state machine")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Write the configuration and the genesis file")
	fmt.Println("apply     Execute serialized transactions as a new block")
	fmt.Println("query     Read committed state")
	fmt.Println("validate  Check genesis files without writing the state")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.custody")`)
}

// env is what every command is executed with.
type env struct {
	home    string
	stdin   io.Reader
	stdout  io.Writer
	metrics prometheus.Registerer
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]
	e := env{
		home:    *varHome,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		metrics: prometheus.DefaultRegisterer,
	}

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = initCmd(e, rest)
	case "apply":
		err = applyCmd(e, rest)
	case "query":
		err = queryCmd(e, rest)
	case "validate":
		err = validateCmd(e, rest)
	case "version":
		fmt.Println(custody.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
