package custody

import (
	"encoding/json"

	"github.com/iov-one/custody/errors"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "native transfer", or "distribute escrowed funds".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or savepoints, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ProgramAddress returns the identity of a named program instance.
func ProgramAddress(name string) Address {
	return NewCondition("program", "inst", []byte(name)).Address()
}

// WithProgramIdentity returns a handler that executes all messages in the
// context of the given program instance.
func WithProgramIdentity(name string, h Handler) Handler {
	return programHandler{
		program: ProgramAddress(name),
		next:    h,
	}
}

type programHandler struct {
	program Address
	next    Handler
}

var _ Handler = programHandler{}

func (p programHandler) Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error) {
	return p.next.Check(WithProgram(ctx, p.program), store, tx)
}

func (p programHandler) Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error) {
	return p.next.Deliver(WithProgram(ctx, p.program), store, tx)
}
