package weavetest

import (
	custody "github.com/iov-one/custody"
)

// Tx is a transaction mock carrying a single message, for example an
// escrow/distribute_native message handed directly to a handler under test.
// It carries no signatures, so authentication is provided by an Auth mock.
type Tx struct {
	Msg custody.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message. A mock transaction has no envelope
// of its own.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("mock transaction cannot be decoded")
}

// Msg is a message mock routed by RoutePath. Use it when the handler or
// decorator under test does not inspect the message content.
type Msg struct {
	RoutePath string
	// Serialized is returned by Marshal and set by Unmarshal.
	Serialized []byte
	// Err if set is returned by Validate, Marshal and Unmarshal.
	Err error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
