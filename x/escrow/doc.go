/*
Package escrow implements an escrow custodian that holds native and token
funds on behalf of a single operator.

An escrow record is created once with an operator and, when initialized from
within a program, the identity of that program as its scope. The record
owns a native account funded like any other account. Only the operator,
acting through the scoped program, can distribute native funds from the
record account or move tokens from accounts whose authority was delegated to
the operator. Records are never updated nor deleted.
*/
package escrow
