/*
Package cash implements the native currency ledger.

Each address owns at most one NativeAccount holding a plain uint64 balance
and the byte size of the data attached to the account. The minimum viable
balance of an account is derived from its size and the "cash" gconf
configuration. Escrow distributions use the Controller to move funds.
*/
package cash
