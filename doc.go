/*
Package custody defines all common interfaces to weave together the
escrow custodian: handlers, decorators, stores, transactions and the
identities (conditions and addresses) that authorize state changes.

Extensions live in the x/ directory. Each one registers its handlers in a
Registry and implements its business logic in a controller that other
extensions may call, the same way the escrow extension calls the cash and
token ledgers.
*/
package custody
