/*
Package token implements a minimal fungible token ledger.

A Mint defines a token and the authority allowed to create new units of it.
A TokenAccount holds units of a single mint for an owner. Funds can be moved
out of an account only with the consent of the account authority, which is
the owner at creation time and can be handed over with SetAuthority. This is
how an escrow operator gains the right to move tokens on behalf of a sender.
*/
package token
