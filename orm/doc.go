/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Keys are either given by the caller or taken from a Sequence.
* Every bucket can be registered as a query handler.
*/
package orm
