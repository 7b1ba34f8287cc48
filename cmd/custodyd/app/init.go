package app

import (
	"encoding/json"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/token"
)

// InitialBalance is the native balance given to the genesis owner.
const InitialBalance = 123456789

// GenInitOptions will produce the app state for a development chain with one
// rich account. The owner also controls the native configuration.
func GenInitOptions(owner custody.Address) (json.RawMessage, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{
				Metadata:        &custody.Metadata{Schema: 1},
				Owner:           owner,
				AccountOverhead: 128,
				BalancePerByte:  1,
			},
		},
		"cash": []cash.GenesisAccount{
			{Address: owner, Balance: InitialBalance},
		},
		"token":  token.Genesis{},
		"escrow": []escrow.GenesisRecord{},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
