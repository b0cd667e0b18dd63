// Package link resolves which pool account a farmer's launcher id belongs to.
package link

import (
	"context"
	"errors"

	"github.com/farmpool/poold/types"
)

var ErrMalformedAccount = errors.New("malformed account link")

//go:generate mockgen -package mocks -destination mocks/link.go . AccountLinker

type AccountLinker interface {
	// LookupAccount returns the account id linked to launcherID.
	// linked is false when the farmer has no account.
	LookupAccount(ctx context.Context, launcherID types.Bytes32) (puid uint64, linked bool, err error)
}

// Account is the value stored for a linked launcher id.
type Account struct {
	PUID uint64 `json:"puid"`
	// Timestamp is the unix time the link was made.
	Timestamp int64 `json:"timestamp"`
}
