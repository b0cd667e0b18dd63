// Package rpc exposes the pool to farmers over the HTTP pool protocol and to
// operators over gRPC.
package rpc
