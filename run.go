package ntlango

// run.go provides Schema, for printing the GraphQL schema without a database

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/graph"
)

// Schema returns the GraphQL schema (SDL) of the API.  The schema is
// generated from the resolver types then parsed and validated, so an error
// means the types are inconsistent.
func Schema() (string, error) {
	r := graph.New(graph.Stores{}, auth.NewIssuer(auth.StaticKey(nil), 0))
	sdl, err := r.Schema()
	if err != nil {
		return "", fmt.Errorf("generating schema: %w", err)
	}
	if _, gerr := gqlparser.LoadSchema(&ast.Source{Name: "ntlango", Input: sdl}); gerr != nil {
		return "", fmt.Errorf("validating schema: %w", gerr)
	}
	return sdl, nil
}

// MustSchema is like Schema but panics on error
func MustSchema() string {
	sdl, err := Schema()
	if err != nil {
		panic(err)
	}
	return sdl
}
