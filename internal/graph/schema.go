package graph

import (
	"net/http"

	"github.com/andrewwphillips/eggql"
)

// Handler builds the schema and returns the GraphQL HTTP handler.  The
// context of each request is passed on to the resolvers so the handlers of
// the auth and loader packages must wrap it.
func (r *Resolver) Handler() (http.Handler, error) {
	g := eggql.New(r.Query(), r.Mutation())
	g.SetEnums(Enums)
	return g.GetHandler()
}

// Schema returns the schema in SDL
func (r *Resolver) Schema() (string, error) {
	g := eggql.New(r.Query(), r.Mutation())
	g.SetEnums(Enums)
	return g.GetSchema()
}
