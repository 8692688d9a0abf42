package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a GraphQL schema from the provided RootQuery. The API
// is query-only; mutations go through the REST endpoints.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
