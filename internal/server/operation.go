// ABOUTME: Detects whether a GraphQL request runs a mutation.
// ABOUTME: Used to keep GET /graphql read-only.

package server

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	gql "github.com/harper/todo/internal/graphql"
)

// isMutation reports whether the operation req selects is a mutation.
// Unparseable documents return false and fail later during execution.
func isMutation(req gql.Request) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if req.OperationName != "" && (op.Name == nil || op.Name.Value != req.OperationName) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
