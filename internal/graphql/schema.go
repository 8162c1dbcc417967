// ABOUTME: GraphQL schema binding the todo service to named operations.
// ABOUTME: Mirrors the Todo type, two queries, and three mutations.

package gql

import (
	"context"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
)

// TypeDefs is the SDL equivalent of the schema built by NewSchema.
const TypeDefs = `
type Todo {
  id: Int!
  title: String!
  completed: Boolean!
  createdAt: String!
  updatedAt: String!
}

type Query {
  todos: [Todo!]!
  todo(id: Int!): Todo
}

type Mutation {
  createTodo(title: String!): Todo!
  updateTodo(id: Int!, title: String, completed: Boolean): Todo!
  deleteTodo(id: Int!): Boolean!
}
`

// TimeFormat is used for createdAt and updatedAt.
const TimeFormat = time.RFC3339Nano

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type resolver struct {
	svc *service.Service
}

func NewSchema(svc *service.Service) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	todoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Todo",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(source(p).ID), nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return source(p).Title, nil
				},
			},
			"completed": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return source(p).Completed, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return source(p).CreatedAt.UTC().Format(TimeFormat), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return source(p).UpdatedAt.UTC().Format(TimeFormat), nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"todos": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Resolve: r.todos,
			},
			"todo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.todo,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"title": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.createTodo,
			},
			"updateTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"title":     &graphql.ArgumentConfig{Type: graphql.String},
					"completed": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: r.updateTodo,
			},
			"deleteTodo": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.deleteTodo,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Execute runs one request against schema.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func source(p graphql.ResolveParams) *models.Todo {
	todo, _ := p.Source.(*models.Todo)
	if todo == nil {
		return &models.Todo{}
	}
	return todo
}

func idArg(p graphql.ResolveParams) (int64, error) {
	id, ok := p.Args["id"].(int)
	if !ok {
		return 0, fmt.Errorf("invalid id argument %v", p.Args["id"])
	}
	return int64(id), nil
}

func (r *resolver) todos(p graphql.ResolveParams) (interface{}, error) {
	todos, err := r.svc.ListTodos(p.Context)
	if err != nil {
		return nil, mapError(err)
	}
	return todos, nil
}

func (r *resolver) todo(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	todo, err := r.svc.GetTodo(p.Context, id)
	if err != nil {
		return nil, mapError(err)
	}
	if todo == nil {
		return nil, nil
	}
	return todo, nil
}

func (r *resolver) createTodo(p graphql.ResolveParams) (interface{}, error) {
	title, _ := p.Args["title"].(string)
	todo, err := r.svc.CreateTodo(p.Context, title)
	if err != nil {
		return nil, mapError(err)
	}
	return todo, nil
}

func (r *resolver) updateTodo(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}

	var patch models.TodoPatch
	if title, ok := p.Args["title"].(string); ok {
		patch.Title = &title
	}
	if completed, ok := p.Args["completed"].(bool); ok {
		patch.Completed = &completed
	}

	todo, err := r.svc.UpdateTodo(p.Context, id, patch)
	if err != nil {
		return nil, mapError(err)
	}
	return todo, nil
}

func (r *resolver) deleteTodo(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	ok, err := r.svc.DeleteTodo(p.Context, id)
	if err != nil {
		return nil, mapError(err)
	}
	return ok, nil
}
