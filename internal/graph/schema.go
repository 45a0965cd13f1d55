// Package graph binds the GraphQL schema to the services and enforces the
// per-operation authorization rules.
package graph

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 10

type Options struct {
	DisableIntrospection bool
}

func NewSchema(resolver *Resolver, logger *slog.Logger, opts Options) (*graphql.Schema, error) {
	schemaOpts := []graphql.SchemaOpt{
		graphql.Logger(panicLogger{logger: logger}),
		graphql.MaxDepth(maxQueryDepth),
	}
	if opts.DisableIntrospection {
		schemaOpts = append(schemaOpts, graphql.DisableIntrospection())
	}

	schema, err := graphql.ParseSchema(schemaSDL, resolver, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	return schema, nil
}

func NewHandler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}

// panicLogger routes resolver panics into slog; the engine turns them into
// an error entry on the response.
type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "graphql resolver panic", slog.Any("panic", value))
}
