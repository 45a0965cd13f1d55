package graph

import (
	"context"
	"strconv"

	"gqlblog/internal/apperror"
	"gqlblog/internal/auth"
	"gqlblog/internal/service"

	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	svc     *service.Service
	baseURL string
}

func NewResolver(svc *service.Service, publicBaseURL string) *Resolver {
	return &Resolver{svc: svc, baseURL: publicBaseURL}
}

// requireIdentity is the gate every write operation passes before touching
// storage.
func requireIdentity(ctx context.Context) (*auth.Identity, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperror.Unauthenticated()
	}
	return identity, nil
}

func parseID(id graphql.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.Validation("invalid id", err)
	}
	return n, nil
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

// wireError hands the engine an *apperror.Error so it can attach
// extensions.code. A nil error must stay a nil interface.
func wireError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.From(err)
}
