package graph

import (
	"context"

	"gqlblog/internal/auth"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) Items(ctx context.Context) ([]*itemResolver, error) {
	items, err := r.svc.Item.List(ctx)
	if err != nil {
		return nil, wireError(err)
	}
	return itemResolvers(items), nil
}

func (r *Resolver) Item(ctx context.Context, args struct{ ID graphql.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	item, err := r.svc.Item.Get(ctx, id)
	if err != nil || item == nil {
		return nil, wireError(err)
	}
	return &itemResolver{i: item}, nil
}

func (r *Resolver) Blogs(ctx context.Context) ([]*blogResolver, error) {
	blogs, err := r.svc.Blog.List(ctx)
	if err != nil {
		return nil, wireError(err)
	}
	return r.blogResolvers(blogs), nil
}

func (r *Resolver) BlogsUser(ctx context.Context) ([]*blogResolver, error) {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	blogs, err := r.svc.Blog.ListByAuthor(ctx, identity.UserID)
	if err != nil {
		return nil, wireError(err)
	}
	return r.blogResolvers(blogs), nil
}

func (r *Resolver) BlogID(ctx context.Context, args struct{ ID graphql.ID }) (*blogResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	blog, err := r.svc.Blog.Get(ctx, id)
	if err != nil || blog == nil {
		return nil, wireError(err)
	}
	return &blogResolver{b: blog, baseURL: r.baseURL}, nil
}

// CurrentUser answers null rather than an error when no identity is present.
func (r *Resolver) CurrentUser(ctx context.Context) (*userResolver, error) {
	user, err := r.svc.Auth.CurrentUser(ctx, auth.IdentityFromContext(ctx))
	if err != nil || user == nil {
		return nil, wireError(err)
	}
	return &userResolver{u: user}, nil
}
