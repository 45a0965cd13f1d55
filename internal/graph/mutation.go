package graph

import (
	"context"

	"gqlblog/internal/models"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) Register(ctx context.Context, args struct {
	Email    string
	Password string
	Name     *string
	Surname  *string
}) (*authPayloadResolver, error) {
	req := models.CreateUserRequest{
		Email:    args.Email,
		Password: args.Password,
		Name:     valueOrEmpty(args.Name),
		Surname:  valueOrEmpty(args.Surname),
	}

	payload, err := r.svc.Auth.Register(ctx, req)
	if err != nil {
		return nil, wireError(err)
	}
	return &authPayloadResolver{p: payload}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	payload, err := r.svc.Auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, wireError(err)
	}
	return &authPayloadResolver{p: payload}, nil
}

func (r *Resolver) CreateItem(ctx context.Context, args struct {
	Name        string
	Description *string
}) (*itemResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	item, err := r.svc.Item.Create(ctx, models.ItemInput{Name: args.Name, Description: args.Description})
	if err != nil {
		return nil, wireError(err)
	}
	return &itemResolver{i: item}, nil
}

func (r *Resolver) UpdateItem(ctx context.Context, args struct {
	ID          graphql.ID
	Name        *string
	Description *string
}) (*itemResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	item, err := r.svc.Item.Update(ctx, id, models.ItemInput{
		Name:        valueOrEmpty(args.Name),
		Description: args.Description,
	})
	if err != nil || item == nil {
		return nil, wireError(err)
	}
	return &itemResolver{i: item}, nil
}

func (r *Resolver) DeleteItem(ctx context.Context, args struct{ ID graphql.ID }) (*bool, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	deleted, err := r.svc.Item.Delete(ctx, id)
	if err != nil {
		return nil, wireError(err)
	}
	return &deleted, nil
}

func (r *Resolver) CreateBlog(ctx context.Context, args struct {
	Name      string
	Desc      string
	Imagepath *string
}) (*blogResolver, error) {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	blog, err := r.svc.Blog.Create(ctx, identity.UserID, models.BlogInput{
		Name:      args.Name,
		Desc:      args.Desc,
		ImagePath: args.Imagepath,
	})
	if err != nil {
		return nil, wireError(err)
	}
	return &blogResolver{b: blog, baseURL: r.baseURL}, nil
}

func (r *Resolver) UpdateBlog(ctx context.Context, args struct {
	ID        graphql.ID
	Name      string
	Desc      string
	Imagepath *string
}) (*blogResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	blog, err := r.svc.Blog.Update(ctx, id, models.BlogInput{
		Name:      args.Name,
		Desc:      args.Desc,
		ImagePath: args.Imagepath,
	})
	if err != nil {
		return nil, wireError(err)
	}
	return &blogResolver{b: blog, baseURL: r.baseURL}, nil
}

func (r *Resolver) DeleteBlog(ctx context.Context, args struct{ ID graphql.ID }) (*bool, error) {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	deleted, err := r.svc.Blog.Delete(ctx, identity.UserID, id)
	if err != nil {
		return nil, wireError(err)
	}
	return &deleted, nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
