package graph

import (
	"strings"
	"time"

	"gqlblog/internal/models"
	"gqlblog/internal/service"

	graphql "github.com/graph-gophers/graphql-go"
)

type userResolver struct {
	u *models.User
}

func (r *userResolver) ID() graphql.ID { return formatID(r.u.ID) }
func (r *userResolver) Email() string { return r.u.Email }
func (r *userResolver) Name() *string { return &r.u.Name }
func (r *userResolver) Surname() *string { return &r.u.Surname }

type authPayloadResolver struct {
	p *service.AuthPayload
}

func (r *authPayloadResolver) Token() string { return r.p.Token }

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{u: r.p.User}
}

type itemResolver struct {
	i *models.Item
}

func (r *itemResolver) ID() graphql.ID { return formatID(r.i.ID) }
func (r *itemResolver) Name() string { return r.i.Name }
func (r *itemResolver) Description() *string { return r.i.Description }

func itemResolvers(items []*models.Item) []*itemResolver {
	out := make([]*itemResolver, 0, len(items))
	for _, item := range items {
		out = append(out, &itemResolver{i: item})
	}
	return out
}

type blogResolver struct {
	b       *models.Blog
	baseURL string
}

func (r *blogResolver) ID() graphql.ID { return formatID(r.b.ID) }
func (r *blogResolver) Name() string { return r.b.Name }
func (r *blogResolver) Desc() string { return r.b.Desc }
func (r *blogResolver) Imagepath() *string { return r.b.ImagePath }

func (r *blogResolver) Createdby() *graphql.ID {
	if r.b.CreatedBy == 0 {
		return nil
	}
	id := formatID(r.b.CreatedBy)
	return &id
}

// Createdon is always rendered as RFC 3339 in UTC.
func (r *blogResolver) Createdon() *string {
	if r.b.CreatedOn == nil {
		return nil
	}
	s := r.b.CreatedOn.UTC().Format(time.RFC3339)
	return &s
}

func (r *blogResolver) ImageURL() *string {
	if r.b.ImagePath == nil || *r.b.ImagePath == "" {
		return nil
	}
	url := imageURL(r.baseURL, *r.b.ImagePath)
	return &url
}

func imageURL(baseURL, imagePath string) string {
	if !strings.HasPrefix(imagePath, "/") {
		imagePath = "/" + imagePath
	}
	return strings.TrimRight(baseURL, "/") + imagePath
}

func (r *Resolver) blogResolvers(blogs []*models.Blog) []*blogResolver {
	out := make([]*blogResolver, 0, len(blogs))
	for _, blog := range blogs {
		out = append(out, &blogResolver{b: blog, baseURL: r.baseURL})
	}
	return out
}
