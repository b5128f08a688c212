package api

import (
	"context"

	"campusbooking/internal/profile"
)

type ctxKey string

const ctxKeyProfile ctxKey = "profile"

func WithProfile(ctx context.Context, p *profile.Profile) context.Context {
	return context.WithValue(ctx, ctxKeyProfile, p)
}

func ProfileFromContext(ctx context.Context) *profile.Profile {
	v := ctx.Value(ctxKeyProfile)
	if v == nil {
		return nil
	}
	p, _ := v.(*profile.Profile)
	return p
}
