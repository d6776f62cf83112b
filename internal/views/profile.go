package views

import (
	"context"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// ProfileModel is the signed-in user's profile.
type ProfileModel struct {
	Claims domain.Claims
	User   *domain.User
	Banner string
}

// Profile combines the decoded claims with the user record, when the
// credential names a subject.
type Profile struct {
	app    *AppContext
	viewer Viewer
}

func NewProfile(app *AppContext, viewer Viewer) *Profile {
	return &Profile{app: app, viewer: viewer}
}

func (c *Profile) Load(ctx context.Context) (*ProfileModel, error) {
	model := &ProfileModel{Claims: c.viewer.Claims}
	if c.viewer.Claims.SubjectID == "" {
		return model, nil
	}
	life := NewLifetime(ctx)
	user, err := Keep(life, func(ctx context.Context) (domain.User, error) {
		return c.viewer.API.Users.Get(ctx, c.viewer.Claims.SubjectID)
	})
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	if err != nil {
		model.Banner = banner
		return model, nil
	}
	model.User = &user
	return model, nil
}
