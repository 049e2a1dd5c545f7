// Package profile edits stored users with the profile form of their type.
//
// Loading a profile selects the user's type on the request's discriminator
// and persists it to the session, so the rest of the request (and later
// requests in the same session) resolve to that type:
//
//	service := profile.NewProfileService(repo)
//	u, view, err := service.Get(ctx, d, userID)
//
// Updates are bound into a fresh copy of the stored user and only written
// back when validation passes.
package profile
