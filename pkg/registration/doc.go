// Package registration creates users of the selected user type.
//
// The active user type decides which factory builds the user, which form
// type validates the submitted data and which validation groups apply:
//
//	d, _ := discriminator.FromContext(r.Context())
//	u, err := service.Register(r.Context(), d, data)
//
// HTTP handlers live in the api subpackage.
package registration
