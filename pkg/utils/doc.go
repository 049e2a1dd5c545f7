// Package utils provides helpers shared by the HTTP handlers of the
// multi-user service.
//
// # Error responses
//
// RenderError writes a structured error from pkg/errors as JSON, using the
// HTTP status mapped from its code:
//
//	if err := service.Register(ctx, d, data); err != nil {
//		utils.RenderError(w, r, err)
//		return
//	}
//
// Validation details are passed through so clients can show them next to the
// offending field. Internal errors are logged and replaced by a generic message.
//
// # Request bodies
//
// DecodeJSONMap reads a JSON object body into a map suitable for forms.Bind.
//
// # UUIDs
//
//	id := utils.ParseUUID(chi.URLParam(r, "id"))
//	if id == uuid.Nil {
//		// Handle invalid UUID
//	}
package utils
