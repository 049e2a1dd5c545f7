// Package user provides the user types served by the multi-user service: a
// self-registering Customer and an internally managed Staff account.
//
// Each type has a factory and one form type per context, registered in
// DefaultCatalog under the identifiers used in the user type configuration
// (see configs/usertypes.yaml).
package user
