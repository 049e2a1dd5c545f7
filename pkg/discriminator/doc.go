// Package discriminator resolves which user type is active for a session when
// several independently configured user types share one registration and
// profile pipeline.
//
// A Table is built once from configuration and is immutable afterwards. Each
// request binds the table to its session with Table.Bind, producing a
// Discriminator that tracks the selected class:
//
//	cfg, err := discriminator.LoadFile("configs/usertypes.yaml")
//	table, err := discriminator.NewTable(cfg)
//	...
//	d := table.Bind(sess, catalog)
//	if err := d.SetClass("users.Staff", true); err != nil {
//		// UNKNOWN_USER_CLASS
//	}
//	name, _ := d.FormName(discriminator.Registration)
//
// The selected class comes from, in order: SetClass, the value stored in the
// session under SessionName, and finally the first declared user type. The
// session is read at most once per Discriminator.
//
// Entities and form types are never built by name through reflection. The
// host application registers constructors in a Catalog keyed by the
// identifiers used in configuration.
package discriminator
