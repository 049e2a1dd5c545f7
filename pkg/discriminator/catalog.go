package discriminator

// Entity is a user instance produced by a factory.
type Entity interface {
	UserClass() Class
}

// EntityFactory constructs new user instances of one class.
type EntityFactory interface {
	Create() Entity
}

// FactoryFunc adapts a function to EntityFactory.
type FactoryFunc func() Entity

func (f FactoryFunc) Create() Entity {
	return f()
}

// FormField describes one input of a form type.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required"`

	// Groups are the validation groups in which Required applies.
	// Empty means the Default group.
	Groups []string `json:"groups,omitempty"`
}

// FormType is a form definition used for one user type and context.
type FormType interface {
	Fields() []FormField
}

// FormTypeFunc constructs a new FormType.
type FormTypeFunc func() FormType

// Catalog maps the factory and form type identifiers used in configuration
// to constructors. It is filled at startup and only read afterwards.
type Catalog struct {
	factories map[string]EntityFactory
	formTypes map[string]FormTypeFunc
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]EntityFactory),
		formTypes: make(map[string]FormTypeFunc),
	}
}

// RegisterFactory registers factory under name, replacing any previous one.
func (c *Catalog) RegisterFactory(name string, factory EntityFactory) *Catalog {
	c.factories[name] = factory
	return c
}

// RegisterFormType registers a form type constructor under name.
func (c *Catalog) RegisterFormType(name string, fn FormTypeFunc) *Catalog {
	c.formTypes[name] = fn
	return c
}

// Factory returns the factory registered under name.
func (c *Catalog) Factory(name string) (EntityFactory, bool) {
	if c == nil {
		return nil, false
	}
	f, ok := c.factories[name]
	return f, ok
}

// NewFormType constructs the form type registered under name.
func (c *Catalog) NewFormType(name string) (FormType, bool) {
	if c == nil {
		return nil, false
	}
	fn, ok := c.formTypes[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

func (c *Catalog) HasFactory(name string) bool {
	_, ok := c.Factory(name)
	return ok
}

func (c *Catalog) HasFormType(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.formTypes[name]
	return ok
}
