package dsl

import (
	"dslcore/pkg/cell"
)

// serviceSpec is the demo builder used across the facade tests. It exercises
// one declaration of every kind against a shared lock owner.
type serviceSpec struct {
	Lockable

	Name     *cell.Value[*string, string]
	Port     *cell.Value[int, int]
	Replicas *cell.Value[int, int]
	Note     *cell.Value[*string, *string]
	Tags     *cell.List[string, string]
	Hosts    *cell.List[string, string]
}

func newServiceSpec() *serviceSpec {
	s := &serviceSpec{}
	s.Name = Required[string](&s.Lockable, "name", nil)
	s.Port = Conditional(&s.Lockable, "port", 0,
		cell.Identity[int](), cell.Identity[int](),
		nil,
		func(port int) bool { return port%2 == 0 },
		nil,
	)
	s.Replicas = Prepared(&s.Lockable, 1, cell.ValueHooks[int, int]{})
	s.Note = Optional[string](&s.Lockable, nil, cell.ValueHooks[*string, *string]{})
	s.Tags = List(&s.Lockable, nil, cell.ListHooks[string, string]{
		BeforeAccess: func(l *cell.List[string, string]) error {
			return l.Append("audited")
		},
	})
	s.Hosts = ReplaceableList(&s.Lockable, []string{"localhost"}, cell.ListHooks[string, string]{})
	return s
}
