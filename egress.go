package statefun

import "fmt"

// EgressIdentifier is a reference to an external sink, consisting of a
// namespace and a name. It is used when sending messages to an egress as
// part of a function's Effects.
type EgressIdentifier struct {
	Namespace string
	Name      string
}

// NewEgressIdentifier creates an EgressIdentifier from the given namespace
// and name.
func NewEgressIdentifier(namespace, name string) EgressIdentifier {
	return EgressIdentifier{Namespace: namespace, Name: name}
}

func (e EgressIdentifier) String() string {
	return fmt.Sprintf("%s/%s", e.Namespace, e.Name)
}
