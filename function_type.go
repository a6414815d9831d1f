package statefun

import "fmt"

// FunctionType is a reference to a stateful function, consisting of a
// namespace and a name. It is part of a function's Address and serves as
// the key of the FunctionRegistry.
type FunctionType struct {
	Namespace string
	Name      string
}

// NewFunctionType creates a FunctionType from the given namespace and name.
func NewFunctionType(namespace, name string) FunctionType {
	return FunctionType{Namespace: namespace, Name: name}
}

func (t FunctionType) String() string {
	return fmt.Sprintf("%s/%s", t.Namespace, t.Name)
}
