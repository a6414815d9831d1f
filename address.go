package statefun

import (
	"fmt"

	"github.com/statefun-io/statefun-go/internal"
)

// Address is the unique identity of an individual stateful function
// instance: its FunctionType plus an opaque id, never interpreted by the
// worker.
type Address struct {
	Type FunctionType
	Id   string
}

// NewAddress creates an Address from the given FunctionType and id.
func NewAddress(functionType FunctionType, id string) Address {
	return Address{Type: functionType, Id: id}
}

func (a Address) String() string {
	return fmt.Sprintf("%s/%s", a.Type, a.Id)
}

func addressFromProto(a *internal.Address) Address {
	if a == nil {
		return Address{}
	}
	return Address{
		Type: FunctionType{Namespace: a.Namespace, Name: a.Type},
		Id:   a.Id,
	}
}

func addressToProto(a Address) *internal.Address {
	return &internal.Address{
		Namespace: a.Type.Namespace,
		Type:      a.Type.Name,
		Id:        a.Id,
	}
}
