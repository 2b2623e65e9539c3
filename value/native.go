package value

import "fmt"

// Native is a host-provided callable (§6 "Built-in host functions"):
// print, println, timestamp, and the rest of the initial environment's
// built-ins. It satisfies Callable the same way a user closure does,
// so call sites never need to distinguish the two.
type Native struct {
	NameStr string
	Arity   int
	Fn      func(args []Value) (Value, error)
}

func (*Native) Kind() Kind         { return KFn }
func (*Native) CallableKind() Kind { return KFn }

func (n *Native) checkArity(got int) error {
	if got != n.Arity {
		return fmt.Errorf("%s expects %d argument(s), got %d", n.NameStr, n.Arity, got)
	}

	return nil
}

// Call invokes the native with an arity check; built-ins don't use
// the declared-parameter-type machinery user functions do because
// their Go signatures already enforce argument shape.
func (n *Native) Call(args []Value) (Value, error) {
	if err := n.checkArity(len(args)); err != nil {
		return nil, err
	}

	return n.Fn(args)
}
