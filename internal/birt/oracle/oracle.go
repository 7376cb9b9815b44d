// Package oracle defines the call-graph oracle contract the
// type-inference pass queries, plus a conservative, dependency-free
// implementation usable in tests and the CLI demonstrator. The oracle
// is explicitly out of the pass's scope: real deployments are expected
// to swap in a precise whole-program call-graph analysis behind the
// same four query families.
package oracle

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/stdlib/collections"
)

// CallGraph answers the four bounded query families the pass needs: who
// calls a function, who a call-site may call, who may receive a
// property load, and who may have stored into a given receiver.
type CallGraph interface {
	HasUnknownCallsites(f *ir.Function) bool
	KnownCallsites(f *ir.Function) *collections.Set[*ir.CallLikeInst]

	HasUnknownCallees(ci *ir.CallLikeInst) bool
	KnownCallees(ci *ir.CallLikeInst) *collections.Set[*ir.Function]

	HasUnknownReceivers(li *ir.LoadPropertyInst) bool
	KnownReceivers(li *ir.LoadPropertyInst) *collections.Set[ir.Receiver]

	HasUnknownStores(r ir.Receiver) bool
	KnownStores(r ir.Receiver) *collections.Set[ir.Instruction]
}

// IsOwnProperty reports whether some StoreOwnProperty/StoreNewOwnProperty
// instruction writes prop directly onto object receiver r. Carved out
// of the LoadProperty rule's inline type-switch since the array/object
// asymmetry (array index is value-level, object property is key-level)
// belongs to the oracle, not the transfer function.
func IsOwnProperty(r *ir.AllocObjectInst, prop ir.Value) bool {
	for _, u := range r.Users() {
		store, ok := u.(*ir.BaseStorePropertyInst)
		if !ok {
			continue
		}
		switch store.Kind() {
		case ir.KindStoreOwnProperty, ir.KindStoreNewOwnProperty:
		default:
			continue
		}
		if store.Object() == ir.Value(r) && store.Property() == prop {
			return true
		}
	}
	return false
}

// StoreFeedsReceiver reports whether store should be considered a
// candidate value source for a LoadProperty resolving prop against r,
// once r has already passed the IsOwnProperty bail-out gate: for an
// object receiver, the stored key must match prop; for an array
// receiver, every store onto it qualifies regardless of index.
func StoreFeedsReceiver(r ir.Receiver, store *ir.BaseStorePropertyInst, prop ir.Value) bool {
	if store.Object() != ir.Value(r) {
		return false
	}
	if r.ReceiverKind() == ir.ReceiverArray {
		return true
	}
	return store.Property() == prop
}
