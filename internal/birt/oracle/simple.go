package oracle

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/stdlib/collections"
)

// Simple is a conservative, linear-scan call-graph oracle. It resolves
// a call-site's callees only when the callee operand is directly the
// result of a CreateFunctionInst, and it considers a function's
// call-sites "known" only when every use of its CreateFunctionInst is
// as a direct callee (i.e. the closure value never escapes into a
// variable, an argument, a return, or anywhere else this oracle can't
// follow). This purposely under-approximates: the pass treats the real
// call-graph analysis as an external collaborator, so Simple exists
// only to exercise the pass in tests and the CLI demonstrator.
type Simple struct {
	calleesOf  map[*ir.CallLikeInst]*collections.Set[*ir.Function]
	callsitesOf map[*ir.Function]*collections.Set[*ir.CallLikeInst]
	addressTaken map[*ir.Function]bool
	hasCreator   map[*ir.Function]bool

	receiversOf map[*ir.LoadPropertyInst]*collections.Set[ir.Receiver]
}

// Build scans every function of m and constructs a Simple oracle for
// the whole module. The module driver is expected to rebuild or reuse
// this per function; Simple is cheap enough to rebuild for the module
// as a whole.
func Build(m *ir.Module) *Simple {
	s := &Simple{
		calleesOf:    map[*ir.CallLikeInst]*collections.Set[*ir.Function]{},
		callsitesOf:  map[*ir.Function]*collections.Set[*ir.CallLikeInst]{},
		addressTaken: map[*ir.Function]bool{},
		hasCreator:   map[*ir.Function]bool{},
		receiversOf:  map[*ir.LoadPropertyInst]*collections.Set[ir.Receiver]{},
	}

	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, inst := range b.Instructions {
				s.visit(inst)
			}
		}
	}
	return s
}

func (s *Simple) visit(inst ir.Instruction) {
	switch v := inst.(type) {
	case *ir.CreateFunctionInst:
		target := v.Target()
		s.hasCreator[target] = true
		for _, u := range v.Users() {
			if call, ok := u.(*ir.CallLikeInst); ok && call.Callee() == ir.Value(v) {
				continue
			}
			s.addressTaken[target] = true
		}
	case *ir.CallLikeInst:
		if cf, ok := v.Callee().(*ir.CreateFunctionInst); ok {
			target := cf.Target()
			s.recordCallee(v, target)
		}
	case *ir.LoadPropertyInst:
		if recv, ok := v.Object().(ir.Receiver); ok {
			set := collections.NewSetFrom(recv)
			s.receiversOf[v] = set
		}
	}
}

func (s *Simple) recordCallee(ci *ir.CallLikeInst, target *ir.Function) {
	set, ok := s.calleesOf[ci]
	if !ok {
		set = collections.NewSet[*ir.Function](1)
		s.calleesOf[ci] = set
	}
	set.Add(target)

	sites, ok := s.callsitesOf[target]
	if !ok {
		sites = collections.NewSet[*ir.CallLikeInst](1)
		s.callsitesOf[target] = sites
	}
	sites.Add(ci)
}

func (s *Simple) HasUnknownCallsites(f *ir.Function) bool {
	if !s.hasCreator[f] {
		// Nothing in the module ever explicitly created this function
		// value (e.g. it's the module entry point): conservatively
		// assume it may be invoked from anywhere.
		return true
	}
	return s.addressTaken[f]
}

func (s *Simple) KnownCallsites(f *ir.Function) *collections.Set[*ir.CallLikeInst] {
	if sites, ok := s.callsitesOf[f]; ok {
		return sites
	}
	return collections.NewSet[*ir.CallLikeInst](0)
}

func (s *Simple) HasUnknownCallees(ci *ir.CallLikeInst) bool {
	_, ok := s.calleesOf[ci]
	return !ok
}

func (s *Simple) KnownCallees(ci *ir.CallLikeInst) *collections.Set[*ir.Function] {
	if set, ok := s.calleesOf[ci]; ok {
		return set
	}
	return collections.NewSet[*ir.Function](0)
}

func (s *Simple) HasUnknownReceivers(li *ir.LoadPropertyInst) bool {
	_, ok := s.receiversOf[li]
	return !ok
}

func (s *Simple) KnownReceivers(li *ir.LoadPropertyInst) *collections.Set[ir.Receiver] {
	if set, ok := s.receiversOf[li]; ok {
		return set
	}
	return collections.NewSet[ir.Receiver](0)
}

// HasUnknownStores is always false: Simple discovers every store to a
// receiver by walking its user list directly, which is exhaustive for
// a receiver allocated and used within the module it was built from.
func (s *Simple) HasUnknownStores(r ir.Receiver) bool { return false }

func (s *Simple) KnownStores(r ir.Receiver) *collections.Set[ir.Instruction] {
	set := collections.NewSet[ir.Instruction](0)
	for _, u := range r.Users() {
		if inst, ok := u.(ir.Instruction); ok {
			switch inst.Kind() {
			case ir.KindStoreOwnProperty, ir.KindStoreNewOwnProperty,
				ir.KindStorePropertyLoose, ir.KindStorePropertyStrict:
				set.Add(inst)
			}
		}
	}
	return set
}

var _ CallGraph = (*Simple)(nil)
