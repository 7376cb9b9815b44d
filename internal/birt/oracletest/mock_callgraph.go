// Code generated by internal/birt/oracletest/gen (go.uber.org/mock style).
// Source: github.com/orizon-lang/orizon/internal/birt/oracle (CallGraph)

package oracletest

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	ir "github.com/orizon-lang/orizon/internal/birt/ir"
	collections "github.com/orizon-lang/orizon/internal/stdlib/collections"
)

// MockCallGraph is a test double for oracle.CallGraph, shaped the way
// go.uber.org/mock would generate it: every expectation is scripted
// through EXPECT() and recorded on the underlying *gomock.Controller,
// so tests can assert exactly which of the four query families the
// pass touches for a given function or instruction.
type MockCallGraph struct {
	ctrl     *gomock.Controller
	recorder *MockCallGraphMockRecorder
}

// MockCallGraphMockRecorder records EXPECT() calls for MockCallGraph.
type MockCallGraphMockRecorder struct {
	mock *MockCallGraph
}

// NewMockCallGraph returns a new mock bound to ctrl.
func NewMockCallGraph(ctrl *gomock.Controller) *MockCallGraph {
	m := &MockCallGraph{ctrl: ctrl}
	m.recorder = &MockCallGraphMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCallGraph) EXPECT() *MockCallGraphMockRecorder {
	return m.recorder
}

func (m *MockCallGraph) HasUnknownCallsites(f *ir.Function) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasUnknownCallsites", f)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockCallGraphMockRecorder) HasUnknownCallsites(f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasUnknownCallsites",
		reflect.TypeOf((*MockCallGraph)(nil).HasUnknownCallsites), f)
}

func (m *MockCallGraph) KnownCallsites(f *ir.Function) *collections.Set[*ir.CallLikeInst] {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "KnownCallsites", f)
	ret0, _ := ret[0].(*collections.Set[*ir.CallLikeInst])
	return ret0
}

func (mr *MockCallGraphMockRecorder) KnownCallsites(f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "KnownCallsites",
		reflect.TypeOf((*MockCallGraph)(nil).KnownCallsites), f)
}

func (m *MockCallGraph) HasUnknownCallees(ci *ir.CallLikeInst) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasUnknownCallees", ci)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockCallGraphMockRecorder) HasUnknownCallees(ci interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasUnknownCallees",
		reflect.TypeOf((*MockCallGraph)(nil).HasUnknownCallees), ci)
}

func (m *MockCallGraph) KnownCallees(ci *ir.CallLikeInst) *collections.Set[*ir.Function] {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "KnownCallees", ci)
	ret0, _ := ret[0].(*collections.Set[*ir.Function])
	return ret0
}

func (mr *MockCallGraphMockRecorder) KnownCallees(ci interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "KnownCallees",
		reflect.TypeOf((*MockCallGraph)(nil).KnownCallees), ci)
}

func (m *MockCallGraph) HasUnknownReceivers(li *ir.LoadPropertyInst) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasUnknownReceivers", li)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockCallGraphMockRecorder) HasUnknownReceivers(li interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasUnknownReceivers",
		reflect.TypeOf((*MockCallGraph)(nil).HasUnknownReceivers), li)
}

func (m *MockCallGraph) KnownReceivers(li *ir.LoadPropertyInst) *collections.Set[ir.Receiver] {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "KnownReceivers", li)
	ret0, _ := ret[0].(*collections.Set[ir.Receiver])
	return ret0
}

func (mr *MockCallGraphMockRecorder) KnownReceivers(li interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "KnownReceivers",
		reflect.TypeOf((*MockCallGraph)(nil).KnownReceivers), li)
}

func (m *MockCallGraph) HasUnknownStores(r ir.Receiver) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasUnknownStores", r)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockCallGraphMockRecorder) HasUnknownStores(r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasUnknownStores",
		reflect.TypeOf((*MockCallGraph)(nil).HasUnknownStores), r)
}

func (m *MockCallGraph) KnownStores(r ir.Receiver) *collections.Set[ir.Instruction] {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "KnownStores", r)
	ret0, _ := ret[0].(*collections.Set[ir.Instruction])
	return ret0
}

func (mr *MockCallGraphMockRecorder) KnownStores(r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "KnownStores",
		reflect.TypeOf((*MockCallGraph)(nil).KnownStores), r)
}
