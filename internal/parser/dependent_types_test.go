package parser

import (
	"testing"
)

func TestDependentTypeChecker(t *testing.T) {
	checker := NewDependentTypeChecker()

	if checker == nil {
		t.Error("Expected non-nil checker")
	}
}

func TestRefinementType(t *testing.T) {
	// Test basic refinement type creation.
	refinement := &RefinementType{}

	if refinement == nil {
		t.Error("Expected non-nil refinement type")
	}
}

func TestSizedArrayType(t *testing.T) {
	// Test sized array type creation.
	arrayType := &SizedArrayType{}

	if arrayType == nil {
		t.Error("Expected non-nil array type")
	}
}

func TestDependentFunctionType(t *testing.T) {
	// Test dependent function type creation.
	funcType := &DependentFunctionType{}

	if funcType == nil {
		t.Error("Expected non-nil function type")
	}
}
