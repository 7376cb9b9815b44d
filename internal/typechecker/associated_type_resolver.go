package typechecker

import (
	"github.com/orizon-lang/orizon/internal/parser"
	"github.com/orizon-lang/orizon/internal/resolver"
)

// AssociatedTypeResolver handles resolution of associated types and where clauses.
type AssociatedTypeResolver struct {
	associatedTypes   map[string]*AssociatedTypeBinding
	whereConstraints  map[string][]*WhereClauseConstraint
	constraintCache   map[string]*ConstraintSolution
	activeConstraints []*ActiveConstraint
}

// AssociatedTypeBinding represents a binding for a trait's associated type.
type AssociatedTypeBinding struct {
	BoundType    *parser.HIRType
	DefaultType  *parser.HIRType
	TraitName    string
	TypeName     string
	Constraints  []*parser.HIRType
	IsProjection bool
}

// WhereClauseConstraint represents a where clause constraint.
type WhereClauseConstraint struct {
	TypeParam       string
	TraitBounds     []*parser.HIRType
	AssocTypeBounds []*AssocTypeConstraint
	EqualityBounds  []*EqualityConstraint
	Scope           ConstraintScope
}

// AssocTypeConstraint represents an associated type constraint.
type AssocTypeConstraint struct {
	TypeParam   string
	AssocType   string
	TraitBounds []*parser.HIRType
}

// EqualityConstraint represents an equality constraint.
type EqualityConstraint struct {
	EqualTo   *parser.HIRType
	TypeParam string
	AssocType string
}

// ConstraintScope defines where a constraint applies.
type ConstraintScope string

const (
	ScopeGlobal   ConstraintScope = "global"
	ScopeFunction ConstraintScope = "function"
	ScopeBlock    ConstraintScope = "block"
	ScopeImpl     ConstraintScope = "impl"
)

// ActiveConstraint represents an active constraint during resolution.
type ActiveConstraint struct {
	Constraint *WhereClauseConstraint
	Context    *resolver.ResolutionContext
	Depth      int
}

// ConstraintSolution represents a solved constraint set.
type ConstraintSolution struct {
	TypeBindings  map[string]*parser.HIRType
	AssocBindings map[string]*AssociatedTypeBinding
	TraitImpls    map[string]*parser.HIRImpl
	Satisfied     bool
	Conflicts     []ConstraintConflict
}

// ConstraintConflict represents a conflict between constraints.
type ConstraintConflict struct {
	Constraint1 *WhereClauseConstraint
	Constraint2 *WhereClauseConstraint
	Message     string
	Conflicting bool
}

// NewAssociatedTypeResolver creates a new associated type resolver.
func NewAssociatedTypeResolver() *AssociatedTypeResolver {
	return &AssociatedTypeResolver{
		associatedTypes:   make(map[string]*AssociatedTypeBinding),
		whereConstraints:  make(map[string][]*WhereClauseConstraint),
		constraintCache:   make(map[string]*ConstraintSolution),
		activeConstraints: make([]*ActiveConstraint, 0),
	}
}

// SolveConstraintSet solves a set of where clause constraints.
func (atr *AssociatedTypeResolver) SolveConstraintSet(constraints []*WhereClauseConstraint,
	context *resolver.ResolutionContext) *ConstraintSolution {

	// Create solution.
	solution := &ConstraintSolution{
		TypeBindings:  make(map[string]*parser.HIRType),
		AssocBindings: make(map[string]*AssociatedTypeBinding),
		TraitImpls:    make(map[string]*parser.HIRImpl),
		Satisfied:     true,
		Conflicts:     make([]ConstraintConflict, 0),
	}

	// For simplified implementation, assume all constraints are satisfied.
	for _, constraint := range constraints {
		// Add constraint bindings to solution.
		for _, bound := range constraint.TraitBounds {
			solution.TypeBindings[constraint.TypeParam] = bound
		}
	}

	return solution
}

// ValidateWhereClause validates a where clause constraint.
func (atr *AssociatedTypeResolver) ValidateWhereClause(constraint *WhereClauseConstraint,
	context *resolver.ResolutionContext) []ConstraintConflict {

	var conflicts []ConstraintConflict

	// Check for conflicts with existing constraints.
	scope := string(constraint.Scope)
	existingConstraints := atr.whereConstraints[scope]

	for _, existing := range existingConstraints {
		if existing.TypeParam == constraint.TypeParam {
			// Check for trait bound conflicts.
			conflict := atr.checkTraitBoundConflicts(existing, constraint)
			if conflict != nil {
				conflicts = append(conflicts, *conflict)
			}
		}
	}

	return conflicts
}

// checkTraitBoundConflicts checks for conflicts between trait bounds.
func (atr *AssociatedTypeResolver) checkTraitBoundConflicts(existing, new *WhereClauseConstraint) *ConstraintConflict {
	// Simplified conflict checking.
	return nil
}

// GetWhereClauseConstraints returns where clause constraints for a scope.
func (atr *AssociatedTypeResolver) GetWhereClauseConstraints(scope string) []*WhereClauseConstraint {
	return atr.whereConstraints[scope]
}

// AddWhereClauseConstraint adds a where clause constraint.
func (atr *AssociatedTypeResolver) AddWhereClauseConstraint(constraint *WhereClauseConstraint) {
	scope := string(constraint.Scope)
	atr.whereConstraints[scope] = append(atr.whereConstraints[scope], constraint)
}
