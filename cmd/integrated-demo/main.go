// Package main demonstrates the integrated effect system capabilities in Orizon.
// This demo shows the integration of side effects and exception tracking
// for comprehensive type-level safety analysis.
package main

import (
	"fmt"
)

// Effect system types (simplified for demo)

type EffectKind int
type EffectLevel int
type ExceptionKind int
type ExceptionSeverity int
type ExceptionSafety int

const (
	EffectPure EffectKind = iota
	EffectIO
	EffectMemoryAlloc
	EffectNetworkRead
	EffectNetworkWrite
	EffectFileRead
	EffectFileWrite
)

const (
	EffectLevelNone EffectLevel = iota
	EffectLevelLow
	EffectLevelMedium
	EffectLevelHigh
	EffectLevelCritical
)

const (
	ExceptionNone ExceptionKind = iota
	ExceptionRuntime
	ExceptionIOError
	ExceptionNullPointer
	ExceptionFileNotFound
	ExceptionPermissionDenied
	ExceptionNetworkTimeout
	ExceptionConnectionFailed
	ExceptionDeadlock
)

const (
	ExceptionSeverityInfo ExceptionSeverity = iota
	ExceptionSeverityWarning
	ExceptionSeverityError
	ExceptionSeverityCritical
	ExceptionSeverityFatal
)

const (
	SafetyNone ExceptionSafety = iota
	SafetyBasic
	SafetyStrong
	SafetyNoThrow
	SafetyNoFail
)

func (ek EffectKind) String() string {
	names := []string{"Pure", "IO", "MemoryAlloc", "NetworkRead", "NetworkWrite", "FileRead", "FileWrite"}
	if int(ek) < len(names) {
		return names[ek]
	}
	return fmt.Sprintf("Unknown(%d)", int(ek))
}

func (el EffectLevel) String() string {
	names := []string{"None", "Low", "Medium", "High", "Critical"}
	if int(el) < len(names) {
		return names[el]
	}
	return fmt.Sprintf("Unknown(%d)", int(el))
}

func (ek ExceptionKind) String() string {
	names := []string{"None", "Runtime", "IOError", "NullPointer", "FileNotFound",
		"PermissionDenied", "NetworkTimeout", "ConnectionFailed", "Deadlock"}
	if int(ek) < len(names) {
		return names[ek]
	}
	return fmt.Sprintf("Unknown(%d)", int(ek))
}

func (es ExceptionSeverity) String() string {
	names := []string{"Info", "Warning", "Error", "Critical", "Fatal"}
	if int(es) < len(names) {
		return names[es]
	}
	return fmt.Sprintf("Unknown(%d)", int(es))
}

func (es ExceptionSafety) String() string {
	names := []string{"None", "Basic", "Strong", "NoThrow", "NoFail"}
	if int(es) < len(names) {
		return names[es]
	}
	return fmt.Sprintf("Unknown(%d)", int(es))
}

// Core data structures

type SideEffect struct {
	Kind        EffectKind
	Level       EffectLevel
	Description string
	Context     string
}

func NewSideEffect(kind EffectKind, level EffectLevel) *SideEffect {
	return &SideEffect{
		Kind:  kind,
		Level: level,
	}
}

func (se *SideEffect) String() string {
	return fmt.Sprintf("%s[%s]", se.Kind.String(), se.Level.String())
}

type ExceptionSpec struct {
	Kind     ExceptionKind
	Severity ExceptionSeverity
	Message  string
	TypeName string
}

func NewExceptionSpec(kind ExceptionKind, severity ExceptionSeverity) *ExceptionSpec {
	return &ExceptionSpec{
		Kind:     kind,
		Severity: severity,
	}
}

func (es *ExceptionSpec) String() string {
	return fmt.Sprintf("%s[%s]", es.Kind.String(), es.Severity.String())
}

type IntegratedEffect struct {
	SideEffect    *SideEffect
	ExceptionSpec *ExceptionSpec
	Context       string
}

func NewIntegratedEffect(sideEffect *SideEffect, exceptionSpec *ExceptionSpec) *IntegratedEffect {
	return &IntegratedEffect{
		SideEffect:    sideEffect,
		ExceptionSpec: exceptionSpec,
	}
}

func (ie *IntegratedEffect) String() string {
	if ie.SideEffect != nil && ie.ExceptionSpec != nil {
		return fmt.Sprintf("%s+%s", ie.SideEffect.String(), ie.ExceptionSpec.String())
	} else if ie.SideEffect != nil {
		return ie.SideEffect.String()
	} else if ie.ExceptionSpec != nil {
		return ie.ExceptionSpec.String()
	}
	return "NoEffect"
}

func (ie *IntegratedEffect) IsEmpty() bool {
	return (ie.SideEffect == nil || ie.SideEffect.Kind == EffectPure) &&
		(ie.ExceptionSpec == nil || ie.ExceptionSpec.Kind == ExceptionNone)
}

func (ie *IntegratedEffect) GetSeverity() EffectLevel {
	maxSeverity := EffectLevelNone

	if ie.SideEffect != nil && ie.SideEffect.Level > maxSeverity {
		maxSeverity = ie.SideEffect.Level
	}

	if ie.ExceptionSpec != nil {
		exceptionSeverity := mapExceptionSeverityToEffectLevel(ie.ExceptionSpec.Severity)
		if exceptionSeverity > maxSeverity {
			maxSeverity = exceptionSeverity
		}
	}

	return maxSeverity
}

func mapExceptionSeverityToEffectLevel(severity ExceptionSeverity) EffectLevel {
	switch severity {
	case ExceptionSeverityInfo:
		return EffectLevelLow
	case ExceptionSeverityWarning:
		return EffectLevelMedium
	case ExceptionSeverityError:
		return EffectLevelHigh
	case ExceptionSeverityCritical:
		return EffectLevelCritical
	case ExceptionSeverityFatal:
		return EffectLevelCritical
	default:
		return EffectLevelNone
	}
}

type IntegratedEffectSet struct {
	effects map[string]*IntegratedEffect
}

func NewIntegratedEffectSet() *IntegratedEffectSet {
	return &IntegratedEffectSet{
		effects: make(map[string]*IntegratedEffect),
	}
}

func (ies *IntegratedEffectSet) Add(effect *IntegratedEffect) {
	key := effect.String()
	ies.effects[key] = effect
}

func (ies *IntegratedEffectSet) Size() int {
	return len(ies.effects)
}

func (ies *IntegratedEffectSet) IsEmpty() bool {
	return len(ies.effects) == 0
}

func (ies *IntegratedEffectSet) ToSlice() []*IntegratedEffect {
	var effects []*IntegratedEffect
	for _, effect := range ies.effects {
		effects = append(effects, effect)
	}
	return effects
}

func (ies *IntegratedEffectSet) String() string {
	if ies.IsEmpty() {
		return "NoEffects"
	}

	var effectStrings []string
	for _, effect := range ies.effects {
		effectStrings = append(effectStrings, effect.String())
	}

	return fmt.Sprintf("{%v}", effectStrings)
}

type IntegratedEffectSignature struct {
	FunctionName string
	Effects      *IntegratedEffectSet
	Safety       ExceptionSafety
	Purity       bool
	MaxSeverity  EffectLevel
}

func NewIntegratedEffectSignature(name string) *IntegratedEffectSignature {
	return &IntegratedEffectSignature{
		FunctionName: name,
		Effects:      NewIntegratedEffectSet(),
		Safety:       SafetyBasic,
		Purity:       true,
		MaxSeverity:  EffectLevelNone,
	}
}

func (ies *IntegratedEffectSignature) AddEffect(effect *IntegratedEffect) {
	ies.Effects.Add(effect)

	// Update purity
	if effect.SideEffect != nil && effect.SideEffect.Kind != EffectPure {
		ies.Purity = false
	}

	// Update safety
	if effect.ExceptionSpec != nil && effect.ExceptionSpec.Kind != ExceptionNone {
		if ies.Safety == SafetyNoThrow {
			ies.Safety = SafetyBasic
		}
	}

	// Update max severity
	effectSeverity := effect.GetSeverity()
	if effectSeverity > ies.MaxSeverity {
		ies.MaxSeverity = effectSeverity
	}
}

func (ies *IntegratedEffectSignature) IsPure() bool {
	return ies.Purity
}

func (ies *IntegratedEffectSignature) IsNoThrow() bool {
	return ies.Safety == SafetyNoThrow || ies.Safety == SafetyNoFail
}

func (ies *IntegratedEffectSignature) String() string {
	return fmt.Sprintf("%s: effects=%s, safety=%s, pure=%v, severity=%s",
		ies.FunctionName, ies.Effects.String(), ies.Safety.String(), ies.Purity, ies.MaxSeverity.String())
}

type IntegratedEffectAnalyzer struct {
	signatures map[string]*IntegratedEffectSignature
}

func NewIntegratedEffectAnalyzer() *IntegratedEffectAnalyzer {
	return &IntegratedEffectAnalyzer{
		signatures: make(map[string]*IntegratedEffectSignature),
	}
}

func (iea *IntegratedEffectAnalyzer) RegisterFunction(signature *IntegratedEffectSignature) {
	iea.signatures[signature.FunctionName] = signature
}

func (iea *IntegratedEffectAnalyzer) CheckCompatibility(caller, callee *IntegratedEffectSignature) []string {
	var issues []string

	// Check purity compatibility
	if caller.IsPure() && !callee.IsPure() {
		issues = append(issues, fmt.Sprintf("pure function %s cannot call impure function %s",
			caller.FunctionName, callee.FunctionName))
	}

	// Check exception safety compatibility
	if caller.IsNoThrow() && !callee.IsNoThrow() {
		issues = append(issues, fmt.Sprintf("no-throw function %s cannot call throwing function %s",
			caller.FunctionName, callee.FunctionName))
	}

	// Check severity compatibility
	if caller.MaxSeverity < callee.MaxSeverity {
		issues = append(issues, fmt.Sprintf("function %s (severity %s) cannot call function %s (severity %s)",
			caller.FunctionName, caller.MaxSeverity.String(),
			callee.FunctionName, callee.MaxSeverity.String()))
	}

	return issues
}

func (iea *IntegratedEffectAnalyzer) GetSignature(functionName string) (*IntegratedEffectSignature, bool) {
	sig, exists := iea.signatures[functionName]
	return sig, exists
}

func main() {
	fmt.Println("ðŸ”— Orizon Integrated Effect System Demo")
	fmt.Println("=======================================")

	// Demo 1: Basic Integrated Effects
	fmt.Println("\nðŸ“ Demo 1: Basic Integrated Effects")

	// Create individual effects
	ioEffect := NewSideEffect(EffectIO, EffectLevelMedium)
	ioEffect.Description = "General I/O operation"

	ioException := NewExceptionSpec(ExceptionIOError, ExceptionSeverityError)
	ioException.Message = "I/O operation failed"

	// Create integrated effect
	integrated := NewIntegratedEffect(ioEffect, ioException)
	integrated.Context = "File processing"

	fmt.Printf("Side Effect: %s\n", ioEffect)
	fmt.Printf("Exception: %s\n", ioException)
	fmt.Printf("Integrated: %s\n", integrated)
	fmt.Printf("Severity: %s\n", integrated.GetSeverity())
	fmt.Printf("Is Empty: %v\n", integrated.IsEmpty())

	// Demo 2: Effect Combinations
	fmt.Println("\nðŸ“ Demo 2: Effect Combinations")

	combinations := []struct {
		name        string
		sideEffect  *SideEffect
		exception   *ExceptionSpec
		description string
	}{
		{
			name:        "PureComputation",
			sideEffect:  nil,
			exception:   nil,
			description: "Pure mathematical computation with no side effects",
		},
		{
			name:        "SafeMemoryAllocation",
			sideEffect:  NewSideEffect(EffectMemoryAlloc, EffectLevelLow),
			exception:   nil,
			description: "Memory allocation with no exceptions",
		},
		{
			name:        "RiskyNetworkCall",
			sideEffect:  NewSideEffect(EffectNetworkRead, EffectLevelHigh),
			exception:   NewExceptionSpec(ExceptionNetworkTimeout, ExceptionSeverityWarning),
			description: "Network call with timeout risk",
		},
		{
			name:        "FileOperation",
			sideEffect:  NewSideEffect(EffectFileRead, EffectLevelMedium),
			exception:   NewExceptionSpec(ExceptionFileNotFound, ExceptionSeverityError),
			description: "File reading with file not found risk",
		},
		{
			name:        "DatabaseTransaction",
			sideEffect:  NewSideEffect(EffectIO, EffectLevelHigh),
			exception:   NewExceptionSpec(ExceptionDeadlock, ExceptionSeverityError),
			description: "Database transaction with deadlock risk",
		},
	}

	for _, combo := range combinations {
		effect := NewIntegratedEffect(combo.sideEffect, combo.exception)
		fmt.Printf("\n%s:\n", combo.name)
		fmt.Printf("  Description: %s\n", combo.description)
		fmt.Printf("  Effect: %s\n", effect)
		fmt.Printf("  Severity: %s\n", effect.GetSeverity())
		fmt.Printf("  Is Empty: %v\n", effect.IsEmpty())
	}

	// Demo 3: Function Signatures
	fmt.Println("\nðŸ“ Demo 3: Function Signatures")

	analyzer := NewIntegratedEffectAnalyzer()

	// Create various function signatures
	functions := []struct {
		name        string
		effects     []*IntegratedEffect
		safety      ExceptionSafety
		description string
	}{
		{
			name: "pureMath",
			effects: []*IntegratedEffect{
				NewIntegratedEffect(nil, nil), // Pure computation
			},
			safety:      SafetyNoThrow,
			description: "Pure mathematical function",
		},
		{
			name: "fileReader",
			effects: []*IntegratedEffect{
				NewIntegratedEffect(
					NewSideEffect(EffectFileRead, EffectLevelMedium),
					NewExceptionSpec(ExceptionFileNotFound, ExceptionSeverityError),
				),
				NewIntegratedEffect(
					nil,
					NewExceptionSpec(ExceptionPermissionDenied, ExceptionSeverityError),
				),
			},
			safety:      SafetyBasic,
			description: "File reading function with error handling",
		},
		{
			name: "networkClient",
			effects: []*IntegratedEffect{
				NewIntegratedEffect(
					NewSideEffect(EffectNetworkRead, EffectLevelHigh),
					NewExceptionSpec(ExceptionNetworkTimeout, ExceptionSeverityWarning),
				),
				NewIntegratedEffect(
					NewSideEffect(EffectNetworkWrite, EffectLevelHigh),
					NewExceptionSpec(ExceptionConnectionFailed, ExceptionSeverityError),
				),
			},
			safety:      SafetyBasic,
			description: "Network client with multiple failure modes",
		},
		{
			name: "memoryManager",
			effects: []*IntegratedEffect{
				NewIntegratedEffect(
					NewSideEffect(EffectMemoryAlloc, EffectLevelLow),
					nil,
				),
			},
			safety:      SafetyStrong,
			description: "Memory manager with strong exception safety",
		},
	}

	var signatures []*IntegratedEffectSignature

	for _, fn := range functions {
		signature := NewIntegratedEffectSignature(fn.name)
		signature.Safety = fn.safety

		for _, effect := range fn.effects {
			if !effect.IsEmpty() {
				signature.AddEffect(effect)
			}
		}

		signatures = append(signatures, signature)
		analyzer.RegisterFunction(signature)

		fmt.Printf("\nFunction: %s\n", fn.name)
		fmt.Printf("  Description: %s\n", fn.description)
		fmt.Printf("  Signature: %s\n", signature)

		// Analyze properties
		if signature.IsPure() {
			fmt.Printf("  âœ… Pure function - no side effects\n")
		} else {
			fmt.Printf("  âš ï¸  Impure function - has side effects\n")
		}

		if signature.IsNoThrow() {
			fmt.Printf("  âœ… No-throw guarantee\n")
		} else {
			fmt.Printf("  âš ï¸  May throw exceptions\n")
		}

		fmt.Printf("  ðŸŽ¯ Max Severity: %s\n", signature.MaxSeverity)
	}

	// Demo 4: Compatibility Analysis
	fmt.Println("\nðŸ“ Demo 4: Compatibility Analysis")

	testCases := []struct {
		caller string
		callee string
	}{
		{"pureMath", "fileReader"},
		{"fileReader", "pureMath"},
		{"networkClient", "memoryManager"},
		{"memoryManager", "networkClient"},
		{"pureMath", "networkClient"},
	}

	for _, test := range testCases {
		caller, callerExists := analyzer.GetSignature(test.caller)
		callee, calleeExists := analyzer.GetSignature(test.callee)

		if !callerExists || !calleeExists {
			fmt.Printf("âŒ Cannot find signatures for %s -> %s\n", test.caller, test.callee)
			continue
		}

		issues := analyzer.CheckCompatibility(caller, callee)

		fmt.Printf("\nCompatibility: %s -> %s\n", test.caller, test.callee)
		if len(issues) == 0 {
			fmt.Printf("  âœ… Compatible - call is safe\n")
		} else {
			fmt.Printf("  âŒ Incompatible - issues found:\n")
			for _, issue := range issues {
				fmt.Printf("    â€¢ %s\n", issue)
			}
		}
	}

	// Demo 5: Real-world Integration Scenarios
	fmt.Println("\nðŸ“ Demo 5: Real-world Integration Scenarios")

	scenarios := []struct {
		name        string
		description string
		signature   *IntegratedEffectSignature
	}{
		{
			name:        "WebServerHandler",
			description: "HTTP request handler with comprehensive error handling",
			signature:   createWebServerSignature(),
		},
		{
			name:        "DatabaseLayer",
			description: "Database access layer with transaction support",
			signature:   createDatabaseSignature(),
		},
		{
			name:        "FileProcessor",
			description: "Batch file processing with recovery",
			signature:   createFileProcessorSignature(),
		},
		{
			name:        "CryptoModule",
			description: "Cryptographic operations with side-channel protection",
			signature:   createCryptoSignature(),
		},
	}

	for _, scenario := range scenarios {
		fmt.Printf("\nScenario: %s\n", scenario.name)
		fmt.Printf("  Description: %s\n", scenario.description)
		fmt.Printf("  Signature: %s\n", scenario.signature)

		effects := scenario.signature.Effects.ToSlice()
		fmt.Printf("  Effects (%d):\n", len(effects))
		for i, effect := range effects {
			fmt.Printf("    %d. %s\n", i+1, effect)
		}

		// Risk assessment
		riskLevel := assessRiskLevel(scenario.signature)
		fmt.Printf("  ðŸŽ¯ Risk Assessment: %s\n", riskLevel)

		// Recommendations
		recommendations := generateRecommendations(scenario.signature)
		if len(recommendations) > 0 {
			fmt.Printf("  ðŸ’¡ Recommendations:\n")
			for _, rec := range recommendations {
				fmt.Printf("    â€¢ %s\n", rec)
			}
		}
	}

	fmt.Println("\nðŸŽ‰ Integrated Effect System Demo Completed!")
	fmt.Println("===========================================")
	fmt.Println("The integrated system successfully demonstrates:")
	fmt.Println("âœ… Unified tracking of side effects and exceptions")
	fmt.Println("âœ… Comprehensive function signature analysis")
	fmt.Println("âœ… Compatibility checking between functions")
	fmt.Println("âœ… Severity-based risk assessment")
	fmt.Println("âœ… Real-world scenario modeling")
	fmt.Println("âœ… Type-level safety guarantees")
}

func createWebServerSignature() *IntegratedEffectSignature {
	sig := NewIntegratedEffectSignature("WebServerHandler")
	sig.Safety = SafetyStrong

	// Network I/O
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectNetworkRead, EffectLevelMedium),
		NewExceptionSpec(ExceptionNetworkTimeout, ExceptionSeverityWarning),
	))

	// File system access for static content
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectFileRead, EffectLevelLow),
		NewExceptionSpec(ExceptionFileNotFound, ExceptionSeverityWarning),
	))

	// Database queries
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectIO, EffectLevelMedium),
		NewExceptionSpec(ExceptionConnectionFailed, ExceptionSeverityError),
	))

	return sig
}

func createDatabaseSignature() *IntegratedEffectSignature {
	sig := NewIntegratedEffectSignature("DatabaseLayer")
	sig.Safety = SafetyStrong

	// Database I/O
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectIO, EffectLevelHigh),
		NewExceptionSpec(ExceptionConnectionFailed, ExceptionSeverityError),
	))

	// Transaction deadlocks
	sig.AddEffect(NewIntegratedEffect(
		nil,
		NewExceptionSpec(ExceptionDeadlock, ExceptionSeverityError),
	))

	// Memory allocation for result sets
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectMemoryAlloc, EffectLevelMedium),
		nil,
	))

	return sig
}

func createFileProcessorSignature() *IntegratedEffectSignature {
	sig := NewIntegratedEffectSignature("FileProcessor")
	sig.Safety = SafetyBasic

	// File reading
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectFileRead, EffectLevelMedium),
		NewExceptionSpec(ExceptionFileNotFound, ExceptionSeverityWarning),
	))

	// File writing
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectFileWrite, EffectLevelMedium),
		NewExceptionSpec(ExceptionPermissionDenied, ExceptionSeverityError),
	))

	// Memory for buffering
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectMemoryAlloc, EffectLevelHigh),
		nil,
	))

	return sig
}

func createCryptoSignature() *IntegratedEffectSignature {
	sig := NewIntegratedEffectSignature("CryptoModule")
	sig.Safety = SafetyNoThrow

	// Memory allocation for secure buffers
	sig.AddEffect(NewIntegratedEffect(
		NewSideEffect(EffectMemoryAlloc, EffectLevelMedium),
		nil,
	))

	// No exceptions for crypto operations (fail-safe design)

	return sig
}

func assessRiskLevel(signature *IntegratedEffectSignature) string {
	if signature.MaxSeverity >= EffectLevelCritical {
		return "ðŸ”´ Critical Risk"
	} else if signature.MaxSeverity >= EffectLevelHigh {
		return "ðŸŸ  High Risk"
	} else if signature.MaxSeverity >= EffectLevelMedium {
		return "ðŸŸ¡ Medium Risk"
	} else {
		return "ðŸŸ¢ Low Risk"
	}
}

func generateRecommendations(signature *IntegratedEffectSignature) []string {
	var recommendations []string

	if !signature.IsPure() {
		recommendations = append(recommendations, "Consider effect isolation or masking for critical sections")
	}

	if !signature.IsNoThrow() {
		recommendations = append(recommendations, "Implement comprehensive exception handling")
	}

	if signature.MaxSeverity >= EffectLevelHigh {
		recommendations = append(recommendations, "Add monitoring and alerting for high-severity effects")
	}

	if signature.Effects.Size() > 5 {
		recommendations = append(recommendations, "Consider breaking down into smaller, more focused functions")
	}

	return recommendations
}
