// Package runtime provides reference counting optimization for memory management.
// This module implements sophisticated reference counting strategies to minimize.
// overhead while maintaining memory safety in a garbage collection-free environment.
package runtime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// RefCountOptimizer manages reference counting optimizations.
type RefCountOptimizer struct {
	statistics       RefCountStatistics
	lastOptimization time.Time
	objects          map[ObjectID]*RefCountedObject
	strategies       map[string]RefCountStrategy
	cycles           map[CycleID]*ReferenceCycle
	weakRefs         map[ObjectID][]*WeakRef
	cycleBuster      *CycleBreaker
	optimizer        *CountOptimizer
	config           RefCountConfig
	mutex            sync.RWMutex
	enabled          bool
}

// RefCountedObject represents an object with reference counting.
type RefCountedObject struct {
	CreatedAt         time.Time
	LastAccess        time.Time
	Data              interface{}
	Strategy          RefCountStrategy
	Type              *TypeInfo
	Parent            *RefCountedObject
	CycleInfo         *CycleInfo
	Allocator         *RegionAllocator
	Region            *Region
	Children          []*RefCountedObject
	OptimizationHints []OptimizationHint
	AccessPattern     AccessPattern
	Size              uintptr
	ID                ObjectID
	WeakCount         int64
	RefCount          int64
	Flags             ObjectFlags
}

// RefCountStrategy defines different reference counting strategies.
type RefCountStrategy interface {
	GetName() string                                                // Strategy name
	GetPriority() int                                               // Strategy priority
	CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool // Check if object can be optimized
	Optimize(obj *RefCountedObject, hint OptimizationHint) error    // Apply optimization
}

// ObjectFlags represents flags for reference counted objects.
type ObjectFlags int64

const (
	FlagNone             ObjectFlags = 0
	FlagCyclic           ObjectFlags = 1 << 0  // Object is part of a cycle
	FlagWeak             ObjectFlags = 1 << 1  // Object has weak references
	FlagImmutable        ObjectFlags = 1 << 2  // Object is immutable
	FlagShared           ObjectFlags = 1 << 3  // Object is shared between threads
	FlagLargeObject      ObjectFlags = 1 << 4  // Large object (>64KB)
	FlagHotPath          ObjectFlags = 1 << 5  // Object used in hot code path
	FlagOptimized        ObjectFlags = 1 << 6  // Object has been optimized
	FlagSkipCycleCheck   ObjectFlags = 1 << 7  // Skip cycle detection
	FlagStackAllocatable ObjectFlags = 1 << 8  // Can be stack allocated
	FlagRegionAllocated  ObjectFlags = 1 << 9  // Allocated in region
	FlagDeferred         ObjectFlags = 1 << 10 // Deferred reference counting
)

// AccessPattern tracks object access patterns.
type AccessPattern struct {
	LastRead       time.Time
	LastWrite      time.Time
	LastRefChange  time.Time
	ReadCount      int64
	WriteCount     int64
	RefIncrements  int64
	RefDecrements  int64
	Frequency      float64
	Predictability float64
	CacheLocality  float64
	HotPathAccess  bool
}

// ReferenceCycle represents a detected reference cycle.
type ReferenceCycle struct {
	Detected time.Time
	Objects  []*RefCountedObject
	Edges    []*ReferenceEdge
	ID       CycleID
	Strength float64
	Strategy CycleBreakStrategy
	Cost     float64
	Broken   bool
}

// ReferenceEdge represents a reference between objects.
type ReferenceEdge struct {
	From     *RefCountedObject
	To       *RefCountedObject
	ID       EdgeID
	Type     ReferenceType
	Strength float64
	Count    int64
	Weak     bool
}

// WeakRef represents a weak reference to an object.
type WeakRef struct {
	Created  time.Time
	Target   *RefCountedObject
	Callback WeakRefCallback
	ID       WeakRefID
	Valid    bool
}

// CycleInfo contains cycle detection information.
type CycleInfo struct {
	LastCheck      time.Time
	CycleID        CycleID
	CycleDepth     int
	CheckCount     int64
	InCycle        bool
	BreakCandidate bool
}

// OptimizationHint provides hints for optimization.
type OptimizationHint struct {
	Value      interface{}
	Source     string
	Type       HintType
	Confidence float64
	Applicable bool
}

// CycleBreaker handles reference cycle detection and breaking.
type CycleBreaker struct {
	lastDetection time.Time
	cycles        map[CycleID]*ReferenceCycle
	detector      *CycleDetector
	strategies    []CycleBreakStrategy
	statistics    CycleStatistics
	config        CycleConfig
	mutex         sync.RWMutex
	enabled       bool
}

// CountOptimizer optimizes reference counting operations.
type CountOptimizer struct {
	optimizations   map[ObjectID]*CountOptimization
	deferredCounts  map[ObjectID]*DeferredCount
	batchOperations *BatchOperations
	statistics      OptimizationStatistics
	config          OptimizationConfig
	mutex           sync.RWMutex
	enabled         bool
}

// Type definitions.
type (
	ObjectID        uint64                  // Object identifier
	CycleID         uint64                  // Cycle identifier
	WeakRefID       uint64                  // Weak reference identifier
	WeakRefCallback func(*RefCountedObject) // Weak reference callback
)

// Reference counting types.
type RefReferenceType int

const (
	StrongReference RefReferenceType = iota
	WeakRefType
	OwningReference
	BorrowedReference
	SharedReference
	UniqueReference
)

type CycleBreakStrategy int

const (
	WeakReferenceBreaking CycleBreakStrategy = iota
	DelayedDeallocation
	CopyOnWrite
	RefCountBatching
	CycleCollection
)

type HintType int

const (
	ImmutableHint HintType = iota
	ShortLivedHint
	LongLivedHint
	SharedHint
	HotPathHint
	StackAllocatableHint
)

// Statistics structures.
type RefCountStatistics struct {
	LastUpdate        time.Time
	TotalObjects      int64
	ActiveObjects     int64
	TotalIncrements   int64
	TotalDecrements   int64
	CyclesDetected    int64
	CyclesBroken      int64
	OptimizedObjects  int64
	OverheadReduction float64
	PerformanceGain   float64
	MemoryReduction   float64
}

type CycleStatistics struct {
	TotalCycles    int64         // Total cycles detected
	BrokenCycles   int64         // Cycles successfully broken
	ActiveCycles   int64         // Currently active cycles
	AverageSize    float64       // Average cycle size
	DetectionTime  time.Duration // Time spent detecting cycles
	BreakingTime   time.Duration // Time spent breaking cycles
	FalsePositives int64         // False positive detections
	MissedCycles   int64         // Estimated missed cycles
}

type OptimizationStatistics struct {
	TotalOptimizations int64         // Total optimizations applied
	DeferredOperations int64         // Deferred operations count
	BatchedOperations  int64         // Batched operations count
	OptimizationTime   time.Duration // Time spent optimizing
	PerformanceGain    float64       // Performance gain percentage
	OverheadReduction  float64       // Overhead reduction percentage
}

// Configuration structures.
type RefCountConfig struct {
	MaxCycleDepth          int
	OptimizationInterval   time.Duration
	CycleDetectionInterval time.Duration
	DeferredCountThreshold int64
	BatchSize              int
	EnableOptimization     bool
	EnableCycleDetection   bool
	EnableWeakReferences   bool
	PerformanceMode        bool
	DebugMode              bool
}

type CycleConfig struct {
	DetectionInterval time.Duration
	MaxCycleSize      int
	BreakingThreshold float64
	PreferredStrategy CycleBreakStrategy
	MaxBreakingCost   float64
	EnableDetection   bool
	EnableBreaking    bool
	AllowWeakBreaking bool
}

type OptimizationConfig struct {
	BatchSize           int
	DeferralThreshold   int64
	OptimizationLevel   int
	EnableDeferred      bool
	EnableBatching      bool
	EnableInlining      bool
	HotPathOptimization bool
	CacheOptimization   bool
}

// Operation structures.
type CountOptimization struct {
	Object      *RefCountedObject
	Description string
	Type        OptimizationType
	Benefit     float64
	Cost        float64
	Applied     bool
}

type DeferredCount struct {
	LastUpdate        time.Time
	Object            *RefCountedObject
	PendingIncrements int64
	PendingDecrements int64
	FlushThreshold    int64
}

type BatchOperations struct {
	lastFlush     time.Time
	increments    map[ObjectID]int64
	decrements    map[ObjectID]int64
	batchSize     int
	flushInterval time.Duration
	mutex         sync.Mutex
}

type RefOptimizationType int

const (
	DeferredCounting RefOptimizationType = iota
	BatchedOperations
	InlinedOperations
	CacheOptimization
	HotPathOptimization
	CycleAvoidance
)

// Strategy implementations.
type StandardRefCount struct {
	name     string
	priority int
}

func (s *StandardRefCount) GetName() string  { return s.name }
func (s *StandardRefCount) GetPriority() int { return s.priority }
func (s *StandardRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return true // Standard strategy always applicable
}

func (s *StandardRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	return nil // Standard counting - no optimization needed
}

type DeferredRefCount struct {
	name      string
	priority  int
	threshold int64
}

func (d *DeferredRefCount) GetName() string  { return d.name }
func (d *DeferredRefCount) GetPriority() int { return d.priority }
func (d *DeferredRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return pattern.WriteCount < d.threshold && pattern.ReadCount > pattern.WriteCount*2
}

func (d *DeferredRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagDeferred

	return nil
}

type BatchedRefCount struct {
	name      string
	priority  int
	batchSize int
}

func (b *BatchedRefCount) GetName() string  { return b.name }
func (b *BatchedRefCount) GetPriority() int { return b.priority }
func (b *BatchedRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return pattern.WriteCount > int64(b.batchSize)
}

func (b *BatchedRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagDeferred // Use FlagDeferred as batched flag

	return nil
}

type WeakRefCount struct {
	name     string
	priority int
}

func (w *WeakRefCount) GetName() string  { return w.name }
func (w *WeakRefCount) GetPriority() int { return w.priority }
func (w *WeakRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return obj.Flags&FlagCyclic != 0 // Apply to cyclic objects
}

func (w *WeakRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagWeak

	return nil
}

type CycleDetector struct {
	visited    map[ObjectID]bool
	path       []*RefCountedObject
	cycles     []*ReferenceCycle
	statistics CycleStatistics
	config     CycleConfig
	mutex      sync.RWMutex
}

// Default configurations.
var DefaultRefCountConfig = RefCountConfig{
	EnableOptimization:     true,
	EnableCycleDetection:   true,
	EnableWeakReferences:   true,
	MaxCycleDepth:          20,
	OptimizationInterval:   time.Second * 10,
	CycleDetectionInterval: time.Second * 30,
	DeferredCountThreshold: 100,
	BatchSize:              50,
	PerformanceMode:        false,
	DebugMode:              false,
}

var DefaultCycleConfig = CycleConfig{
	EnableDetection:   true,
	EnableBreaking:    true,
	DetectionInterval: time.Second * 30,
	MaxCycleSize:      100,
	BreakingThreshold: 0.8,
	PreferredStrategy: WeakReferenceBreaking,
	AllowWeakBreaking: true,
	MaxBreakingCost:   0.5,
}

var DefaultOptimizationConfig = OptimizationConfig{
	EnableDeferred:      true,
	EnableBatching:      true,
	EnableInlining:      true,
	BatchSize:           50,
	DeferralThreshold:   10,
	OptimizationLevel:   2,
	HotPathOptimization: true,
	CacheOptimization:   true,
}

// NewRefCountOptimizer creates a new reference count optimizer.
func NewRefCountOptimizer(config RefCountConfig) *RefCountOptimizer {
	optimizer := &RefCountOptimizer{
		objects:    make(map[ObjectID]*RefCountedObject),
		strategies: make(map[string]RefCountStrategy),
		cycles:     make(map[CycleID]*ReferenceCycle),
		weakRefs:   make(map[ObjectID][]*WeakRef),
		config:     config,
		enabled:    config.EnableOptimization,
	}

	// Register default strategies.
	optimizer.registerStrategy(&StandardRefCount{name: "standard", priority: 100})
	optimizer.registerStrategy(&DeferredRefCount{name: "deferred", priority: 90, threshold: config.DeferredCountThreshold})
	optimizer.registerStrategy(&BatchedRefCount{name: "batched", priority: 80, batchSize: config.BatchSize})
	optimizer.registerStrategy(&WeakRefCount{name: "weak", priority: 70})

	// Initialize components.
	optimizer.cycleBuster = NewCycleBreaker(DefaultCycleConfig)
	optimizer.optimizer = NewCountOptimizer(DefaultOptimizationConfig)

	return optimizer
}

// RegisterObject registers an object for reference counting.
func (rco *RefCountOptimizer) RegisterObject(obj *RefCountedObject) error {
	if !rco.enabled {
		return nil
	}

	rco.mutex.Lock()
	defer rco.mutex.Unlock()

	// Select optimal strategy.
	strategy := rco.selectStrategy(obj)
	obj.Strategy = strategy

	// Initialize reference count.
	atomic.StoreInt64(&obj.RefCount, 1)
	obj.CreatedAt = time.Now()
	obj.LastAccess = time.Now()

	// Register object.
	rco.objects[obj.ID] = obj
	atomic.AddInt64(&rco.statistics.TotalObjects, 1)
	atomic.AddInt64(&rco.statistics.ActiveObjects, 1)

	return nil
}

// AddReference adds a reference to an object.
func (rco *RefCountOptimizer) AddReference(objectID ObjectID) error {
	if !rco.enabled {
		return fmt.Errorf("optimizer disabled")
	}

	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("object not found: %d", objectID)
	}

	// Use atomic operations for reference counting.
	atomic.AddInt64(&obj.RefCount, 1)

	// Update statistics.
	atomic.AddInt64(&rco.statistics.TotalIncrements, 1)

	obj.LastAccess = time.Now()

	return nil
}

// RemoveReference removes a reference from an object.
func (rco *RefCountOptimizer) RemoveReference(objectID ObjectID) error {
	if !rco.enabled {
		return fmt.Errorf("optimizer disabled")
	}

	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("object not found: %d", objectID)
	}

	// Use atomic operations for reference counting.
	count := atomic.AddInt64(&obj.RefCount, -1)
	if count < 0 {
		return fmt.Errorf("reference count went negative for object %d", obj.ID)
	}

	// Update statistics.
	atomic.AddInt64(&rco.statistics.TotalDecrements, 1)

	obj.LastAccess = time.Now()

	// Check if object should be deallocated.
	if count == 0 {
		return rco.deallocateObject(obj)
	}

	return nil
}

// GetReferenceCount returns the current reference count.
func (rco *RefCountOptimizer) GetReferenceCount(objectID ObjectID) (int64, error) {
	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return 0, fmt.Errorf("object not found: %d", objectID)
	}

	return atomic.LoadInt64(&obj.RefCount), nil
}

// OptimizeObjects performs optimization on all registered objects.
func (rco *RefCountOptimizer) OptimizeObjects() error {
	if !rco.enabled {
		return nil
	}

	startTime := time.Now()

	// Run cycle detection.
	if rco.config.EnableCycleDetection {
		err := rco.cycleBuster.DetectCycles(rco.objects)
		if err != nil {
			return fmt.Errorf("cycle detection failed: %w", err)
		}
	}

	// Run count optimizations.
	err := rco.optimizer.OptimizeCounts(rco.objects)
	if err != nil {
		return fmt.Errorf("count optimization failed: %w", err)
	}

	// Update statistics.
	rco.statistics.LastUpdate = time.Now()
	rco.lastOptimization = time.Now()

	optimizationTime := time.Since(startTime)
	if rco.config.DebugMode {
		fmt.Printf("Optimization completed in %v\n", optimizationTime)
	}

	return nil
}

// Helper methods.

// selectStrategy selects the best reference counting strategy for an object.
func (rco *RefCountOptimizer) selectStrategy(obj *RefCountedObject) RefCountStrategy {
	// Analyze object characteristics.
	if obj.Flags&FlagHotPath != 0 {
		// Hot path objects benefit from deferred counting.
		return rco.strategies["deferred"]
	}

	if obj.Flags&FlagShared != 0 {
		// Shared objects may benefit from batching.
		return rco.strategies["batched"]
	}

	if obj.Flags&FlagImmutable != 0 {
		// Immutable objects can use simplified counting.
		return rco.strategies["weak"]
	}

	// Default to standard counting.
	return rco.strategies["standard"]
}

// deallocateObject deallocates an object when its reference count reaches zero.
func (rco *RefCountOptimizer) deallocateObject(obj *RefCountedObject) error {
	// Remove from tracking.
	rco.mutex.Lock()
	delete(rco.objects, obj.ID)
	rco.mutex.Unlock()

	// Update statistics.
	atomic.AddInt64(&rco.statistics.ActiveObjects, -1)

	// Deallocate from allocator.
	if obj.Allocator != nil && obj.Region != nil {
		// Use region-based deallocation.
		if ptr, ok := obj.Data.(unsafe.Pointer); ok {
			return obj.Region.Deallocate(ptr)
		}
	}

	return nil
}

// registerStrategy registers a reference counting strategy.
func (rco *RefCountOptimizer) registerStrategy(strategy RefCountStrategy) {
	rco.mutex.Lock()
	defer rco.mutex.Unlock()

	rco.strategies[strategy.GetName()] = strategy
}

// Component constructors.

// NewCycleBreaker creates a new cycle breaker.
func NewCycleBreaker(config CycleConfig) *CycleBreaker {
	return &CycleBreaker{
		cycles:     make(map[CycleID]*ReferenceCycle),
		strategies: []CycleBreakStrategy{WeakReferenceBreaking, DelayedDeallocation},
		detector:   NewCycleDetector(config),
		config:     config,
		enabled:    config.EnableDetection,
	}
}

// NewCountOptimizer creates a new count optimizer.
func NewCountOptimizer(config OptimizationConfig) *CountOptimizer {
	return &CountOptimizer{
		optimizations:  make(map[ObjectID]*CountOptimization),
		deferredCounts: make(map[ObjectID]*DeferredCount),
		batchOperations: &BatchOperations{
			increments:    make(map[ObjectID]int64),
			decrements:    make(map[ObjectID]int64),
			batchSize:     0,
			flushInterval: time.Millisecond * 100,
		},
		config:  config,
		enabled: config.EnableDeferred || config.EnableBatching,
	}
}

// NewCycleDetector creates a new cycle detector.
func NewCycleDetector(config CycleConfig) *CycleDetector {
	return &CycleDetector{
		visited: make(map[ObjectID]bool),
		path:    make([]*RefCountedObject, 0),
		cycles:  make([]*ReferenceCycle, 0),
		config:  config,
	}
}

// DetectCycles detects reference cycles in the object graph.
func (cb *CycleBreaker) DetectCycles(objects map[ObjectID]*RefCountedObject) error {
	if !cb.enabled {
		return nil
	}

	// Use the cycle detector.
	for _, obj := range objects {
		if !cb.detector.visited[obj.ID] {
			err := cb.detector.detectCycleFrom(obj)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// OptimizeCounts optimizes reference counting operations.
func (co *CountOptimizer) OptimizeCounts(objects map[ObjectID]*RefCountedObject) error {
	if !co.enabled {
		return nil
	}

	// Apply deferred counting optimizations.
	if co.config.EnableDeferred {
		for _, obj := range objects {
			co.applyDeferredCounting(obj)
		}
	}

	// Apply batching optimizations.
	if co.config.EnableBatching {
		co.flushBatchedOperations()
	}

	return nil
}

// Placeholder implementations for complex methods.
func (cd *CycleDetector) detectCycleFrom(obj *RefCountedObject) error {
	// Complex cycle detection algorithm would go here.
	return nil
}

func (co *CountOptimizer) applyDeferredCounting(obj *RefCountedObject) {
	// Complex deferred counting logic would go here.
}

func (co *CountOptimizer) flushBatchedOperations() {
	// Complex batch flushing logic would go here.
}
