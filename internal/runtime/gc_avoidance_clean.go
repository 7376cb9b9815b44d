// gc_avoidance_clean.go - Clean GC Avoidance Implementation for Orizon Phase 3.1.2
package runtime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// GCAvoidanceEngine is the main coordinator for GC avoidance
type GCAvoidanceEngine struct {
	enabled bool
	mutex   sync.RWMutex

	// Core components
	lifetimeTracker *CleanLifetimeTracker
	refCounter      *CleanRefCounter
	stackManager    *CleanStackManager
	escapeAnalyzer  *CleanEscapeAnalyzer

	// Statistics
	stats GCAvoidanceStats
}

// GCAvoidanceStats tracks system performance
type GCAvoidanceStats struct {
	TotalAllocations    int64
	StackAllocations    int64
	RefCountAllocations int64
	EscapedAllocations  int64
	AvoidedGCCycles     int64
	MemorySaved         int64
}

// CleanLifetimeTracker tracks object lifetimes for optimal allocation
type CleanLifetimeTracker struct {
	allocations map[uintptr]*CleanAllocation
	scopes      []*CleanScope
	current     *CleanScope
	mutex       sync.RWMutex
}

// CleanAllocation represents a tracked allocation
type CleanAllocation struct {
	Ptr       uintptr
	Size      uintptr
	AllocType CleanAllocType
	Scope     *CleanScope
	RefCount  int32
	IsValid   bool
	Created   time.Time
}

// CleanAllocType defines allocation strategies
type CleanAllocType int

const (
	CleanStackAlloc CleanAllocType = iota
	CleanRefCountAlloc
	CleanEscapedAlloc
)

// CleanScope represents a lexical scope
type CleanScope struct {
	ID          int
	Function    string
	Parent      *CleanScope
	Children    []*CleanScope
	Allocations []uintptr
	Variables   map[string]*CleanVariable
}

// CleanVariable represents a variable in scope
type CleanVariable struct {
	Name     string
	Ptr      uintptr
	IsLive   bool
	RefCount int32
}

// CleanRefCounter manages reference counting
type CleanRefCounter struct {
	counters map[uintptr]*CleanRefCountEntry
	mutex    sync.RWMutex
	stats    struct {
		increments int64
		decrements int64
	}
}

// CleanRefCountEntry represents a reference count entry
type CleanRefCountEntry struct {
	Ptr     uintptr
	Count   int32
	IsValid bool
	Created time.Time
}

// CleanStackManager manages stack allocation
type CleanStackManager struct {
	frames   []*CleanStackFrame
	current  *CleanStackFrame
	maxDepth int
	depth    int
	mutex    sync.Mutex
}

// CleanStackFrame represents a stack frame
type CleanStackFrame struct {
	ID       int
	Function string
	Parent   *CleanStackFrame
	Size     uintptr
	Used     uintptr
	Objects  map[uintptr]*CleanStackObject
}

// CleanStackObject represents a stack-allocated object
type CleanStackObject struct {
	Ptr    uintptr
	Size   uintptr
	Offset uintptr
	IsLive bool
}

// CleanEscapeAnalyzer analyzes escape patterns
type CleanEscapeAnalyzer struct {
	patterns map[string]*CleanEscapePattern
	mutex    sync.RWMutex
}

// CleanEscapePattern represents an escape analysis pattern
type CleanEscapePattern struct {
	Function    string
	EscapeRate  float64
	Confidence  float64
	SampleCount int64
}

// NewGCAvoidanceEngine creates a new GC avoidance engine
func NewGCAvoidanceEngine() *GCAvoidanceEngine {
	return &GCAvoidanceEngine{
		enabled:         true,
		lifetimeTracker: NewCleanLifetimeTracker(),
		refCounter:      NewCleanRefCounter(),
		stackManager:    NewCleanStackManager(1000), // 1000 frame limit
		escapeAnalyzer:  NewCleanEscapeAnalyzer(),
	}
}

// NewCleanLifetimeTracker creates a new lifetime tracker
func NewCleanLifetimeTracker() *CleanLifetimeTracker {
	return &CleanLifetimeTracker{
		allocations: make(map[uintptr]*CleanAllocation),
		scopes:      make([]*CleanScope, 0),
	}
}

// NewCleanRefCounter creates a new reference counter
func NewCleanRefCounter() *CleanRefCounter {
	return &CleanRefCounter{
		counters: make(map[uintptr]*CleanRefCountEntry),
	}
}

// NewCleanStackManager creates a new stack manager
func NewCleanStackManager(maxDepth int) *CleanStackManager {
	return &CleanStackManager{
		frames:   make([]*CleanStackFrame, 0),
		maxDepth: maxDepth,
	}
}

// NewCleanEscapeAnalyzer creates a new escape analyzer
func NewCleanEscapeAnalyzer() *CleanEscapeAnalyzer {
	return &CleanEscapeAnalyzer{
		patterns: make(map[string]*CleanEscapePattern),
	}
}

// Allocate performs smart allocation based on escape analysis
func (gca *GCAvoidanceEngine) Allocate(size uintptr, hint string) uintptr {
	if !gca.enabled {
		return gca.heapAllocate(size)
	}

	atomic.AddInt64(&gca.stats.TotalAllocations, 1)

	// Try stack allocation first
	if ptr := gca.tryStackAllocate(size, hint); ptr != 0 {
		atomic.AddInt64(&gca.stats.StackAllocations, 1)
		return ptr
	}

	// Try reference counted allocation
	if ptr := gca.tryRefCountAllocate(size, hint); ptr != 0 {
		atomic.AddInt64(&gca.stats.RefCountAllocations, 1)
		return ptr
	}

	// Fall back to heap
	atomic.AddInt64(&gca.stats.EscapedAllocations, 1)
	return gca.heapAllocate(size)
}

// tryStackAllocate attempts stack allocation
func (gca *GCAvoidanceEngine) tryStackAllocate(size uintptr, hint string) uintptr {
	// Check if likely to escape
	if gca.escapeAnalyzer.WillEscape(hint) {
		return 0
	}

	// Check stack space
	return gca.stackManager.Allocate(size, hint)
}

// tryRefCountAllocate attempts reference counted allocation
func (gca *GCAvoidanceEngine) tryRefCountAllocate(size uintptr, hint string) uintptr {
	// Allocate with reference counting
	ptr := gca.heapAllocate(size)
	if ptr != 0 {
		gca.refCounter.Track(ptr)
	}
	return ptr
}

// heapAllocate performs traditional heap allocation
func (gca *GCAvoidanceEngine) heapAllocate(size uintptr) uintptr {
	// Simple allocation using unsafe.Pointer
	data := make([]byte, size)
	return uintptr(unsafe.Pointer(&data[0]))
}

// PushScope enters a new lexical scope
func (lt *CleanLifetimeTracker) PushScope(function string) *CleanScope {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	scope := &CleanScope{
		ID:          len(lt.scopes),
		Function:    function,
		Parent:      lt.current,
		Children:    make([]*CleanScope, 0),
		Allocations: make([]uintptr, 0),
		Variables:   make(map[string]*CleanVariable),
	}

	if lt.current != nil {
		lt.current.Children = append(lt.current.Children, scope)
	}

	lt.scopes = append(lt.scopes, scope)
	lt.current = scope

	return scope
}

// PopScope exits the current lexical scope
func (lt *CleanLifetimeTracker) PopScope() {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	if lt.current != nil {
		// Cleanup scope allocations
		for _, ptr := range lt.current.Allocations {
			if alloc, exists := lt.allocations[ptr]; exists && alloc.IsValid {
				// Mark for cleanup
				alloc.IsValid = false
			}
		}

		lt.current = lt.current.Parent
	}
}

// Track adds an allocation to lifetime tracking
func (lt *CleanLifetimeTracker) Track(ptr uintptr, size uintptr, allocType CleanAllocType) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	allocation := &CleanAllocation{
		Ptr:       ptr,
		Size:      size,
		AllocType: allocType,
		Scope:     lt.current,
		RefCount:  1,
		IsValid:   true,
		Created:   time.Now(),
	}

	lt.allocations[ptr] = allocation

	if lt.current != nil {
		lt.current.Allocations = append(lt.current.Allocations, ptr)
	}
}

// Allocate allocates memory on the stack
func (sm *CleanStackManager) Allocate(size uintptr, function string) uintptr {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if sm.current == nil || sm.current.Used+size > 8192 { // 8KB frame limit
		if !sm.pushFrame(function) {
			return 0 // Stack overflow
		}
	}

	// Simple allocation
	data := make([]byte, size)
	ptr := uintptr(unsafe.Pointer(&data[0]))

	obj := &CleanStackObject{
		Ptr:    ptr,
		Size:   size,
		Offset: sm.current.Used,
		IsLive: true,
	}

	sm.current.Objects[ptr] = obj
	sm.current.Used += size

	return ptr
}

// pushFrame pushes a new stack frame
func (sm *CleanStackManager) pushFrame(function string) bool {
	if sm.depth >= sm.maxDepth {
		return false
	}

	frame := &CleanStackFrame{
		ID:       len(sm.frames),
		Function: function,
		Parent:   sm.current,
		Size:     8192, // 8KB default
		Used:     0,
		Objects:  make(map[uintptr]*CleanStackObject),
	}

	sm.frames = append(sm.frames, frame)
	sm.current = frame
	sm.depth++

	return true
}

// PopFrame pops the current stack frame
func (sm *CleanStackManager) PopFrame() {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if sm.current != nil {
		// Cleanup frame objects
		for _, obj := range sm.current.Objects {
			if obj.IsLive {
				obj.IsLive = false
			}
		}

		sm.current = sm.current.Parent
		sm.depth--
	}
}

// Track adds a pointer to reference counting
func (rc *CleanRefCounter) Track(ptr uintptr) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	entry := &CleanRefCountEntry{
		Ptr:     ptr,
		Count:   1,
		IsValid: true,
		Created: time.Now(),
	}

	rc.counters[ptr] = entry
}

// Increment increments reference count
func (rc *CleanRefCounter) Increment(ptr uintptr) {
	rc.mutex.RLock()
	entry, exists := rc.counters[ptr]
	rc.mutex.RUnlock()

	if exists && entry.IsValid {
		atomic.AddInt32(&entry.Count, 1)
		atomic.AddInt64(&rc.stats.increments, 1)
	}
}

// Decrement decrements reference count
func (rc *CleanRefCounter) Decrement(ptr uintptr) {
	rc.mutex.RLock()
	entry, exists := rc.counters[ptr]
	rc.mutex.RUnlock()

	if exists && entry.IsValid {
		newCount := atomic.AddInt32(&entry.Count, -1)
		atomic.AddInt64(&rc.stats.decrements, 1)

		if newCount == 0 {
			rc.cleanup(ptr)
		}
	}
}

// cleanup removes entry when count reaches zero
func (rc *CleanRefCounter) cleanup(ptr uintptr) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if entry, exists := rc.counters[ptr]; exists {
		entry.IsValid = false
		delete(rc.counters, ptr)
	}
}

// WillEscape predicts if an allocation will escape
func (ea *CleanEscapeAnalyzer) WillEscape(function string) bool {
	ea.mutex.RLock()
	defer ea.mutex.RUnlock()

	if pattern, exists := ea.patterns[function]; exists {
		return pattern.EscapeRate > 0.5 // 50% threshold
	}

	// Conservative default - assume might escape
	return true
}

// RecordEscape records an escape event for learning
func (ea *CleanEscapeAnalyzer) RecordEscape(function string, escaped bool) {
	ea.mutex.Lock()
	defer ea.mutex.Unlock()

	pattern, exists := ea.patterns[function]
	if !exists {
		pattern = &CleanEscapePattern{
			Function:    function,
			EscapeRate:  0.0,
			Confidence:  0.0,
			SampleCount: 0,
		}
		ea.patterns[function] = pattern
	}

	// Update escape rate using running average
	pattern.SampleCount++
	if escaped {
		pattern.EscapeRate = (pattern.EscapeRate*float64(pattern.SampleCount-1) + 1.0) / float64(pattern.SampleCount)
	} else {
		pattern.EscapeRate = (pattern.EscapeRate * float64(pattern.SampleCount-1)) / float64(pattern.SampleCount)
	}

	// Update confidence
	pattern.Confidence = float64(pattern.SampleCount) / (float64(pattern.SampleCount) + 10.0)
}

// GetStatistics returns comprehensive statistics
func (gca *GCAvoidanceEngine) GetStatistics() map[string]interface{} {
	gca.mutex.RLock()
	defer gca.mutex.RUnlock()

	stats := make(map[string]interface{})
	stats["enabled"] = gca.enabled
	stats["total_allocations"] = atomic.LoadInt64(&gca.stats.TotalAllocations)
	stats["stack_allocations"] = atomic.LoadInt64(&gca.stats.StackAllocations)
	stats["refcount_allocations"] = atomic.LoadInt64(&gca.stats.RefCountAllocations)
	stats["escaped_allocations"] = atomic.LoadInt64(&gca.stats.EscapedAllocations)
	stats["avoided_gc_cycles"] = atomic.LoadInt64(&gca.stats.AvoidedGCCycles)
	stats["memory_saved"] = atomic.LoadInt64(&gca.stats.MemorySaved)

	return stats
}

// Enable enables the GC avoidance system
func (gca *GCAvoidanceEngine) Enable() {
	gca.mutex.Lock()
	defer gca.mutex.Unlock()
	gca.enabled = true
}

// Disable disables the GC avoidance system
func (gca *GCAvoidanceEngine) Disable() {
	gca.mutex.Lock()
	defer gca.mutex.Unlock()
	gca.enabled = false
}

// String returns string representation
func (gca *GCAvoidanceEngine) String() string {
	stats := gca.GetStatistics()
	return fmt.Sprintf("GCAvoidanceEngine{enabled: %v, total: %d, stack: %d, refcount: %d, escaped: %d}",
		stats["enabled"], stats["total_allocations"], stats["stack_allocations"],
		stats["refcount_allocations"], stats["escaped_allocations"])
}

// String methods for component types
func (ct CleanAllocType) String() string {
	switch ct {
	case CleanStackAlloc:
		return "stack"
	case CleanRefCountAlloc:
		return "refcount"
	case CleanEscapedAlloc:
		return "escaped"
	default:
		return "unknown"
	}
}
