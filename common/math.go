package common

import (
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Flatten2 views packed pairs as a flat float slice sharing the same memory.
func Flatten2(v [][2]float32) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice(&v[0][0], len(v)*2)
}

// Flatten3 views packed triples as a flat float slice sharing the same memory.
func Flatten3(v [][3]float32) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice(&v[0][0], len(v)*3)
}
