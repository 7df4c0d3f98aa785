// Copyright 2025 The SH7372 Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux
// +build linux

package mmio

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DevMem is a Port backed by /dev/mem mappings of physical register
// regions. Every region is mapped once, at construction, with MAP_SHARED so
// stores reach the device.
type DevMem struct {
	fd      int
	regions []devMemRegion
}

type devMemRegion struct {
	Region
	slice []byte
}

// OpenDevMem opens /dev/mem and maps the given regions.
func OpenDevMem(regions []Region) (*DevMem, error) {
	pagesize := uintptr(unix.Getpagesize())
	for _, r := range regions {
		if r.Base%pagesize != 0 {
			return nil, fmt.Errorf("region %v base is not page aligned", r)
		}
		// A partial trailing page would leave word willing to index past
		// the mapping for addresses inside it.
		if r.Size == 0 || r.Size%pagesize != 0 {
			return nil, fmt.Errorf("region %v size is not a page multiple", r)
		}
	}

	fd, err := unix.Open("/dev/mem", unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening /dev/mem: %w", err)
	}
	d := &DevMem{fd: fd}
	for _, r := range regions {
		slice, err := mapSlice(r.Size, fd, r.Base)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("mapping %v: %w", r, err)
		}
		d.regions = append(d.regions, devMemRegion{Region: r, slice: slice})
	}
	return d, nil
}

// Close unmaps all regions and closes the /dev/mem descriptor.
func (d *DevMem) Close() error {
	for _, r := range d.regions {
		unmapSlice(r.slice)
	}
	d.regions = nil
	return unix.Close(d.fd)
}

// Read32 implements Port.Read32.
func (d *DevMem) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32(d.word(addr))
}

// Write32 implements Port.Write32.
func (d *DevMem) Write32(addr uintptr, v uint32) {
	atomic.StoreUint32(d.word(addr), v)
}

// word translates a physical address into the mapped word backing it. An
// unmapped or misaligned address is a programming error and panics, the
// moral equivalent of a bus fault.
func (d *DevMem) word(addr uintptr) *uint32 {
	if addr%4 != 0 {
		panic(fmt.Sprintf("misaligned register access at %#x", addr))
	}
	for i := range d.regions {
		r := &d.regions[i]
		if addr >= r.Base && addr < r.Base+r.Size {
			return (*uint32)(unsafe.Pointer(&r.slice[addr-r.Base]))
		}
	}
	panic(fmt.Sprintf("register access outside mapped regions at %#x", addr))
}

// mapSlice maps size bytes of fd at the given offset and returns the mapping
// as a slice.
func mapSlice(size uintptr, fd int, offset uintptr) ([]byte, error) {
	addr, _, errno := unix.RawSyscall6(
		unix.SYS_MMAP,
		0, // suggested address.
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
		uintptr(fd),
		offset)
	if errno != 0 {
		return nil, errno
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

// unmapSlice unmaps a mapping returned by mapSlice.
func unmapSlice(slice []byte) error {
	ptr := unsafe.SliceData(slice)
	_, _, errno := unix.RawSyscall6(unix.SYS_MUNMAP, uintptr(unsafe.Pointer(ptr)), uintptr(cap(slice)), 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
