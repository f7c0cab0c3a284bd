// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import (
	"encoding/json"
	"sync"
)

// Deallocator is the host deallocation contract. Buffers returned to the
// caller are released through it exactly once.
//
// Go reclaims the buffers whether or not they are released. Releasing still
// matters: it hands the credential bytes to the host, which by default
// wipes them, and it keeps the single-release contract of the original ABI.
type Deallocator interface {
	Free(buf []byte)
}

// DeallocatorFunc adapts a function to Deallocator.
type DeallocatorFunc func(buf []byte)

func (f DeallocatorFunc) Free(buf []byte) {
	f(buf)
}

// WipeDeallocator zeroes released buffers.
var WipeDeallocator Deallocator = DeallocatorFunc(func(buf []byte) {
	clear(buf)
})

type releaser struct {
	mu       sync.Mutex
	released bool
	free     Deallocator
}

func newReleaser(free Deallocator) *releaser {
	if free == nil {
		free = WipeDeallocator
	}
	return &releaser{free: free}
}

func (r *releaser) release(bufs ...[]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrAlreadyReleased
	}
	r.released = true
	for _, b := range bufs {
		r.free.Free(b)
	}
	return nil
}

func (r *releaser) isReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// ArchivePayload is a fetched archive owned by the caller.
type ArchivePayload struct {
	data []byte
	rel  *releaser
}

// NewArchivePayload takes ownership of data.
func NewArchivePayload(data []byte, free Deallocator) ArchivePayload {
	return ArchivePayload{data: data, rel: newReleaser(free)}
}

// Bytes returns the payload, or nil once released.
func (p ArchivePayload) Bytes() []byte {
	if p.rel == nil || p.rel.isReleased() {
		return nil
	}
	return p.data
}

// Release frees the payload. A second call returns ErrAlreadyReleased.
func (p ArchivePayload) Release() error {
	if p.rel == nil {
		return ErrAlreadyReleased
	}
	return p.rel.release(p.data)
}

// ArchiveEntry describes one stored archive.
type ArchiveEntry struct {
	ArchiveName []byte
	TimeString  []byte
}

func (e ArchiveEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ArchiveName string `json:"archive_name"`
		TimeString  string `json:"time_string"`
	}{
		ArchiveName: string(e.ArchiveName),
		TimeString:  string(e.TimeString),
	})
}

// ArchiveList is the result of an archive list, owned by the caller.
type ArchiveList struct {
	entries []ArchiveEntry
	rel     *releaser
}

// NewArchiveList takes ownership of entries.
func NewArchiveList(entries []ArchiveEntry, free Deallocator) ArchiveList {
	if entries == nil {
		entries = []ArchiveEntry{}
	}
	return ArchiveList{entries: entries, rel: newReleaser(free)}
}

// Entries returns the archives in server order, or nil once released.
func (l ArchiveList) Entries() []ArchiveEntry {
	if l.rel == nil || l.rel.isReleased() {
		return nil
	}
	return l.entries
}

// Len returns the number of archives.
func (l ArchiveList) Len() int {
	return len(l.Entries())
}

// Release frees every entry. A second call returns ErrAlreadyReleased.
func (l ArchiveList) Release() error {
	if l.rel == nil {
		return ErrAlreadyReleased
	}
	bufs := make([][]byte, 0, 2*len(l.entries))
	for _, e := range l.entries {
		bufs = append(bufs, e.ArchiveName, e.TimeString)
	}
	return l.rel.release(bufs...)
}

func (l ArchiveList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Archives []ArchiveEntry `json:"archives"`
	}{
		Archives: l.Entries(),
	})
}
