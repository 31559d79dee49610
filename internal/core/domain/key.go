package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// TaskKey is the content-derived identity of a task. Two requests with equal
// keys describe the same unit of work and are deduplicated by the dispatcher.
type TaskKey uint64

// String returns the key as a fixed-width hex string.
func (k TaskKey) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// KeyBuilder incrementally hashes the content of a task specification into a
// TaskKey. Fields are separated by zero bytes so that adjacent values cannot
// collide by concatenation.
type KeyBuilder struct {
	h *xxhash.Digest
}

// NewKeyBuilder creates an empty KeyBuilder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{h: xxhash.New()}
}

// WriteString adds a string field followed by a separator.
func (b *KeyBuilder) WriteString(s string) *KeyBuilder {
	_, _ = b.h.WriteString(s)
	_, _ = b.h.Write([]byte{0})
	return b
}

// Section marks the end of a variable-length field group.
func (b *KeyBuilder) Section() *KeyBuilder {
	_, _ = b.h.Write([]byte{0})
	return b
}

// WriteSpecs adds a list of match specs in the order given.
func (b *KeyBuilder) WriteSpecs(specs []MatchSpec) *KeyBuilder {
	for _, s := range specs {
		b.WriteString(s.Name)
		b.WriteString(s.Constraint)
	}
	return b.Section()
}

// WriteRecords adds a list of package records.
func (b *KeyBuilder) WriteRecords(records []PackageRecord) *KeyBuilder {
	for _, r := range records {
		b.WriteString(r.Name)
		b.WriteString(r.Version)
		b.WriteString(r.Build)
		b.WriteString(string(r.Subdir))
	}
	return b.Section()
}

// WriteStringMap adds a map in sorted key order so the hash is canonical.
func (b *KeyBuilder) WriteStringMap(m map[string]string) *KeyBuilder {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(m[k])
	}
	return b.Section()
}

// Key finalizes the hash.
func (b *KeyBuilder) Key() TaskKey {
	return TaskKey(b.h.Sum64())
}
