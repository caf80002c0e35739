// Package mapping aligns N symbol trees into one tree of Mapping nodes.
//
// A Mapping holds one optional slot per side. All non-nil slots share an
// identity key and at least one slot is always non-nil; side 0 is the
// baseline. The aligned tree mirrors the symbol hierarchy:
//
//	Tree
//	└── NamespaceMapping  (N:...)
//	    └── TypeMapping   (T:...)
//	        ├── TypeMapping    nested types
//	        └── MemberMapping  (M:, F:, P:, E:...)
//
// Every level is sorted by key using ordinal string comparison, so two runs
// over the same input produce the same tree.
//
// # Wholesale nodes
//
// A type present on exactly one side is added or removed wholesale. Unless
// AlwaysDiffMembers is set, its members and nested types are not mapped, so
// the type is reported once instead of once per member.
//
// # Duplicate keys
//
// When two symbols of one side produce the same key, the later one shadows
// the earlier in that slot and a duplicate_identity warning carrying the key
// and the side index is attached to the node and to the tree.
package mapping
