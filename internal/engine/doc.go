// Package engine runs a rule set over the aligned mapping of N libraries and
// aggregates the findings into an ordered list of differences.
//
// A run is single-threaded and synchronous:
//
//  1. The libraries are aligned with mapping.Mapper using the engine filter.
//  2. The mapping tree is walked depth-first in pre-order (namespaces, types,
//     nested types, members), each level sorted by key.
//  3. At every node all selected rules run before any child is visited.
//  4. Nodes that exist on a single side of several are not descended into
//     unless AlwaysDiffMembers is set, so a removed type is reported once.
//  5. Per node, the Aggregator keeps only the findings of the highest
//     severity.
//
// A rule error aborts the run: Run returns a *RuleError and no result, so an
// aborted run can never be mistaken for a clean one. Identical inputs and
// options produce identical results.
package engine
