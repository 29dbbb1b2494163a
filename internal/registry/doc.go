// Package registry implements the order-preserving item registration and
// merge system at the heart of menu assembly.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the item variants (SingleItem, GroupItem, IndirectItem, ComputedItem)
//     and value objects (Hint, Placement, Path, Diagnostic)
//   - Implements domain logic (path resolution, tree merge, hint placement,
//     first-seen order recording)
//   - Has no knowledge of infrastructure concerns (YAML parsing, persistence
//     backends, rendering)
//
// # Item Variants
//
// Items form a closed set. SingleItem is a terminal leaf and the only variant
// designed for embedding, so callers can attach domain payloads to leaves.
// GroupItem is an ordered container with an Ordering mode: OrderingAnonymous
// groups are transparent at merge time (their children join the parent's
// sequence), OrderingWeak groups merge and reorder freely, and OrderingStrong
// groups keep their authored child order. IndirectItem (built with Shared)
// lets one constructed subtree be registered in several places. ComputedItem
// (built with Computed) defers to a factory invoked fresh on every visit; a
// nil result contributes nothing that time.
//
// # Registration
//
// RegisterItem appends an item into a root group under a slash-separated
// placement path, creating missing intermediate groups on demand. Duplicate
// names never fail registration; the merge resolves them later. RegisteredItem
// and RegisterAll exist for bootstrap sequences that declare their
// contributions up front and apply them in a deterministic order.
//
// # Merge and Visit
//
// A Merger combines an authored default tree with a dynamically registered
// tree into a single traversal, walked through the three-callback Visitor
// contract. Sibling order is decided per group: recorded order from the
// OrderingStore seeds the ranking, new items slot in by their Hint (Before,
// After, Begin, End), and the resulting order is recorded so later runs keep
// items where users first saw them. Structural conflicts degrade
// deterministically and surface as Diagnostics; a visit never fails.
//
// The merge is recomputed on every Visit call. Nothing is cached between
// calls except what the OrderingStore persists.
package registry
