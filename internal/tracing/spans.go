package tracing

// Span names for the assemble pipeline.
const (
	SpanAssemble = "menus.assemble"
	SpanLoad     = "fragments.load"
	SpanMerge    = "menus.merge"
	SpanFlush    = "ordering.flush"
)

// Span attribute keys.
const (
	// Fragment attributes
	AttrFragmentCount  = "fragments.count"
	AttrFragmentFailed = "fragments.failed"

	// Snapshot attributes
	AttrSnapshotID = "snapshot.id"
	AttrItemCount  = "snapshot.items"
	AttrGroupCount = "snapshot.groups"

	// Merge attributes
	AttrDiagnosticCount = "merge.diagnostics"
	AttrRootKey         = "merge.root_key"

	// Ordering store attributes
	AttrStoreBackend = "ordering.backend"

	// Error attributes
	AttrErrorMessage = "error.message"
)
