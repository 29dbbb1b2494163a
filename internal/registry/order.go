package registry

import "fmt"

// orderEntries computes the final order of one level's candidate list and
// records it when the store learned something new. mode is the effective
// ordering of the containing group: Strong levels keep authored order and
// never touch the store.
//
// The order is decided in tiers. Recorded order is the ranking seed: items
// the store already knows keep their recorded positions, and their hints are
// not re-litigated. New items slot in by hint: Begin floats to the front,
// Before/After insert adjacent to their anchor, everything else appends in
// arrival order with End-hinted items after Unspecified ones. Hints the
// computed order cannot honor are flagged rather than resolved by guesswork.
func (w *walker) orderEntries(path Path, mode Ordering, entries []*centry) []*centry {
	pathKey := path.String()

	var stored []string
	known := false
	useStore := mode != OrderingStrong && w.m.store != nil
	if useStore {
		stored, known = w.m.store.Get(w.m.rootKey, pathKey)
	}

	seq := w.computeOrder(pathKey, entries, stored)

	if !useStore {
		return seq
	}

	final := identifiers(seq)
	if len(final) == 0 {
		return seq
	}

	if !known {
		if err := w.m.store.Set(w.m.rootKey, pathKey, final); err != nil {
			w.reportPersist(pathKey, err)
		}
		return seq
	}

	if merged, added := spliceOrder(stored, final); added {
		if err := w.m.store.Set(w.m.rootKey, pathKey, merged); err != nil {
			w.reportPersist(pathKey, err)
		}
	}
	return seq
}

func (w *walker) reportPersist(pathKey string, err error) {
	w.report(Diagnostic{
		Kind:   DiagOrderingPersist,
		Path:   pathKey,
		Detail: fmt.Sprintf("recording order: %v", err),
	})
}

// computeOrder arranges entries into their final sequence. entries arrive in
// presence order: default-tree contributions before registered ones.
func (w *walker) computeOrder(pathKey string, entries []*centry, stored []string) []*centry {
	rank := make(map[string]int, len(stored))
	for i, name := range stored {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}

	seeded := func(e *centry) bool {
		if e.name == "" {
			return false
		}
		_, ok := rank[e.name]
		return ok
	}

	// Tier the entries. Within every tier presence order is preserved;
	// the seeded tier sorts by recorded rank.
	var front, ranked, normal, back []*centry
	for _, e := range entries {
		switch {
		case seeded(e):
			ranked = append(ranked, e)
		case e.hint.Kind() == HintBegin:
			front = append(front, e)
		case e.hint.Kind() == HintEnd:
			back = append(back, e)
		default:
			normal = append(normal, e)
		}
	}
	stableSortByRank(ranked, rank)

	seq := make([]*centry, 0, len(entries))
	seq = append(seq, front...)
	seq = append(seq, ranked...)
	seq = append(seq, normal...)
	seq = append(seq, back...)

	// Place new Before/After items adjacent to their anchors, in presence
	// order so stacked hints against one anchor read in arrival order.
	placedAfter := make(map[*centry]int)
	for _, e := range entries {
		if seeded(e) || !isRelative(e.hint) {
			continue
		}
		seq = w.placeRelative(pathKey, seq, e, placedAfter)
	}

	// Recorded items keep their recorded slots even when a hint now points
	// elsewhere. Re-litigating hints on every visit would shuffle an order
	// the user has already learned, or edited by hand. Flag what the
	// computed order leaves violated instead.
	for _, e := range entries {
		if !isRelative(e.hint) {
			continue
		}
		if anchorIndex(seq, e) < 0 || satisfied(seq, e) {
			continue
		}
		w.report(Diagnostic{
			Kind:   DiagUnsatisfiableHint,
			Path:   pathKey,
			Name:   e.name,
			Detail: fmt.Sprintf("hint %s left unsatisfied by the computed order", e.hint),
		})
	}

	return seq
}

func isRelative(h Hint) bool {
	return h.Kind() == HintBefore || h.Kind() == HintAfter
}

// placeRelative moves e next to its anchor, emitting a diagnostic and
// leaving e in place when the anchor cannot be resolved.
func (w *walker) placeRelative(pathKey string, seq []*centry, e *centry, placedAfter map[*centry]int) []*centry {
	anchorIdx := anchorIndex(seq, e)
	if anchorIdx < 0 {
		detail := fmt.Sprintf("hint %s: no such sibling; keeping arrival position", e.hint)
		if e.name != "" && e.name == e.hint.Anchor() {
			detail = fmt.Sprintf("hint %s names the item itself; keeping arrival position", e.hint)
		}
		w.report(Diagnostic{
			Kind:   DiagUnsatisfiableHint,
			Path:   pathKey,
			Name:   e.name,
			Detail: detail,
		})
		return seq
	}

	from := indexOfEntry(seq, e)
	anchor := seq[anchorIdx]
	seq = append(seq[:from], seq[from+1:]...)

	at := indexOfEntry(seq, anchor)
	if e.hint.Kind() == HintAfter {
		at += 1 + placedAfter[anchor]
		placedAfter[anchor]++
	}

	seq = append(seq, nil)
	copy(seq[at+1:], seq[at:])
	seq[at] = e
	return seq
}

// anchorIndex returns the first entry named by e's hint anchor, excluding e
// itself, or -1.
func anchorIndex(seq []*centry, e *centry) int {
	for i, cand := range seq {
		if cand != e && cand.name == e.hint.Anchor() && cand.name != "" {
			return i
		}
	}
	return -1
}

func indexOfEntry(seq []*centry, e *centry) int {
	for i, cand := range seq {
		if cand == e {
			return i
		}
	}
	return -1
}

// satisfied reports whether e's Before/After constraint holds in seq.
// Unresolvable anchors count as satisfied; they are reported elsewhere.
func satisfied(seq []*centry, e *centry) bool {
	anchorIdx := anchorIndex(seq, e)
	if anchorIdx < 0 {
		return true
	}
	idx := indexOfEntry(seq, e)
	if e.hint.Kind() == HintBefore {
		return idx < anchorIdx
	}
	return idx > anchorIdx
}

// stableSortByRank orders seeded entries by recorded rank, keeping presence
// order for entries that share a name.
func stableSortByRank(entries []*centry, rank map[string]int) {
	// Insertion sort: level sizes are menu-sized and stability matters.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0; j-- {
			a, b := entries[j-1], entries[j]
			if keyLess(rank, b, a) {
				entries[j-1], entries[j] = b, a
			} else {
				break
			}
		}
	}
}

func keyLess(rank map[string]int, a, b *centry) bool {
	ra, rb := rank[a.name], rank[b.name]
	if ra != rb {
		return ra < rb
	}
	return a.seq < b.seq
}

// identifiers returns the non-empty names of seq in order, first occurrence
// only.
func identifiers(seq []*centry) []string {
	names := make([]string, 0, len(seq))
	seen := make(map[string]struct{}, len(seq))
	for _, e := range seq {
		if e.name == "" {
			continue
		}
		if _, ok := seen[e.name]; ok {
			continue
		}
		seen[e.name] = struct{}{}
		names = append(names, e.name)
	}
	return names
}

// spliceOrder inserts names newly present in final into the recorded order,
// each immediately after its nearest already-recorded predecessor in final,
// so absent recorded items keep their slots. It reports whether anything was
// added.
func spliceOrder(stored, final []string) ([]string, bool) {
	recorded := make(map[string]struct{}, len(stored))
	for _, n := range stored {
		recorded[n] = struct{}{}
	}

	merged := make([]string, len(stored), len(stored)+len(final))
	copy(merged, stored)
	added := false

	for i, name := range final {
		if _, ok := recorded[name]; ok {
			continue
		}
		at := 0
		for j := i - 1; j >= 0; j-- {
			if idx := indexOfName(merged, final[j]); idx >= 0 {
				at = idx + 1
				break
			}
		}
		merged = append(merged, "")
		copy(merged[at+1:], merged[at:])
		merged[at] = name
		recorded[name] = struct{}{}
		added = true
	}
	return merged, added
}

func indexOfName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
