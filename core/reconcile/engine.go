package reconcile

import "sort"

// Reconcile classifies incoming records against existing ones by key and fingerprint.
// It does not mutate its inputs.
func Reconcile[T Item](incoming, existing []T, opts Options) (*Plan[T], error) {
	index, err := indexExisting(existing)
	if err != nil {
		return nil, err
	}

	candidates, duplicates, err := dedupeIncoming(incoming, opts.Duplicates)
	if err != nil {
		return nil, err
	}

	plan := &Plan[T]{DuplicateKeys: duplicates}
	unchanged := 0

	for _, item := range candidates {
		key := item.ReconcileKey()
		current, found := index[key]
		if !found {
			plan.Inserts = append(plan.Inserts, item)
			continue
		}

		if current.ReconcileFingerprint() != item.ReconcileFingerprint() {
			plan.Updates = append(plan.Updates, item)
		} else {
			unchanged++
		}
		// Seen: whatever is left in the index was dropped from the snapshot
		delete(index, key)
	}

	plan.Deletes = make([]string, 0, len(index))
	for key := range index {
		plan.Deletes = append(plan.Deletes, key)
	}
	sort.Strings(plan.Deletes)

	plan.Summary = PlanSummary{
		Incoming:   len(incoming),
		Existing:   len(existing),
		Inserts:    len(plan.Inserts),
		Updates:    len(plan.Updates),
		Deletes:    len(plan.Deletes),
		Unchanged:  unchanged,
		Duplicates: len(duplicates),
	}

	return plan, nil
}

// indexExisting maps stored records by key, rejecting repeated keys.
func indexExisting[T Item](existing []T) (map[string]T, error) {
	index := make(map[string]T, len(existing))
	for _, item := range existing {
		key := item.ReconcileKey()
		if _, dup := index[key]; dup {
			return nil, &DuplicateIdentityError{Source: SourceExisting, Key: key}
		}
		index[key] = item
	}
	return index, nil
}

// dedupeIncoming collapses repeated keys according to policy.
// With LastWriteWins a key keeps its first position and its last content.
func dedupeIncoming[T Item](incoming []T, policy DuplicatePolicy) ([]T, []string, error) {
	positions := make(map[string]int, len(incoming))
	out := make([]T, 0, len(incoming))
	var duplicates []string
	reported := make(map[string]struct{})

	for _, item := range incoming {
		key := item.ReconcileKey()
		pos, seen := positions[key]
		if !seen {
			positions[key] = len(out)
			out = append(out, item)
			continue
		}

		if policy == FailFast {
			return nil, nil, &DuplicateIdentityError{Source: SourceIncoming, Key: key}
		}
		out[pos] = item
		if _, ok := reported[key]; !ok {
			reported[key] = struct{}{}
			duplicates = append(duplicates, key)
		}
	}

	return out, duplicates, nil
}
