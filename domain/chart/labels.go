package chart

// Shared label/dataset utilities. The surface identifies datasets by
// label string only, so every insert goes through replace-by-label to
// keep labels unique.

// removeByLabel returns the dataset list without any entry carrying one
// of the given labels. Order of the survivors is preserved.
func removeByLabel(datasets []Dataset, labels ...string) []Dataset {
	drop := make(map[string]bool, len(labels))
	for _, l := range labels {
		drop[l] = true
	}
	kept := datasets[:0:0]
	for _, d := range datasets {
		if !drop[d.Label] {
			kept = append(kept, d)
		}
	}
	return kept
}

// replaceByLabel removes any existing dataset with the same label and
// appends the replacement (replace, not append).
func replaceByLabel(datasets []Dataset, d Dataset) []Dataset {
	return append(removeByLabel(datasets, d.Label), d)
}

// hasLabel reports whether a dataset with the label exists in the list
func hasLabel(datasets []Dataset, label string) bool {
	for _, d := range datasets {
		if d.Label == label {
			return true
		}
	}
	return false
}
