// Package enrich merges flat rows with batch-fetched companion records.
// The pattern replaces SQL joins for listings that tolerate a missing
// companion: the row survives and the companion field stays nil.
package enrich

// Lookup collects the distinct keys of rows, fetches the companion
// values in one batch and indexes them by key. Rows whose key has no
// companion are simply absent from the map; callers treat the miss as a
// nil field, not an error. A fetch failure is returned untouched so the
// caller decides whether the listing can proceed unenriched.
func Lookup[R any, V any, K comparable](
	rows []R,
	key func(R) K,
	fetch func(keys []K) ([]V, error),
	valueKey func(V) K,
) (map[K]V, error) {
	index := make(map[K]V)
	if len(rows) == 0 {
		return index, nil
	}

	seen := make(map[K]struct{}, len(rows))
	keys := make([]K, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	values, err := fetch(keys)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		index[valueKey(v)] = v
	}
	return index, nil
}
