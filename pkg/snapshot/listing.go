package snapshot

// Listing maps a world id onto the snapshots found for it. The order of
// each slice is not significant.
type Listing map[string][]ID

func (listing Listing) Add(id ID) {
	listing[id.WorldID] = append(listing[id.WorldID], id)
}

// World returns a sorted copy of the snapshots of one world. Ids filed under
// the world but carrying another world id are dropped, as are duplicates.
func (listing Listing) World(worldID string) []ID {
	var (
		ids  = []ID{}
		seen = map[string]bool{}
	)

	for _, id := range listing[worldID] {
		if id.WorldID != worldID || seen[id.Name] {
			continue
		}

		seen[id.Name] = true
		ids = append(ids, id)
	}

	Sort(ids)

	return ids
}

// Count returns the number of snapshots across all worlds.
func (listing Listing) Count() int {
	var count int
	for _, ids := range listing {
		count += len(ids)
	}

	return count
}
