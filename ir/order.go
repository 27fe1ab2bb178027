package ir

// OrderLike sorts the fields of the objects under id in t by their position
// in the corresponding objects of the trees likes, earlier trees first.
// Fields found in none of them keep their relative order, last.
func OrderLike(t *Tree, id ID, likes []*Tree, likeIDs []ID) error {
	if t.Type(id) != ObjectType {
		return nil
	}
	rank := map[string]int{}
	n := 0
	for i, lt := range likes {
		fields, _, err := lt.AsObject(likeIDs[i])
		if err != nil {
			continue
		}
		for _, f := range fields {
			if _, ok := rank[f]; !ok {
				rank[f] = n
				n++
			}
		}
	}
	err := t.SortFields(id, func(a, b string) int {
		return rankOf(rank, a, n) - rankOf(rank, b, n)
	})
	if err != nil {
		return err
	}
	fields, values, _ := t.AsObject(id)
	for i, f := range fields {
		var subTrees []*Tree
		var subIDs []ID
		for j, lt := range likes {
			if c, ok := lt.Field(likeIDs[j], f); ok {
				subTrees = append(subTrees, lt)
				subIDs = append(subIDs, c)
			}
		}
		if err := OrderLike(t, values[i], subTrees, subIDs); err != nil {
			return err
		}
	}
	return nil
}

func rankOf(rank map[string]int, k string, n int) int {
	if r, ok := rank[k]; ok {
		return r
	}
	return n
}
