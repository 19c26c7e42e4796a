package resources

// idOf reads an identifier out of a bare number or an {id, ...} object.
func idOf(v any) any {
	if m, ok := v.(map[string]any); ok {
		return m["id"]
	}
	return v
}

// firstID reads the id of the first element of a list of references.
func firstID(v any) any {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	return idOf(list[0])
}

// idList maps a list of references to their ids.
func idList(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, 0, len(list))
	for _, e := range list {
		out = append(out, idOf(e))
	}
	return out
}

// firstOf returns the first non-nil value stored under keys.
func firstOf(record map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := record[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
