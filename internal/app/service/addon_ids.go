package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// AddonIDs is the addons field of product create and update. Clients send
// either a JSON array (numbers or numeric strings) or one comma-separated
// string. Ids are validated as positive integers and de-duplicated in
// first-seen order.
type AddonIDs []uint

func (a *AddonIDs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return invalidf("addons must be an array or a comma-separated string")
	}

	switch v := raw.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		ids, err := ParseAddonIDs(v)
		if err != nil {
			return err
		}
		*a = ids
		return nil
	case []interface{}:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			switch t := item.(type) {
			case json.Number:
				tokens = append(tokens, t.String())
			case string:
				tokens = append(tokens, t)
			default:
				return invalidf("addon ids must be positive integers")
			}
		}
		ids, err := parseIDTokens(tokens)
		if err != nil {
			return err
		}
		*a = ids
		return nil
	}
	return invalidf("addons must be an array or a comma-separated string")
}

// ParseAddonIDs reads the comma-separated form. An empty string is an empty set.
func ParseAddonIDs(raw string) (AddonIDs, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var ids AddonIDs
		if err := ids.UnmarshalJSON([]byte(raw)); err != nil {
			return nil, err
		}
		if ids == nil {
			ids = AddonIDs{}
		}
		return ids, nil
	}
	if raw == "" {
		return AddonIDs{}, nil
	}
	return parseIDTokens(strings.Split(raw, ","))
}

func parseIDTokens(tokens []string) (AddonIDs, error) {
	ids := make(AddonIDs, 0, len(tokens))
	seen := make(map[uint]bool, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil || n == 0 {
			return nil, invalidf("invalid addon id %q", tok)
		}
		id := uint(n)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// diffIDs splits the transition from current to target into ids to add and
// ids to remove. Ids in both are left alone.
func diffIDs(current, target []uint) (add, remove []uint) {
	inCurrent := make(map[uint]bool, len(current))
	for _, id := range current {
		inCurrent[id] = true
	}
	inTarget := make(map[uint]bool, len(target))
	for _, id := range target {
		inTarget[id] = true
		if !inCurrent[id] {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if !inTarget[id] {
			remove = append(remove, id)
		}
	}
	return add, remove
}

// missingIDs lists the requested ids absent from found, in request order.
func missingIDs(requested []uint, found map[uint]bool) []uint {
	var missing []uint
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
