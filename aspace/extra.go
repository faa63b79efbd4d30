package aspace

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var knownKeysCache sync.Map // reflect.Type -> map[string]bool

// unmarshalWithExtra decodes data into v (a pointer to struct) and returns
// every top-level key v does not model
func unmarshalWithExtra(data []byte, v interface{}) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	known := knownKeys(reflect.TypeOf(v).Elem())
	for k, raw := range all {
		if known[k] {
			delete(all, k)
			continue
		}
		// Compact so decoded copies of the same record compare equal
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			all[k] = buf.Bytes()
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes v and adds the preserved keys back.
// Modeled fields take precedence over a preserved key of the same name.
func marshalWithExtra(v interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	known := knownKeys(reflect.TypeOf(v))
	for k, raw := range extra {
		if known[k] {
			continue
		}
		all[k] = raw
	}
	return json.Marshal(all)
}

// knownKeys lists the JSON names of a struct's exported fields
func knownKeys(t reflect.Type) map[string]bool {
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]bool)
	}

	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		keys[name] = true
	}

	knownKeysCache.Store(t, keys)
	return keys
}
