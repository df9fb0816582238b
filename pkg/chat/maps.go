package chat

import "fmt"

func stringKey(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", missingKey(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Key: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

func listKey(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, missingKey(key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, &DecodeError{Key: key, Reason: fmt.Sprintf("expected list, got %T", v)}
	}
	return l, nil
}
