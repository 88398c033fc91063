//go:build unit || e2e

package testutil

func Set(key string, value any) Mutation {
	return func(m map[string]any) { m[key] = value }
}

func Drop(key string) Mutation {
	return func(m map[string]any) { delete(m, key) }
}
