package response

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// copyAs fills a T from src by field name. The response types mirror the domain types, so a
// copier error is a programming mistake and panics into the recovery middleware.
func copyAs[T any](src any) T {
	var out T
	if err := copier.Copy(&out, src); err != nil {
		panic(fmt.Sprintf("response: copy %T: %v", src, err))
	}
	return out
}

func copyAll[T any, S any](src []S) []T {
	out := make([]T, len(src))
	for i := range src {
		out[i] = copyAs[T](&src[i])
	}
	return out
}
