package utils

import (
	"fmt"
	"strings"
)

// SliceString joins s as "a,b,c" for log fields.
func SliceString[T any](s []T) string {
	ss := make([]string, 0, len(s))
	for _, v := range s {
		ss = append(ss, fmt.Sprint(v))
	}
	return strings.Join(ss, ",")
}
