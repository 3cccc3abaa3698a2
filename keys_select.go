package gokeyset

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// SelectKeys resolves user supplied key names (e.g. from a "sort" query
// parameter) against the declared keys, preserving the requested order.
// Unknown names fail with a hint naming the closest declared key.
func SelectKeys[T any](names []string, available ...OrderingKey[T]) ([]OrderingKey[T], error) {
	byName := lo.KeyBy(available, func(k OrderingKey[T]) string { return k.name })
	aliases := lo.Keys(byName)

	ret := make([]OrderingKey[T], 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)

		key, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key '%s'. closest: '%s'", ErrInvalidConfig, name, closestAlias(name, aliases))
		}
		if lo.ContainsBy(ret, func(k OrderingKey[T]) bool { return k.name == name }) {
			return nil, fmt.Errorf("%w: key '%s' selected twice", ErrInvalidConfig, name)
		}

		ret = append(ret, key)
	}

	return ret, nil
}

func closestAlias(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
