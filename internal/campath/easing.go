package campath

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

var easings = map[string]EaseFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

// EasingByName resolves an easing curve by its scene-file name.
func EasingByName(name string) (EaseFunc, error) {
	f, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have %v)", name, easingNames())
	}
	return f, nil
}

func easingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
