package runner

import (
	"fmt"
	"strings"

	v1 "github.com/infracollect/arcwrap/apis/v1"
	"github.com/samber/lo"
)

const (
	ExtractKind  = "extract"
	SevenZipKind = "sevenZip"
	TarKind      = "tar"
)

// ResolvedSpec holds a kind identifier and the spec for that kind.
type ResolvedSpec struct {
	Kind string
	Spec any
}

// ResolveTaskSpec extracts the kind and spec from a v1.Task.
// Exactly one operation must be set.
func ResolveTaskSpec(t v1.Task) (ResolvedSpec, error) {
	var specs []ResolvedSpec
	if t.Extract != nil {
		specs = append(specs, ResolvedSpec{Kind: ExtractKind, Spec: t.Extract})
	}
	if t.SevenZip != nil {
		specs = append(specs, ResolvedSpec{Kind: SevenZipKind, Spec: t.SevenZip})
	}
	if t.Tar != nil {
		specs = append(specs, ResolvedSpec{Kind: TarKind, Spec: t.Tar})
	}

	switch len(specs) {
	case 0:
		return ResolvedSpec{}, fmt.Errorf("task %q has no type specified", t.ID)
	case 1:
		return specs[0], nil
	default:
		kinds := lo.Map(specs, func(s ResolvedSpec, _ int) string { return s.Kind })
		return ResolvedSpec{}, fmt.Errorf("task %q has more than one type specified: %s", t.ID, strings.Join(kinds, ", "))
	}
}
