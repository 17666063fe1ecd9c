package types

import (
	"fmt"
	"sort"
	"strings"
)

// BCFLAG is the boundary condition kind a boundary tag resolves to
type BCFLAG uint8

const (
	BC_None        BCFLAG = iota
	BC_Wall               // Ghost state is zero on inflow
	BC_In                 // Ghost state is the prescribed inflow value on inflow
	BC_Extrapolate        // Ghost state is the interior state
)

var BCNameMap = map[string]BCFLAG{
	"wall":        BC_Wall,
	"inflow":      BC_In,
	"in":          BC_In,
	"extrapolate": BC_Extrapolate,
	"outflow":     BC_Extrapolate,
	"out":         BC_Extrapolate,
	"symmetry":    BC_Extrapolate,
	"noop":        BC_Extrapolate,
}

var bcPrintNames = []string{"None", "Wall", "Inflow", "Extrapolate"}

func (bf BCFLAG) String() string {
	if int(bf) < len(bcPrintNames) {
		return bcPrintNames[bf]
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bf))
}

func NewBCFLAG(label string) (bf BCFLAG, err error) {
	var ok bool
	if bf, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition kind %q", label)
	}
	return
}

/*
BCTAG is the integer tag attached to a boundary face by the mesh. The rectangular
mesh labels its four sides in this order:

	1: ymin, 2: xmax, 3: ymax, 4: xmin
*/
type BCTAG int

const (
	BC_YMin BCTAG = iota + 1
	BC_XMax
	BC_YMax
	BC_XMin
)

var BCTagNames = map[BCTAG]string{
	BC_YMin: "ymin",
	BC_XMax: "xmax",
	BC_YMax: "ymax",
	BC_XMin: "xmin",
}

func (bt BCTAG) String() string {
	if name, ok := BCTagNames[bt]; ok {
		return name
	}
	return fmt.Sprintf("tag-%d", int(bt))
}

func NewBCTAG(name string) (bt BCTAG, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for tag, tagName := range BCTagNames {
		if tagName == name {
			return tag, nil
		}
	}
	err = fmt.Errorf("unknown boundary name %q", name)
	return
}

// SortedTags returns the keys of a tag map in ascending order
func SortedTags[T any](m map[BCTAG]T) (tags []BCTAG) {
	tags = make([]BCTAG, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return
}
