package datastructure

import "strings"

const (
	maxSpeedSeparator = ";"
	maxSpeedNone      = "none:"
	maxSpeedOne       = "one:"
	maxSpeedList      = "list:"
)

// RawMaxSpeed. maxspeed attribute as it comes from the map provider: absent, one token (e.g. "50", "30 mph", "walk"),
// or a list of candidate tokens (osm "50;30", or several ways merged into one edge).
type RawMaxSpeed struct {
	values  []string
	present bool
	list    bool
}

func NoMaxSpeed() RawMaxSpeed {
	return RawMaxSpeed{}
}

func NewMaxSpeed(value string) RawMaxSpeed {
	return RawMaxSpeed{values: []string{value}, present: true}
}

func NewMaxSpeedList(values ...string) RawMaxSpeed {
	cp := make([]string, len(values))
	copy(cp, values)
	return RawMaxSpeed{values: cp, present: true, list: true}
}

func (r RawMaxSpeed) IsPresent() bool {
	return r.present
}

func (r RawMaxSpeed) IsList() bool {
	return r.list
}

// Values. the raw tokens, one element for a single value
func (r RawMaxSpeed) Values() []string {
	return r.values
}

// Value. the single token, empty for absent or list values
func (r RawMaxSpeed) Value() string {
	if !r.present || r.list {
		return ""
	}
	return r.values[0]
}

// Encode. text form used by the graph file, inverse of DecodeRawMaxSpeed
func (r RawMaxSpeed) Encode() string {
	switch {
	case !r.present:
		return maxSpeedNone
	case r.list:
		return maxSpeedList + strings.Join(r.values, maxSpeedSeparator)
	default:
		return maxSpeedOne + r.values[0]
	}
}

func (r RawMaxSpeed) String() string {
	if !r.present {
		return "<none>"
	}
	if r.list {
		return "[" + strings.Join(r.values, ", ") + "]"
	}
	return r.values[0]
}

func DecodeRawMaxSpeed(s string) RawMaxSpeed {
	switch {
	case strings.HasPrefix(s, maxSpeedList):
		return NewMaxSpeedList(strings.Split(strings.TrimPrefix(s, maxSpeedList), maxSpeedSeparator)...)
	case strings.HasPrefix(s, maxSpeedOne):
		return NewMaxSpeed(strings.TrimPrefix(s, maxSpeedOne))
	default:
		return NoMaxSpeed()
	}
}
