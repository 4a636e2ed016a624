package costfunction

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

var (
	ErrInvalidMaxSpeed = errors.New("invalid maxspeed")
	ErrInvalidLength   = errors.New("invalid edge length")
)

// unit suffixes stripped from a maxspeed token. the number is taken as is, no unit conversion.
var maxSpeedUnits = []string{"km/h", "kmh", "kph", "mph", "knots"}

// NormalizeMaxSpeed. numeric max speed of a raw maxspeed attribute:
// absent -> pkg.DEFAULT_MAXSPEED, list -> slowest candidate, "walk" -> pkg.WALK_MAXSPEED,
// "50 mph" -> 50. speeds below pkg.MIN_MAXSPEED are floored to it.
func NormalizeMaxSpeed(raw datastructure.RawMaxSpeed) (float64, error) {
	if !raw.IsPresent() {
		return pkg.DEFAULT_MAXSPEED, nil
	}

	values := raw.Values()
	if len(values) == 0 {
		return 0, ErrInvalidMaxSpeed
	}

	speed := pkg.INF_WEIGHT
	for _, v := range values {
		s, err := ParseMaxSpeedToken(v)
		if err != nil {
			return 0, err
		}
		speed = min(speed, s)
	}

	return max(speed, pkg.MIN_MAXSPEED), nil
}

// ParseMaxSpeedToken. parse one maxspeed token, e.g. "50", "30 mph", "walk"
func ParseMaxSpeedToken(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if token == pkg.WALK_MAXSPEED_TOKEN {
		return pkg.WALK_MAXSPEED, nil
	}

	number := token
	for _, unit := range maxSpeedUnits {
		if strings.HasSuffix(token, unit) {
			number = strings.TrimSpace(strings.TrimSuffix(token, unit))
			break
		}
	}

	speed, err := strconv.Atoi(number)
	if err != nil {
		return 0, errors.Join(ErrInvalidMaxSpeed, err)
	}
	return float64(speed), nil
}
