package trials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"github.com/spf13/viper"
)

var (
	ErrUnknownPlace   = errors.New("unknown place")
	ErrPlaceNotConfig = errors.New("no graph file configured for place")
)

type Place struct {
	Name      string
	PlaceName string
}

// Registry. places the trial driver runs on, in run order
var Registry = []Place{
	{Name: "Torino", PlaceName: "Turin, Piedmont, Italy"},
	{Name: "Aosta", PlaceName: "Aosta, Aosta, Italy"},
}

func LookupPlace(name string) (Place, error) {
	for _, p := range Registry {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Place{}, util.WrapErrorf(ErrUnknownPlace, util.ErrBadParamInput, "place %q", name)
}

// ConfigKey. viper key holding the graph file path of the place, e.g. places.torino
func (p Place) ConfigKey() string {
	return fmt.Sprintf("places.%s", strings.ToLower(p.Name))
}

// GraphFile. graph file path of the place from the loaded config
func (p Place) GraphFile() (string, error) {
	path := viper.GetString(p.ConfigKey())
	if path == "" {
		return "", util.WrapErrorf(ErrPlaceNotConfig, util.ErrBadParamInput, "%s (%s) missing config key %s",
			p.Name, p.PlaceName, p.ConfigKey())
	}
	return path, nil
}
