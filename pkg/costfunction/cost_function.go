package costfunction

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
)

type EdgeAttributes interface {
	GetEdgeId() datastructure.Index
	GetLength() float64
	GetRawMaxSpeed() datastructure.RawMaxSpeed
}

type CostFunction interface {
	GetMaxSpeed(e EdgeAttributes) (float64, error)
	GetWeight(e EdgeAttributes) (float64, error)
}

// TravelTimeCostFunction. weight = length (meter) / max speed (km/h)
type TravelTimeCostFunction struct{}

func NewTravelTimeCostFunction() *TravelTimeCostFunction {
	return &TravelTimeCostFunction{}
}

func (tf *TravelTimeCostFunction) GetMaxSpeed(e EdgeAttributes) (float64, error) {
	speed, err := NormalizeMaxSpeed(e.GetRawMaxSpeed())
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrBadParamInput, "edge %d: cannot parse maxspeed %v",
			e.GetEdgeId(), e.GetRawMaxSpeed())
	}
	return speed, nil
}

func (tf *TravelTimeCostFunction) GetWeight(e EdgeAttributes) (float64, error) {
	if !(e.GetLength() > 0) {
		return 0, util.WrapErrorf(ErrInvalidLength, util.ErrBadParamInput, "edge %d: length %v must be positive",
			e.GetEdgeId(), e.GetLength())
	}
	speed, err := tf.GetMaxSpeed(e)
	if err != nil {
		return 0, err
	}
	return e.GetLength() / speed, nil
}

// AssignWeights. set normalized max speed & weight of every edge of g. stops at the first malformed edge.
func AssignWeights(g *datastructure.Graph, cf CostFunction, log *zap.Logger) error {
	var err error
	defaulted := 0
	g.ForEdges(func(e *datastructure.Edge) {
		if err != nil {
			return
		}
		var speed, weight float64
		speed, err = cf.GetMaxSpeed(e)
		if err != nil {
			return
		}
		weight, err = cf.GetWeight(e)
		if err != nil {
			return
		}
		if !e.GetRawMaxSpeed().IsPresent() {
			defaulted++
		}
		e.SetMaxSpeedAndWeight(speed, weight)
	})
	if err != nil {
		return err
	}

	log.Sugar().Infof("assigned weights to %d edges, %d without maxspeed defaulted to %v km/h",
		g.NumberOfEdges(), defaulted, pkg.DEFAULT_MAXSPEED)
	return nil
}
