package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/costfunction"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type Format int

const (
	FORMAT_PBF Format = iota
	FORMAT_XML
)

// FormatFromFilename. .osm and .xml extracts are read as xml, everything else as pbf.
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".osm", ".xml":
		return FORMAT_XML
	default:
		return FORMAT_PBF
	}
}

type OsmParser struct {
	wayNodeMap       map[int64]NodeType
	nodeCoords       map[int64]nodeCoord
	ways             []osmWay
	droppedMaxSpeeds int
	logger           *zap.Logger
}

func NewOsmParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap: make(map[int64]NodeType),
		nodeCoords: make(map[int64]nodeCoord),
		ways:       make([]osmWay, 0),
		logger:     logger,
	}
}

// GetDroppedMaxSpeeds. number of maxspeed tokens dropped because they could not be read as a speed
func (p *OsmParser) GetDroppedMaxSpeeds() int {
	return p.droppedMaxSpeeds
}

// Parse. build the drive network graph of an openstreetmap extract. edge weights are not assigned here.
func (p *OsmParser) Parse(mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "osmparser.Parse: open %s", mapFile)
	}
	defer f.Close()

	return p.ParseReader(context.Background(), f, FormatFromFilename(mapFile))
}

func (p *OsmParser) ParseReader(ctx context.Context, r io.ReadSeeker, format Format) (*datastructure.Graph, error) {
	newScanner := func() (osm.Scanner, error) {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if format == FORMAT_XML {
			return osmxml.New(ctx, r), nil
		}
		return osmpbf.New(ctx, r, 0), nil
	}

	// ways first: node coordinates are only kept for nodes of accepted ways.
	scanner, err := newScanner()
	if err != nil {
		return nil, err
	}
	if err := p.scanWays(scanner); err != nil {
		return nil, fmt.Errorf("osmparser: scanning ways: %w", err)
	}

	scanner, err = newScanner()
	if err != nil {
		return nil, err
	}
	if err := p.scanNodes(scanner); err != nil {
		return nil, fmt.Errorf("osmparser: scanning nodes: %w", err)
	}

	g, err := p.buildGraph()
	if err != nil {
		return nil, err
	}

	p.logger.Sugar().Infof("openstreetmap graph: %d ways, %d vertices, %d edges, %d maxspeed tokens dropped",
		len(p.ways), g.NumberOfVertices(), g.NumberOfEdges(), p.droppedMaxSpeeds)
	return g, nil
}

// must not be parallel
func (p *OsmParser) scanWays(scanner osm.Scanner) error {
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		forward, backward := wayDirections(way)
		if !forward && !backward {
			continue
		}

		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		nodes := make([]int64, len(way.Nodes))
		for i, node := range way.Nodes {
			id := int64(node.ID)
			nodes[i] = id
			if _, ok := p.wayNodeMap[id]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[id] = END_NODE
				} else {
					p.wayNodeMap[id] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[id] = JUNCTION_NODE
			}
		}

		p.ways = append(p.ways, osmWay{
			id:       int64(way.ID),
			nodes:    nodes,
			highway:  way.Tags.Find("highway"),
			maxSpeed: way.Tags.Find("maxspeed"),
			forward:  forward,
			backward: backward,
		})
	}
	return scanner.Err()
}

func (p *OsmParser) scanNodes(scanner osm.Scanner) error {
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		id := int64(node.ID)
		if _, ok := p.wayNodeMap[id]; !ok {
			continue
		}
		p.nodeCoords[id] = nodeCoord{lat: node.Lat, lon: node.Lon}
	}
	return scanner.Err()
}

// buildGraph. every way is cut into segments at junction nodes. a segment becomes one edge per allowed direction,
// keeping the intermediate nodes as geometry.
func (p *OsmParser) buildGraph() (*datastructure.Graph, error) {
	g := datastructure.NewGraph()

	for _, way := range p.ways {
		rawMaxSpeed := p.parseMaxSpeedTag(way.id, way.maxSpeed)
		highwayType := pkg.GetHighwayType(way.highway)

		segment := make([]int64, 0, len(way.nodes))
		for i, id := range way.nodes {
			if _, ok := p.nodeCoords[id]; !ok {
				// node outside the extract, the way is cut here
				if err := p.processSegment(g, way, segment, rawMaxSpeed, highwayType); err != nil {
					return nil, err
				}
				segment = make([]int64, 0, len(way.nodes)-i)
				continue
			}
			segment = append(segment, id)
			if len(segment) > 1 && p.wayNodeMap[id] == JUNCTION_NODE {
				if err := p.processSegment(g, way, segment, rawMaxSpeed, highwayType); err != nil {
					return nil, err
				}
				segment = []int64{id}
			}
		}
		if err := p.processSegment(g, way, segment, rawMaxSpeed, highwayType); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (p *OsmParser) processSegment(g *datastructure.Graph, way osmWay, segment []int64,
	rawMaxSpeed datastructure.RawMaxSpeed, highwayType pkg.OsmHighwayType) error {
	if len(segment) < 2 {
		return nil
	}
	if len(segment) == 2 && segment[0] == segment[1] {
		return nil
	}
	if segment[0] == segment[len(segment)-1] {
		// closed way without junction, cut it in two so no edge is a self loop
		if err := p.addSegmentEdges(g, way, segment[:len(segment)-1], rawMaxSpeed, highwayType); err != nil {
			return err
		}
		return p.addSegmentEdges(g, way, segment[len(segment)-2:], rawMaxSpeed, highwayType)
	}
	return p.addSegmentEdges(g, way, segment, rawMaxSpeed, highwayType)
}

func (p *OsmParser) addSegmentEdges(g *datastructure.Graph, way osmWay, segment []int64,
	rawMaxSpeed datastructure.RawMaxSpeed, highwayType pkg.OsmHighwayType) error {
	geometry := make([]geo.Coordinate, len(segment))
	for i, id := range segment {
		c := p.nodeCoords[id]
		geometry[i] = geo.NewCoordinate(c.lat, c.lon)
	}

	length := geo.PolylineLength(geometry)
	if length < pkg.MIN_EDGE_LENGTH {
		length = pkg.MIN_EDGE_LENGTH
	}

	firstId, lastId := segment[0], segment[len(segment)-1]
	from := g.AddNode(firstId, geometry[0].Lat, geometry[0].Lon)
	to := g.AddNode(lastId, geometry[len(geometry)-1].Lat, geometry[len(geometry)-1].Lon)

	if way.forward {
		if _, err := g.AddEdge(from, to, length, rawMaxSpeed, highwayType, geometry); err != nil {
			return err
		}
	}
	if way.backward {
		if _, err := g.AddEdge(to, from, length, rawMaxSpeed, highwayType, util.ReverseG(geometry)); err != nil {
			return err
		}
	}
	return nil
}

// parseMaxSpeedTag. split the maxspeed tag on ";". tokens that are not a speed (e.g. "signals", "IT:urban") are
// dropped here so the cost function only ever sees readable values.
func (p *OsmParser) parseMaxSpeedTag(wayId int64, tag string) datastructure.RawMaxSpeed {
	if strings.TrimSpace(tag) == "" {
		return datastructure.NoMaxSpeed()
	}

	kept := make([]string, 0, 1)
	for _, token := range strings.Split(tag, ";") {
		token = strings.TrimSpace(token)
		if _, err := costfunction.ParseMaxSpeedToken(token); err != nil {
			p.droppedMaxSpeeds++
			p.logger.Debug("dropping maxspeed token", zap.Int64("way", wayId), zap.String("maxspeed", token))
			continue
		}
		kept = append(kept, token)
	}

	switch len(kept) {
	case 0:
		return datastructure.NoMaxSpeed()
	case 1:
		if strings.Contains(tag, ";") {
			return datastructure.NewMaxSpeedList(kept...)
		}
		return datastructure.NewMaxSpeed(kept[0])
	default:
		return datastructure.NewMaxSpeedList(kept...)
	}
}

func acceptOsmWay(way *osm.Way) bool {
	if _, ok := acceptedHighway[way.Tags.Find("highway")]; !ok {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	for _, key := range []string{"access", "motor_vehicle", "motorcar"} {
		if _, ok := rejectedAccess[way.Tags.Find(key)]; ok {
			return false
		}
	}
	return true
}

// wayDirections. {forward, backward} travel allowed along the way node order
func wayDirections(way *osm.Way) (bool, bool) {
	switch way.Tags.Find("oneway") {
	case "-1", "reverse":
		return false, true
	case "yes", "true", "1":
		return true, false
	case "no", "false", "0":
		return true, true
	}
	if way.Tags.Find("junction") == "roundabout" {
		return true, false
	}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	return !(okvf || okmvf), !(okvb || okmvb)
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}
