package usecases

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

// coordinates are cached at ~0.1 m resolution
const snapCachePrecision = 1e6

type snapKey struct {
	lat int64
	lon int64
}

func newSnapKey(lat, lon float64) snapKey {
	return snapKey{
		lat: int64(math.Round(lat * snapCachePrecision)),
		lon: int64(math.Round(lon * snapCachePrecision)),
	}
}

type snapCache struct {
	cache *lru.Cache[snapKey, datastructure.Index]
}

func newSnapCache(size int) (*snapCache, error) {
	if size <= 0 {
		return &snapCache{}, nil
	}
	cache, err := lru.New[snapKey, datastructure.Index](size)
	if err != nil {
		return nil, err
	}
	return &snapCache{cache: cache}, nil
}

func (sc *snapCache) get(lat, lon float64) (datastructure.Index, bool) {
	if sc.cache == nil {
		return datastructure.INVALID_VERTEX_ID, false
	}
	return sc.cache.Get(newSnapKey(lat, lon))
}

func (sc *snapCache) add(lat, lon float64, u datastructure.Index) {
	if sc.cache == nil {
		return
	}
	sc.cache.Add(newSnapKey(lat, lon), u)
}

func (sc *snapCache) len() int {
	if sc.cache == nil {
		return 0
	}
	return sc.cache.Len()
}

func (rs *RoutingService) snapToVertex(lat, lon float64) (datastructure.Index, error) {
	if u, ok := rs.snapCache.get(lat, lon); ok {
		return u, nil
	}
	u, _, err := rs.spatialIndex.NearestVertex(rs.engine.GetGraph(), lat, lon, rs.searchRadius)
	if err != nil {
		return datastructure.INVALID_VERTEX_ID, err
	}
	rs.snapCache.add(lat, lon, u)
	return u, nil
}

func (rs *RoutingService) snapOrigDest(origLat, origLon, dstLat, dstLon float64) (datastructure.Index,
	datastructure.Index, error) {
	origin, err := rs.snapToVertex(origLat, origLon)
	if err != nil {
		return 0, 0, err
	}
	destination, err := rs.snapToVertex(dstLat, dstLon)
	if err != nil {
		return 0, 0, err
	}
	return origin, destination, nil
}
