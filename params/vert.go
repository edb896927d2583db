package params

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	CorpusCacheDBName = "corpus.db"
	TileCacheSubdir   = "tiles"
)

var CorpusCacheBucket = []byte("tracks")

// DatadirRoot is where vert keeps its corpus cache and tile cache.
var DatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".vert")
}()

var INFLUXDB_URL = os.Getenv("INFLUXDB_URL")
var INFLUXDB_TOKEN = os.Getenv("INFLUXDB_TOKEN")
var INFLUXDB_ORG = "vert"
var INFLUXDB_BUCKET = "sweeps"

var AWS_BUCKETNAME = os.Getenv("AWS_BUCKETNAME")
