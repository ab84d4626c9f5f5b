package serverconfig

import (
	"EconSim/internal/shared/config"
	"fmt"
	"sync"
	"time"
)

const (
	defaultConfigRelPath = "configs/conf.yml"

	DefaultHost         = "0.0.0.0"
	DefaultPort         = 5000
	DefaultAskTimeout   = 3 * time.Second
	DefaultFlushEvery   = 500 * time.Millisecond
	DefaultArchive      = ArchiveMemory
	ArchiveMemory       = "memory"
	ArchiveMySQL        = "mysql"
	ArchiveMongoDB      = "mongodb"
	defaultMongoTimeout = 3
)

// Store holds the loaded config and guards it against hot reloads.
type Store struct {
	mu       sync.RWMutex
	conf     Config
	onReload []func(Config)
}

// Load reads path (empty means configs/conf.yml searched upward) and
// fills in defaults.
func Load(path string) (*Store, error) {
	if path == "" {
		path = defaultConfigRelPath
	}
	s := &Store{}
	var raw Config
	err := config.Load(path, &raw, func() {
		s.mu.Lock()
		s.conf = withDefaults(raw)
		c := s.conf
		hooks := append([]func(Config){}, s.onReload...)
		s.mu.Unlock()
		for _, h := range hooks {
			h(c)
		}
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.conf = withDefaults(raw)
	s.mu.Unlock()
	return s, nil
}

// NewStore wraps an in-memory config, mostly for tests.
func NewStore(c Config) *Store {
	return &Store{conf: withDefaults(c)}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conf
}

// OnReload registers fn to run after each hot reload.
func (s *Store) OnReload(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

func withDefaults(c Config) Config {
	if c.HTTPServer.Host == "" {
		c.HTTPServer.Host = DefaultHost
	}
	if c.HTTPServer.Port <= 0 {
		c.HTTPServer.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Simulation.AskTimeoutMS <= 0 {
		c.Simulation.AskTimeoutMS = int(DefaultAskTimeout / time.Millisecond)
	}
	if c.Archive.Driver == "" {
		c.Archive.Driver = DefaultArchive
	}
	if c.Archive.FlushEveryMS <= 0 {
		c.Archive.FlushEveryMS = int(DefaultFlushEvery / time.Millisecond)
	}
	if c.Archive.NodeID <= 0 {
		c.Archive.NodeID = 1
	}
	if c.Archive.MongoDB.ConnectTimeoutS <= 0 {
		c.Archive.MongoDB.ConnectTimeoutS = defaultMongoTimeout
	}
	return c
}

func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c SimulationConfig) AskTimeout() time.Duration {
	return time.Duration(c.AskTimeoutMS) * time.Millisecond
}

func (c ArchiveConfig) FlushEvery() time.Duration {
	return time.Duration(c.FlushEveryMS) * time.Millisecond
}
