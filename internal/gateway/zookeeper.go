package gateway

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/zkbrowse/internal/logging"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/go-zookeeper/zk"
)

// DefaultServers is the ensemble used when none is configured.
var DefaultServers = []string{"localhost:2181"}

// DefaultSessionTimeout matches the timeout the browser has always used.
const DefaultSessionTimeout = 15 * time.Second

// zkConn is the subset of *zk.Conn the gateway relies on.
type zkConn interface {
	Children(path string) ([]string, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Exists(path string) (bool, *zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Close()
}

// ZooKeeper is a Store backed by a ZooKeeper ensemble.
type ZooKeeper struct {
	conn    zkConn
	session <-chan zk.Event
	target  string
}

// DialZooKeeper opens a session against servers. The client's own logging
// goes to the shared log file rather than the terminal.
func DialZooKeeper(servers []string, sessionTimeout time.Duration) (*ZooKeeper, error) {
	if len(servers) == 0 {
		servers = DefaultServers
	}
	if sessionTimeout <= 0 {
		sessionTimeout = DefaultSessionTimeout
	}
	target := strings.Join(servers, ",")
	logging.Printf("connecting to %s", target)
	conn, session, err := zk.Connect(servers, sessionTimeout, zk.WithLogger(logging.Logger{Prefix: "zk"}))
	if err != nil {
		return nil, opError("connect", target, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	events.Gateway.Connect("zookeeper", target)
	return newZooKeeper(conn, session, target), nil
}

func newZooKeeper(conn zkConn, session <-chan zk.Event, target string) *ZooKeeper {
	return &ZooKeeper{conn: conn, session: session, target: target}
}

// SessionEvents exposes the session watcher channel of the connection.
func (z *ZooKeeper) SessionEvents() <-chan zk.Event {
	return z.session
}

// Target returns the ensemble connection string.
func (z *ZooKeeper) Target() string {
	return z.target
}

func (z *ZooKeeper) ListChildren(p string) ([]string, error) {
	p = Clean(p)
	names, _, err := z.conn.Children(p)
	if err != nil {
		return nil, mapZKError("list", p, err)
	}
	return children(p, names)
}

func (z *ZooKeeper) ReadValue(p string) (string, error) {
	p = Clean(p)
	data, _, err := z.conn.Get(p)
	if err != nil {
		return "", mapZKError("read", p, err)
	}
	return decodeValue(p, data)
}

func (z *ZooKeeper) Exists(p string) (bool, error) {
	p = Clean(p)
	ok, _, err := z.conn.Exists(p)
	if err != nil {
		return false, mapZKError("exists", p, err)
	}
	return ok, nil
}

// Create adds a persistent node with an open ACL.
func (z *ZooKeeper) Create(p string, data []byte) error {
	p = Clean(p)
	if _, err := z.conn.Create(p, data, 0, zk.WorldACL(zk.PermAll)); err != nil {
		return mapZKError("create", p, err)
	}
	return nil
}

func (z *ZooKeeper) Close() error {
	z.conn.Close()
	return nil
}

func mapZKError(op, p string, err error) error {
	switch {
	case errors.Is(err, zk.ErrNoNode):
		return opError(op, p, ErrNotFound)
	case errors.Is(err, zk.ErrNodeExists):
		return opError(op, p, ErrNodeExists)
	default:
		return opError(op, p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
}
