package testutil

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/go-zookeeper/zk"
)

// ServersEnv names the variable listing the ZooKeeper servers used by
// integration tests, e.g. "127.0.0.1:2181".
const ServersEnv = "ZKBROWSE_TEST_SERVERS"

const connectTimeout = 5 * time.Second

// RequireZooKeeper aborts the calling test when no reachable ZooKeeper
// ensemble is configured through ServersEnv.
func RequireZooKeeper(t *testing.T) []string {
	t.Helper()
	raw := strings.TrimSpace(os.Getenv(ServersEnv))
	if raw == "" {
		t.Skipf("skipping: %s not set", ServersEnv)
	}
	var servers []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	conn, err := connect(servers)
	if err != nil {
		t.Skipf("skipping: zookeeper unavailable: %v", err)
	}
	conn.Close()
	return servers
}

// StartZooKeeperRoot reserves a unique, not yet existing node path for one
// test. The returned cleanup func removes everything created beneath it.
func StartZooKeeperRoot(t *testing.T) ([]string, string, func()) {
	t.Helper()
	servers := RequireZooKeeper(t)
	root := fmt.Sprintf("/zkbrowse-test-%d", time.Now().UnixNano())
	cleanup := func() {
		conn, err := connect(servers)
		if err != nil {
			t.Logf("cleanup of %s skipped: %v", root, err)
			return
		}
		defer conn.Close()
		if err := deleteTree(conn, root); err != nil {
			t.Logf("cleanup of %s failed: %v", root, err)
		}
	}
	return servers, root, cleanup
}

func connect(servers []string) (*zk.Conn, error) {
	conn, session, err := zk.Connect(servers, connectTimeout, zk.WithLogger(discardLogger{}))
	if err != nil {
		return nil, err
	}
	deadline := time.After(connectTimeout)
	for {
		select {
		case evt := <-session:
			if evt.State == zk.StateHasSession {
				return conn, nil
			}
		case <-deadline:
			conn.Close()
			return nil, errors.New("timed out waiting for a session")
		}
	}
}

func deleteTree(conn *zk.Conn, p string) error {
	children, _, err := conn.Children(p)
	if errors.Is(err, zk.ErrNoNode) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteTree(conn, path.Join(p, child)); err != nil {
			return err
		}
	}
	if err := conn.Delete(p, -1); err != nil && !errors.Is(err, zk.ErrNoNode) {
		return err
	}
	return nil
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
