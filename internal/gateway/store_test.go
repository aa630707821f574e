package gateway

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// storeFactories runs the shared store contract against every local backend.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nodes.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			if _, err := s.ListChildren("/"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("empty root should list as not found, got %v", err)
			}
			if err := s.Create("/a/b", []byte("x")); !errors.Is(err, ErrNotFound) {
				t.Fatalf("creating without a parent should fail with ErrNotFound, got %v", err)
			}
			for _, p := range []string{"/b", "/a", "/a/y", "/a/x"} {
				if err := s.Create(p, []byte("value of "+p)); err != nil {
					t.Fatalf("create %s: %v", p, err)
				}
			}
			if err := s.Create("/a", nil); !errors.Is(err, ErrNodeExists) {
				t.Fatalf("expected ErrNodeExists, got %v", err)
			}

			root, err := s.ListChildren("/")
			if err != nil {
				t.Fatalf("list root: %v", err)
			}
			if len(root) != 2 || root[0] != "a" || root[1] != "b" {
				t.Fatalf("expected sorted [a b], got %q", root)
			}
			kids, err := s.ListChildren("/a")
			if err != nil {
				t.Fatalf("list /a: %v", err)
			}
			if len(kids) != 2 || kids[0] != "x" || kids[1] != "y" {
				t.Fatalf("expected [x y], got %q", kids)
			}

			if _, err := s.ListChildren("/a/x"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("leaf should list as not found, got %v", err)
			}
			if _, err := s.ListChildren("/missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("missing node should list as not found, got %v", err)
			}

			value, err := s.ReadValue("/a/x")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if value != "value of /a/x" {
				t.Fatalf("unexpected value %q", value)
			}
			if _, err := s.ReadValue("/nope"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if value, err := s.ReadValue("/"); err != nil || value != "" {
				t.Fatalf("expected empty root value, got %q, %v", value, err)
			}

			if err := s.Create("/bin", []byte{0xff, 0xfe}); err != nil {
				t.Fatalf("create binary node: %v", err)
			}
			_, err = s.ReadValue("/bin")
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			var gwErr *Error
			if !errors.As(err, &gwErr) || gwErr.Op != "read" || gwErr.Path != "/bin" {
				t.Fatalf("expected *Error for read /bin, got %#v", err)
			}

			ok, err := s.Exists("/a")
			if err != nil || !ok {
				t.Fatalf("expected /a to exist, got %v, %v", ok, err)
			}
			ok, err = s.Exists("/zzz")
			if err != nil || ok {
				t.Fatalf("expected /zzz to be missing, got %v, %v", ok, err)
			}
		})
	}
}

func TestBootstrapSeedsOnce(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			created, err := Bootstrap(s, DefaultRoot)
			if err != nil {
				t.Fatalf("bootstrap: %v", err)
			}
			if !created {
				t.Fatalf("expected first bootstrap to create nodes")
			}
			kids, err := s.ListChildren(DefaultRoot)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(kids) != 2 || kids[0] != "data1" || kids[1] != "data2" {
				t.Fatalf("unexpected seeded children %q", kids)
			}
			value, err := s.ReadValue("/term")
			if err != nil || value != "Valeur de base" {
				t.Fatalf("unexpected root value %q, %v", value, err)
			}
			value, err = s.ReadValue("/term/data2")
			if err != nil || value != "Valeur de noeud2" {
				t.Fatalf("unexpected data2 value %q, %v", value, err)
			}

			created, err = Bootstrap(s, DefaultRoot)
			if err != nil {
				t.Fatalf("second bootstrap: %v", err)
			}
			if created {
				t.Fatalf("expected second bootstrap to be a no-op")
			}
		})
	}
}

func TestBootstrapRejectsRoot(t *testing.T) {
	if _, err := Bootstrap(NewMemory(), "/"); err == nil {
		t.Fatalf("expected error seeding /")
	}
}
