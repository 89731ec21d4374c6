package kvstore

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

// openBackends returns a fresh repository for every backend.
func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	repos := make(map[string]Repository)
	for _, backend := range Backends {
		path := filepath.Join(t.TempDir(), "data."+backend)
		repo, err := Open(backend, path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", backend, err)
		}
		t.Cleanup(func() { repo.Close() })
		repos[backend] = repo
	}
	return repos
}

func TestBackendRoundTrip(t *testing.T) {
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			m, err := repo.Load()
			if err != nil {
				t.Fatalf("Load() on new database error = %v", err)
			}
			if len(m) != 0 {
				t.Fatalf("Load() on new database = %v, want empty", m)
			}

			want := Mapping{"user": "alice", "": "empty key", "blank": "", "unicode": "héllo"}
			if err := repo.Save(want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Load() = %v, want %v", got, want)
			}
			for k, v := range want {
				if got[k] != v {
					t.Errorf("got[%q] = %q, want %q", k, got[k], v)
				}
			}

			// A smaller save replaces everything.
			if err := repo.Save(Mapping{"only": "one"}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, _ = repo.Load()
			if len(got) != 1 || got["only"] != "one" {
				t.Errorf("Load() after rewrite = %v, want map[only:one]", got)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("Open(redis) expected error, got nil")
	}
}

func TestOpen_EmptyBackendIsJSON(t *testing.T) {
	repo, err := Open("", filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := repo.(*JSONFile); !ok {
		t.Errorf("Open(\"\") = %T, want *JSONFile", repo)
	}
}

func TestSQLiteLoad_NonTextValueIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.sqlite")
	repo, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer repo.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO entries (key, value) VALUES ('a', X'00FF')`); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestBoltLoad_InvalidValueIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bolt")
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(entriesBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(keyPrefix+"a"), []byte{0xff, 0xfe})
	})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	repo, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	defer repo.Close()

	if _, err := repo.Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}
