package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Storage keys, one file each.
const (
	CartKey  = "cart"
	TokenKey = "token"
)

// Storage is durable client-side key/value state: the serialized cart and
// the auth token live here under fixed keys.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Storage) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Storage) Set(key string, value []byte) error {
	return os.WriteFile(s.path(key), value, 0o600)
}

func (s *Storage) Remove(key string) {
	_ = os.Remove(s.path(key))
}

// Load rehydrates the persisted cart. A corrupt stored value is discarded
// and treated as an empty cart, never surfaced as an error.
func Load(s *Storage) Items {
	data, ok := s.Get(CartKey)
	if !ok {
		return Items{}
	}

	var items Items
	if err := json.Unmarshal(data, &items); err != nil {
		s.Remove(CartKey)
		return Items{}
	}
	if items == nil {
		items = Items{}
	}
	return items
}

// Save persists the cart. Callers invoke it after every reducer call.
func Save(s *Storage, items Items) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Set(CartKey, data)
}

func (s *Storage) Token() string {
	data, ok := s.Get(TokenKey)
	if !ok {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *Storage) SetToken(token string) error {
	return s.Set(TokenKey, []byte(token))
}

func (s *Storage) ClearToken() {
	s.Remove(TokenKey)
}
