package stores

import "sync"

type userTable map[string]string

var users = map[string]string{} // want `package-level map users: keep state in a store object`

var sessions userTable // want `package-level map sessions: keep state in a store object`

var (
	mu   sync.Mutex
	urls = make(map[string]int) // want `package-level map urls: keep state in a store object`
)

var _ = map[string]bool{}

type store struct {
	mu    sync.Mutex
	items map[string]string
}

func newStore() *store {
	local := map[string]string{}

	return &store{items: local}
}

func use() {
	mu.Lock()
	defer mu.Unlock()
	_ = users
	_ = sessions
	_ = urls
	_ = newStore()
}
