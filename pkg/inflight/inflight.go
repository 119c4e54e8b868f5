package inflight

import "sync"

// Guard не допускает параллельных мутаций одной и той же сущности.
// Пока мутация по ключу выполняется, повторный Acquire с тем же ключом
// отклоняется - дубликат запроса не попадает в БД.
type Guard struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

// NewGuard создает пустой guard
func NewGuard() *Guard {
	return &Guard{active: make(map[int64]struct{})}
}

// Acquire помечает ключ как занятый.
// Возвращает false, если мутация по этому ключу уже выполняется.
func (g *Guard) Acquire(key int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// Release освобождает ключ. Безопасен при повторном вызове.
func (g *Guard) Release(key int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
