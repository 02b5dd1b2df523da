// Package cache to rejestr zasobów pobieranych ze zdalnego API.
// Każdy zasób jest kluczowany parą (operacja, parametry) i oznaczony tagami;
// mutacje unieważniają tagi, a subskrybenci dostają sygnał do ponownego pobrania.
package cache

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identyfikuje zasób w cache: operacja plus jej parametry
type Key string

// NewKey buduje klucz zasobu z nazwy operacji i parametrów
func NewKey(op string, params ...string) Key {
	if len(params) == 0 {
		return Key(op)
	}
	return Key(op + ":" + strings.Join(params, ":"))
}

type entry struct {
	value any
	tags  []string
}

// Store przechowuje wyniki zapytań wraz z tagami unieważniania.
// Współbieżne pobrania tego samego klucza są sklejane w jeden request sieciowy.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	byTag   map[string]map[Key]struct{}
	tagGen  map[string]uint64

	group singleflight.Group

	subMu   sync.Mutex
	subs    map[string]map[int]chan string
	nextSub int
}

// NewStore tworzy pusty rejestr zasobów
func NewStore() *Store {
	return &Store{
		entries: make(map[Key]*entry),
		byTag:   make(map[string]map[Key]struct{}),
		tagGen:  make(map[string]uint64),
		subs:    make(map[string]map[int]chan string),
	}
}

func (s *Store) lookup(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// snapshotGens odczytuje generacje tagów w momencie startu pobrania
func (s *Store) snapshotGens(tags []string) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gens := make([]uint64, len(tags))
	for i, tag := range tags {
		gens[i] = s.tagGen[tag]
	}
	return gens
}

// putIfCurrent zapisuje wpis tylko gdy żaden z jego tagów nie został
// unieważniony od startu pobrania; inaczej wynik może być sprzed mutacji
func (s *Store) putIfCurrent(key Key, tags []string, gens []uint64, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tag := range tags {
		if s.tagGen[tag] != gens[i] {
			return false
		}
	}
	s.entries[key] = &entry{value: value, tags: tags}
	for _, tag := range tags {
		if s.byTag[tag] == nil {
			s.byTag[tag] = make(map[Key]struct{})
		}
		s.byTag[tag][key] = struct{}{}
	}
	return true
}

// Len zwraca liczbę zasobów aktualnie w cache
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Contains sprawdza czy zasób o danym kluczu jest w cache
func (s *Store) Contains(key Key) bool {
	_, ok := s.lookup(key)
	return ok
}

// Invalidate usuwa z cache wszystkie zasoby oznaczone podanymi tagami
// i powiadamia subskrybentów tych tagów
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	for _, tag := range tags {
		// Nowa generacja odrzuca także wyniki pobrań będących w locie
		s.tagGen[tag]++
		for key := range s.byTag[tag] {
			if e, ok := s.entries[key]; ok {
				// Usuń klucz także z pozostałych tagów wpisu
				for _, other := range e.tags {
					delete(s.byTag[other], key)
				}
				delete(s.entries, key)
			}
		}
		delete(s.byTag, tag)
	}
	s.mu.Unlock()

	s.notify(tags)
}

func (s *Store) notify(tags []string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, tag := range tags {
		for _, ch := range s.subs[tag] {
			select {
			case ch <- tag:
			default:
				// Subskrybent jeszcze nie odebrał poprzedniego sygnału - jeden wystarczy
			}
		}
	}
}

// Subscribe rejestruje obserwatora taga. Zwrócony kanał dostaje nazwę taga
// po każdym unieważnieniu; funkcja zamykająca wyrejestrowuje obserwatora.
func (s *Store) Subscribe(tag string) (<-chan string, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan string, 1)
	if s.subs[tag] == nil {
		s.subs[tag] = make(map[int]chan string)
	}
	s.subs[tag][id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[tag][id]; ok {
			delete(s.subs[tag], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Fetch zwraca zasób z cache albo pobiera go funkcją fn i zapamiętuje pod
// podanymi tagami. Równoległe wywołania dla tego samego klucza wykonują
// co najwyżej jedno pobranie; błędy nie są zapamiętywane. Wynik pobrania,
// którego tag został unieważniony w trakcie lotu, trafia do wołającego,
// ale nie do cache - kolejny odczyt pobierze świeże dane.
func Fetch[T any](ctx context.Context, s *Store, key Key, tags []string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := s.lookup(key); ok {
		return v.(T), nil
	}

	v, err, _ := s.group.Do(string(key), func() (any, error) {
		// Inny lot mógł już zapełnić cache zanim dostaliśmy slot
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		gens := s.snapshotGens(tags)
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if !s.putIfCurrent(key, tags, gens, value) {
			s.group.Forget(string(key))
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
