package service

import (
	"sync"
	"time"

	"wayfarer/admin-service/internal/app/admin/entity"
)

// CatalogState - явное состояние приложения: обе коллекции в памяти
// плюс счетчик идентификаторов. Владеет им CommandService, остальные
// компоненты получают его через конструктор, а не через глобальные переменные
//
// HTTP-хост конкурентен, поэтому инвариант "ровно один писатель"
// обеспечивается RWMutex: команды берут write lock, проекции - read lock
type CatalogState struct {
	mu        sync.RWMutex
	locations []entity.Location
	reviews   []entity.Review
	nextID    int64
}

func NewCatalogState() *CatalogState {
	return &CatalogState{}
}

// Reset заменяет обе коллекции и пересеивает счетчик идентификаторов
// Вызывается при загрузке из хранилища и при сидировании демо-данных
func (s *CatalogState) Reset(locations []entity.Location, reviews []entity.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locations = locations
	s.reviews = reviews
	s.seedIDCounter()
}

// seedIDCounter устанавливает счетчик в max(наибольший существующий id, текущие unix-миллисекунды)
// Идентификаторы сохраняют привычную величину таймстампа, но выдаются
// монотонно и не могут столкнуться при быстрых последовательных созданиях
// Вызывающий держит write lock
func (s *CatalogState) seedIDCounter() {
	next := time.Now().UnixMilli()

	for _, l := range s.locations {
		if l.ID > next {
			next = l.ID
		}
	}
	for _, r := range s.reviews {
		if r.ID > next {
			next = r.ID
		}
	}

	s.nextID = next
}

// generateID выдает следующий уникальный идентификатор
// Вызывающий держит write lock
func (s *CatalogState) generateID() int64 {
	s.nextID++
	return s.nextID
}
