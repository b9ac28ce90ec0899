package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultHideDelay - пауза перед окончательным скрытием отфильтрованной
// карточки, дает отработать exit-анимации
const DefaultHideDelay = 300 * time.Millisecond

// Engine применяет фильтры и сортировку к внешнему листингу карточек.
// Карточки мутируются на месте, движок своей копии не держит.
// Отложенное скрытие защищено счетчиком поколений: устаревший таймер
// не спрячет карточку, которую более свежий проход снова показал
type Engine struct {
	Logger *zap.SugaredLogger

	mu        sync.Mutex
	cards     []*ProductCard
	hideDelay time.Duration
	pending   sync.WaitGroup
}

func NewEngine(cards []*ProductCard, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		Logger:    logger,
		cards:     cards,
		hideDelay: DefaultHideDelay,
	}
}

// SetHideDelay меняет задержку скрытия (тесты)
func (e *Engine) SetHideDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hideDelay = d
}

// ApplyFilters пересчитывает видимость всех карточек.
// Видимость = предикат категории AND предикат цены.
// Подходящие карточки показываются сразу, неподходящие помечаются
// и прячутся после задержки
func (e *Engine) ApplyFilters(state FilterState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, card := range e.cards {
		card.gen++
		if matches(card, state) {
			card.FilteredOut = false
			card.Hidden = false
			continue
		}

		card.FilteredOut = true
		e.scheduleHide(card, card.gen)
	}

	e.Logger.Infow("filter pass applied",
		"category", state.Category,
		"buckets", state.Buckets,
		"visible", e.visibleLocked(),
	)
}

// scheduleHide прячет карточку по истечении задержки, если к тому
// моменту ее не показал более свежий проход фильтра
func (e *Engine) scheduleHide(card *ProductCard, gen uint64) {
	e.pending.Add(1)
	time.AfterFunc(e.hideDelay, func() {
		defer e.pending.Done()

		e.mu.Lock()
		defer e.mu.Unlock()

		if card.gen != gen {
			// состояние уже другое, эффект устарел
			return
		}
		if card.FilteredOut {
			card.Hidden = true
		}
	})
}

// Sort переупорядочивает карточки на месте.
// Листинг всегда заканчивается контролом "load more",
// он остается в конце контейнера при любом режиме
func (e *Engine) Sort(mode SortMode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch mode {
	case SortPriceLow:
		sort.SliceStable(e.cards, func(i, j int) bool {
			return e.cards[i].Price < e.cards[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(e.cards, func(i, j int) bool {
			return e.cards[i].Price > e.cards[j].Price
		})
	case SortReviews:
		sort.SliceStable(e.cards, func(i, j int) bool {
			return e.cards[i].ReviewCount > e.cards[j].ReviewCount
		})
	case SortNewest:
		// переворот текущего порядка, см. комментарий у SortNewest
		for i, j := 0, len(e.cards)-1; i < j; i, j = i+1, j-1 {
			e.cards[i], e.cards[j] = e.cards[j], e.cards[i]
		}
	case SortFeatured:
		// стабильный no-op, компаратор считает все пары равными
	default:
		e.Logger.Warnf("unknown sort mode %q, keeping current order", mode)
	}
}

// Cards - текущий порядок листинга
func (e *Engine) Cards() []*ProductCard {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*ProductCard, len(e.cards))
	copy(out, e.cards)
	return out
}

// VisibleCount - число видимых карточек после прохода фильтра
func (e *Engine) VisibleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visibleLocked()
}

// ResultCountLabel - строка счетчика результатов над листингом
func (e *Engine) ResultCountLabel() string {
	return fmt.Sprintf("1-%d of over 2,000 results for \"Latest Devices\"", e.VisibleCount())
}

// WaitIdle дожидается всех запланированных отложенных скрытий
func (e *Engine) WaitIdle() {
	e.pending.Wait()
}

func (e *Engine) visibleLocked() int {
	visible := 0
	for _, card := range e.cards {
		if !card.FilteredOut {
			visible++
		}
	}
	return visible
}

func matches(card *ProductCard, state FilterState) bool {
	if state.Category != "" && state.Category != "all" && card.Category != state.Category {
		return false
	}

	if len(state.Buckets) == 0 {
		return true
	}

	for _, id := range state.Buckets {
		bucket, ok := BucketByID(id)
		if !ok {
			continue
		}
		if bucket.Contains(card.Price) {
			return true
		}
	}

	return false
}
