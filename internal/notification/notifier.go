package notification

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// NotifyDuration - время жизни уведомления до автоскрытия
	NotifyDuration = 3000 * time.Millisecond
	// FeedbackDuration - на сколько кнопка блокируется после нажатия
	FeedbackDuration = 1500 * time.Millisecond
)

// Notification - текущее видимое уведомление
type Notification struct {
	Message string
	ShownAt time.Time
}

// Notifier показывает не больше одного уведомления за раз.
// Новое уведомление немедленно вытесняет предыдущее,
// автоскрытие через NotifyDuration, закрыть можно и раньше.
// Устаревший таймер не трогает более свежее уведомление
type Notifier struct {
	Logger *zap.SugaredLogger

	mu       sync.Mutex
	current  *Notification
	gen      uint64
	duration time.Duration
	pending  sync.WaitGroup
}

func NewNotifier(logger *zap.SugaredLogger) *Notifier {
	return &Notifier{
		Logger:   logger,
		duration: NotifyDuration,
	}
}

// SetDuration меняет время автоскрытия (тесты)
func (n *Notifier) SetDuration(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.duration = d
}

// Notify показывает уведомление, вытесняя текущее
func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.current = &Notification{
		Message: message,
		ShownAt: time.Now(),
	}

	n.pending.Add(1)
	time.AfterFunc(n.duration, func() {
		defer n.pending.Done()

		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen != gen {
			// уже показано что-то более свежее
			return
		}
		n.current = nil
	})
}

// Dismiss - явное закрытие пользователем
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	n.current = nil
}

// Current возвращает видимое уведомление, nil если его нет
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}

// WaitIdle дожидается всех таймеров автоскрытия (тесты)
func (n *Notifier) WaitIdle() {
	n.pending.Wait()
}

// Button - контрол, который Feedback временно блокирует
type Button struct {
	Label    string
	Disabled bool

	originalLabel string
	gen           uint64
}

func NewButton(label string) *Button {
	return &Button{Label: label}
}

// ButtonFeedback блокирует кнопку и подменяет подпись на время
// FeedbackDuration, затем возвращает исходное состояние.
// Повторные нажатия до восстановления - last-one-wins,
// исходная подпись не затирается промежуточной
type ButtonFeedback struct {
	Logger *zap.SugaredLogger

	mu       sync.Mutex
	duration time.Duration
	pending  sync.WaitGroup
}

func NewButtonFeedback(logger *zap.SugaredLogger) *ButtonFeedback {
	return &ButtonFeedback{
		Logger:   logger,
		duration: FeedbackDuration,
	}
}

func (f *ButtonFeedback) SetDuration(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duration = d
}

// Trigger запускает цикл обратной связи на кнопке
func (f *ButtonFeedback) Trigger(button *Button, feedbackLabel string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !button.Disabled {
		// запоминаем подпись только из невозмущенного состояния
		button.originalLabel = button.Label
	}

	button.gen++
	gen := button.gen
	button.Label = feedbackLabel
	button.Disabled = true

	f.pending.Add(1)
	time.AfterFunc(f.duration, func() {
		defer f.pending.Done()

		f.mu.Lock()
		defer f.mu.Unlock()
		if button.gen != gen {
			return
		}
		button.Label = button.originalLabel
		button.Disabled = false
	})
}

// WaitIdle дожидается всех таймеров восстановления (тесты)
func (f *ButtonFeedback) WaitIdle() {
	f.pending.Wait()
}
