package scratch

// State of a card's reveal.
type State int

const (
	// StateIdle карта смонтирована, стираний ещё не было
	StateIdle State = iota
	// StateScratching было хотя бы одно принятое стирание
	StateScratching
	// StateThresholdReached порог пройден, сработала защёлка
	StateThresholdReached
	// StateRevealing ввод заблокирован, идёт пауза перед коммитом
	StateRevealing
	// StateCommitted коммит завершён (успешно или с ошибкой)
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScratching:
		return "scratching"
	case StateThresholdReached:
		return "threshold_reached"
	case StateRevealing:
		return "revealing"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Latched reports whether the one-shot reveal latch has been set.
func (s State) Latched() bool {
	return s >= StateThresholdReached
}
