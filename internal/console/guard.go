package console

import "context"

// fetchGuard - токен отмены загрузок одного представления.
// Каждая новая загрузка отменяет предыдущую; ответ применяется, только если
// его поколение все еще текущее. Методы вызываются под мьютексом представления.
type fetchGuard struct {
	lifetime context.Context
	gen      uint64
	cancel   context.CancelFunc
}

func newFetchGuard(lifetime context.Context) *fetchGuard {
	return &fetchGuard{lifetime: lifetime}
}

// begin отменяет текущую загрузку и начинает новую
func (g *fetchGuard) begin() (context.Context, uint64) {
	g.stop()

	ctx, cancel := context.WithCancel(g.lifetime)
	g.gen++
	g.cancel = cancel

	return ctx, g.gen
}

// current - можно ли применять результат загрузки gen
func (g *fetchGuard) current(gen uint64) bool {
	return gen == g.gen && g.lifetime.Err() == nil
}

// finish освобождает контекст завершившейся загрузки
func (g *fetchGuard) finish(gen uint64) {
	if gen == g.gen && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// stop отменяет текущую загрузку, ее результат больше не будет применен
func (g *fetchGuard) stop() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
}
