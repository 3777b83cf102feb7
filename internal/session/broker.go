package session

import "sync"

// Identity is the stable handle for a signed-in user.
type Identity struct {
	UID   string
	Email string
}

// Broker is the in-process auth-state stream. A subscriber is called
// immediately with the current identity (nil when signed out), then on every
// SignIn/SignOut, in registration order, until its unsubscribe closure runs.
type Broker struct {
	mu   sync.Mutex
	cur  *Identity
	next int
	ids  []int
	subs map[int]func(*Identity)
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(*Identity))}
}

func (b *Broker) Subscribe(fn func(*Identity)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.ids = append(b.ids, id)
	b.subs[id] = fn
	cur := b.cur
	b.mu.Unlock()

	fn(cur)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		for i, v := range b.ids {
			if v == id {
				b.ids = append(b.ids[:i], b.ids[i+1:]...)
				break
			}
		}
	}
}

func (b *Broker) SignIn(id Identity) { b.publish(&id) }
func (b *Broker) SignOut()           { b.publish(nil) }

func (b *Broker) Current() *Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur
}

func (b *Broker) publish(id *Identity) {
	b.mu.Lock()
	b.cur = id
	fns := make([]func(*Identity), 0, len(b.ids))
	for _, sid := range b.ids {
		if fn, ok := b.subs[sid]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
