package history

import (
	"reflect"
	"testing"
)

func TestListenersOrderAndRemoval(t *testing.T) {
	var l Listeners
	var calls []string

	removeA := l.Add(func() { calls = append(calls, "a") })
	l.Add(func() { calls = append(calls, "b") })

	if n := l.Notify(); n != 2 {
		t.Fatalf("Notify: got %d, want 2", n)
	}
	if !reflect.DeepEqual(calls, []string{"a", "b"}) {
		t.Errorf("delivery order: got %v, want [a b]", calls)
	}

	removeA()
	removeA() // Second call is a no-op, not an error.

	calls = nil
	if n := l.Notify(); n != 1 {
		t.Fatalf("Notify after remove: got %d, want 1", n)
	}
	if !reflect.DeepEqual(calls, []string{"b"}) {
		t.Errorf("got %v, want [b]", calls)
	}
}

func TestListenersUnsubscribeDuringNotify(t *testing.T) {
	var l Listeners
	var remove func()
	var calls int

	remove = l.Add(func() {
		calls++
		remove()
	})
	l.Add(func() { calls++ })

	l.Notify()
	if calls != 2 {
		t.Errorf("in-flight broadcast must not be affected: got %d calls, want 2", calls)
	}

	if n := l.Notify(); n != 1 {
		t.Errorf("second broadcast: got %d listeners, want 1", n)
	}
}

func TestListenersLen(t *testing.T) {
	var l Listeners
	if l.Len() != 0 {
		t.Errorf("zero value Len: got %d", l.Len())
	}
	remove := l.Add(func() {})
	if l.Len() != 1 {
		t.Errorf("Len after Add: got %d", l.Len())
	}
	remove()
	if l.Len() != 0 {
		t.Errorf("Len after remove: got %d", l.Len())
	}
}
