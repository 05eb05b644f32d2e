package event

import (
	"fmt"
	"slices"
	"testing"
)

func TestFeedEmitsInSubscriptionOrder(t *testing.T) {
	var feed Feed[string]
	var got []string

	feed.Subscribe(func(v string) { got = append(got, "a:"+v) })
	feed.Subscribe(func(v string) { got = append(got, "b:"+v) })
	feed.Subscribe(func(v string) { got = append(got, "c:"+v) })

	feed.Emit("x")

	want := []string{"a:x", "b:x", "c:x"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFeedUnsubscribe(t *testing.T) {
	var feed Feed[int]
	calls := 0

	sub := feed.Subscribe(func(int) { calls++ })
	feed.Emit(1)
	sub.Unsubscribe()
	sub.Unsubscribe()
	feed.Emit(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if feed.Len() != 0 {
		t.Errorf("Len() = %d, want 0", feed.Len())
	}
}

func TestFeedUnsubscribeDuringEmit(t *testing.T) {
	var feed Feed[int]
	var order []string

	var second *Subscription
	feed.Subscribe(func(int) {
		order = append(order, "first")
		second.Unsubscribe()
	})
	second = feed.Subscribe(func(int) { order = append(order, "second") })

	feed.Emit(1)
	feed.Emit(2)

	want := []string{"first", "second", "first"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestFeedClear(t *testing.T) {
	var feed Feed[int]
	feed.Subscribe(func(int) { t.Fatal("should not be called") })
	feed.Clear()
	feed.Emit(1)
}

func ExampleFeed() {
	var changed Feed[string]

	sub := changed.Subscribe(func(lang string) {
		fmt.Println("language changed to", lang)
	})
	changed.Emit("ko")
	sub.Unsubscribe()
	changed.Emit("en")

	// Output:
	// language changed to ko
}
