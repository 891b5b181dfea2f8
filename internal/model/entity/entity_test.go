package entity

import "testing"

func TestReservable(t *testing.T) {
	withURL := Record{ReservationURL: "https://book.example/1"}
	if !withURL.Reservable() {
		t.Fatal("record with reservation url should be reservable")
	}

	withAction := Record{Actions: []Action{{Type: "menu"}, {Type: "reservation", URL: "https://book.example/2"}}}
	if !withAction.Reservable() {
		t.Fatal("record with reservation action should be reservable")
	}

	plain := Record{URL: "https://biz.example"}
	if plain.Reservable() {
		t.Fatal("record without reservation signals should not be reservable")
	}
}

func TestResolveReservationURLPrecedence(t *testing.T) {
	r := Record{
		ReservationURL: "https://book.example/explicit",
		URL:            "https://biz.example",
		Actions:        []Action{{Type: "reservation", URL: "https://book.example/action"}},
	}
	if url, ok := r.ResolveReservationURL(); !ok || url != "https://book.example/explicit" {
		t.Fatalf("expected explicit url, got %q ok=%v", url, ok)
	}

	r.ReservationURL = ""
	if url, _ := r.ResolveReservationURL(); url != "https://book.example/action" {
		t.Fatalf("expected action url, got %q", url)
	}

	r.Actions = nil
	if url, _ := r.ResolveReservationURL(); url != "https://biz.example" {
		t.Fatalf("expected general url, got %q", url)
	}

	r.URL = "   "
	if _, ok := r.ResolveReservationURL(); ok {
		t.Fatal("blank general url should not count as a reservation url")
	}
}

func TestKeyFallsBackThroughNameAndURL(t *testing.T) {
	if got := (Record{ID: "abc", Name: "n", URL: "u"}).Key(); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := (Record{Name: "n", URL: "u"}).Key(); got != "n" {
		t.Fatalf("got %q", got)
	}
	if got := (Record{URL: "u"}).Key(); got != "u" {
		t.Fatalf("got %q", got)
	}
}
