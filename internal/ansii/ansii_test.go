package ansii

import (
	"strings"
	"testing"

	"xwinpong/internal/pong"
)

func TestAnnouncePlain(t *testing.T) {
	var b strings.Builder
	if err := Announce(&b, pong.LeftWins, false); err != nil {
		t.Fatal(err)
	}
	if b.String() != "Left wins!\n" {
		t.Fatalf("got %q", b.String())
	}

	b.Reset()
	Announce(&b, pong.RightWins, false)
	if b.String() != "Right wins!\n" {
		t.Fatalf("got %q", b.String())
	}
}

func TestAnnounceStyled(t *testing.T) {
	var b strings.Builder
	Announce(&b, pong.RightWins, true)

	want := "\033[1m\033[33mRight wins!\033[0m\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestPaintWithoutStyles(t *testing.T) {
	if got := Paint("x", true); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestAnnounceStyledLeft(t *testing.T) {
	var b strings.Builder
	Announce(&b, pong.LeftWins, true)

	want := "\033[1m\033[36mLeft wins!\033[0m\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}
