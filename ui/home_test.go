package ui

import (
	"testing"

	"gatehouse/session"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}
	for _, c := range cases {
		if got := formatSize(c.in); got != c.want {
			t.Errorf("formatSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHomeUsername(t *testing.T) {
	cases := []struct {
		name string
		page HomePage
		want string
	}{
		{"no resolver", HomePage{}, ""},
		{"anonymous", HomePage{Resolver: &fakeResolver{}}, ""},
		{"resolving", HomePage{Resolver: &fakeResolver{status: session.Status{Loading: true}}}, ""},
		{"signed in", HomePage{Resolver: &fakeResolver{
			status: session.Status{User: &session.Identity{Username: "alice"}},
		}}, "alice"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.page.username(); got != c.want {
				t.Errorf("username() = %q, want %q", got, c.want)
			}
		})
	}
}
