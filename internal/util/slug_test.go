package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Safety Training 101", "safety-training-101"},
		{"  Lean   Production  ", "lean-production"},
		{"Go & gRPC!", "go-grpc"},
		{"C++ / Rust — a tour", "c-rust-a-tour"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Zero(t, MustParseUint("not-a-number"))
	assert.Zero(t, MustParseUint("-1"))
	assert.Zero(t, MustParseUint(""))
}
