package engine_test

import (
	"testing"
	"veriweb/internal/engine"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want engine.ParsedURL
	}{
		{
			name: "full https url",
			in:   "https://Example.COM/Path/To?b=2&a=1#frag",
			want: engine.ParsedURL{
				Scheme: "https",
				Host:   "example.com",
				Path:   "/Path/To",
				Query:  "b=2&a=1",
				Raw:    "https://Example.COM/Path/To?b=2&a=1#frag",
			},
		},
		{
			name: "missing scheme treats input as host plus path",
			in:   "example.com/login",
			want: engine.ParsedURL{
				Scheme: "",
				Host:   "example.com",
				Path:   "/login",
				Raw:    "example.com/login",
			},
		},
		{
			name: "query directly after host",
			in:   "http://example.com?x=1",
			want: engine.ParsedURL{
				Scheme: "http",
				Host:   "example.com",
				Path:   "",
				Query:  "x=1",
				Raw:    "http://example.com?x=1",
			},
		},
		{
			name: "fragment directly after host",
			in:   "http://example.com#section",
			want: engine.ParsedURL{
				Scheme: "http",
				Host:   "example.com",
				Raw:    "http://example.com#section",
			},
		},
		{
			name: "ip literal host",
			in:   "http://192.168.1.5/login",
			want: engine.ParsedURL{
				Scheme:      "http",
				Host:        "192.168.1.5",
				IsIPLiteral: true,
				Path:        "/login",
				Raw:         "http://192.168.1.5/login",
			},
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   "  https://example.com  ",
			want: engine.ParsedURL{
				Scheme: "https",
				Host:   "example.com",
				Raw:    "https://example.com",
			},
		},
		{
			name: "empty input degrades to empty host",
			in:   "",
			want: engine.ParsedURL{},
		},
		{
			name: "bare scheme separator",
			in:   "https://",
			want: engine.ParsedURL{
				Scheme: "https",
				Raw:    "https://",
			},
		},
	}

	for _, tc := range cases {
		got := engine.Parse(tc.in)
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestParse_DottedQuad(t *testing.T) {
	cases := []struct {
		host string
		ip   bool
	}{
		{"192.168.1.5", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"256.1.1.1", false},     // octet out of range
		{"1.2.3", false},         // too few octets
		{"1.2.3.4.5", false},     // too many octets
		{"192.168.1.5:80", false}, // trailing port breaks the strict match
		{"1.2.3.x", false},
		{"1..3.4", false},
		{"example.com", false},
		{"", false},
	}

	for _, tc := range cases {
		got := engine.Parse("http://" + tc.host)
		if got.IsIPLiteral != tc.ip {
			t.Errorf("host %q: IsIPLiteral = %v, want %v", tc.host, got.IsIPLiteral, tc.ip)
		}
	}
}
