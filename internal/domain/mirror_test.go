package domain

import (
	"fmt"
	"strings"
	"testing"
)

func TestResolve_Addressing(t *testing.T) {
	for p := 0; p <= 3; p++ {
		for l := 0; l <= 3; l++ {
			t.Run(fmt.Sprintf("p=%d,l=%d", p, l), func(t *testing.T) {
				primary := makeLinks("primary", p)
				legacy := makeLinks("legacy", l)

				options := Resolve(primary, legacy)
				if len(options) != p+l {
					t.Fatalf("expected %d options, got %d", p+l, len(options))
				}

				seen := make(map[int]bool)
				for _, opt := range options {
					if seen[opt.GlobalIndex] {
						t.Errorf("global index %d repeated", opt.GlobalIndex)
					}
					seen[opt.GlobalIndex] = true
					if opt.GlobalIndex < 0 || opt.GlobalIndex >= p+l {
						t.Errorf("global index %d outside 0..%d", opt.GlobalIndex, p+l-1)
					}
				}

				for i, link := range primary {
					opt := options[i]
					if opt.GlobalIndex != i || opt.URL != link || opt.IsLegacy() || opt.OriginalIndex != i {
						t.Errorf("primary %d: got %+v", i, opt)
					}
				}
				for i, link := range legacy {
					opt := options[p+i]
					if opt.GlobalIndex != p+i || opt.URL != link || !opt.IsLegacy() || opt.OriginalIndex != i {
						t.Errorf("legacy %d: got %+v", i, opt)
					}
				}

				if got, want := ShouldOffer(options), p+l > 1; got != want {
					t.Errorf("ShouldOffer() = %v, want %v", got, want)
				}
			})
		}
	}
}

func TestResolve_Scenario(t *testing.T) {
	options := Resolve(
		[]string{"https://a.example/feed"},
		[]string{"https://b.example/feed", "https://c.example/feed"},
	)

	want := []struct {
		index  int
		host   string
		legacy bool
	}{
		{0, "a.example", false},
		{1, "b.example", true},
		{2, "c.example", true},
	}

	if len(options) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(options))
	}
	for i, w := range want {
		opt := options[i]
		if opt.GlobalIndex != w.index || MirrorHost(opt.URL) != w.host || opt.IsLegacy() != w.legacy {
			t.Errorf("option %d: got {%d %q %v}, want {%d %q %v}",
				i, opt.GlobalIndex, MirrorHost(opt.URL), opt.IsLegacy(), w.index, w.host, w.legacy)
		}
	}
}

func TestResolve_SingleLegacy(t *testing.T) {
	options := Resolve(nil, []string{"https://only.example"})

	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	opt := options[0]
	if opt.GlobalIndex != 0 || !opt.IsLegacy() {
		t.Errorf("unexpected option %+v", opt)
	}
	if got := FormatLabel(opt); got != "only.example (Legacy) (Default)" {
		t.Errorf("FormatLabel() = %q", got)
	}
	if ShouldOffer(options) {
		t.Error("single mirror should not be offered")
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name   string
		option MirrorOption
		want   string
	}{
		{
			name:   "primary default",
			option: MirrorOption{GlobalIndex: 0, URL: "https://mirror1.example.org/feed"},
			want:   "mirror1.example.org (Default)",
		},
		{
			name:   "primary non-default",
			option: MirrorOption{GlobalIndex: 1, URL: "https://mirror1.example.org/feed"},
			want:   "mirror1.example.org",
		},
		{
			name:   "legacy",
			option: MirrorOption{GlobalIndex: 2, URL: "http://old.example.net:8080/api", Source: SourceLegacy},
			want:   "old.example.net (Legacy)",
		},
		{
			name:   "ipv6 host",
			option: MirrorOption{GlobalIndex: 1, URL: "http://[::1]:9696/api"},
			want:   "[::1]",
		},
		{
			name:   "malformed url",
			option: MirrorOption{GlobalIndex: 3, URL: "not a url"},
			want:   "not a url",
		},
		{
			name:   "malformed legacy default",
			option: MirrorOption{GlobalIndex: 0, URL: "::::", Source: SourceLegacy},
			want:   ":::: (Legacy) (Default)",
		},
		{
			name:   "empty url",
			option: MirrorOption{GlobalIndex: 4, URL: ""},
			want:   "",
		},
		{
			name:   "scheme-less host",
			option: MirrorOption{GlobalIndex: 5, URL: "example.com/feed"},
			want:   "example.com/feed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLabel(tt.option); got != tt.want {
				t.Errorf("FormatLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLabel_DefaultAlwaysOnIndexZero(t *testing.T) {
	for _, source := range []MirrorSource{SourcePrimary, SourceLegacy} {
		label := FormatLabel(MirrorOption{GlobalIndex: 0, URL: "https://x.example", Source: source})
		if !strings.HasSuffix(label, " (Default)") {
			t.Errorf("%s index 0 label %q missing default suffix", source, label)
		}
	}
}

func TestFormatLabel_NeverPanics(t *testing.T) {
	inputs := []string{"", " ", "%", "http://[::1", "http://%zz", "\x00", "mailto:someone", "https://"}
	for _, in := range inputs {
		_ = FormatLabel(MirrorOption{URL: in})
	}
}

func makeLinks(prefix string, n int) []string {
	links := make([]string, n)
	for i := range links {
		links[i] = fmt.Sprintf("https://%s%d.example/feed", prefix, i)
	}
	return links
}
