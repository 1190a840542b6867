package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestH(t *testing.T) {
	hooks := &Hooks{}
	child := H("span")

	tests := []struct {
		name string
		got  *VNode
		want *VNode
	}{
		{
			name: "bare",
			got:  H("div"),
			want: &VNode{Sel: "div"},
		},
		{
			name: "text",
			got:  H("p", "a", "b"),
			want: &VNode{Sel: "p", Text: "ab", HasText: true},
		},
		{
			name: "key and attrs",
			got:  H("a", Key("k"), A("href", "/x"), []Attr{A("rel", "next"), {}}),
			want: &VNode{Sel: "a", Key: "k", Data: &Data{Attrs: map[string]string{"href": "/x", "rel": "next"}}},
		},
		{
			name: "classes and hooks",
			got:  H("b", Class("on", true), Class("off", false), hooks),
			want: &VNode{Sel: "b", Data: &Data{Class: map[string]bool{"on": true, "off": false}, Hooks: hooks}},
		},
		{
			name: "mixed children",
			got:  H("div", "x", child, (*VNode)(nil), nil),
			want: &VNode{Sel: "div", Children: []*VNode{Text("x"), child, nil}},
		},
		{
			name: "empty children slice is present",
			got:  H("ul", []*VNode{}),
			want: &VNode{Sel: "ul", Children: []*VNode{}},
		},
		{
			name: "namespace",
			got:  H("math", Namespace("http://www.w3.org/1998/Math/MathML")),
			want: &VNode{Sel: "math", Data: &Data{NS: "http://www.w3.org/1998/Math/MathML"}},
		},
		{
			name: "data merge",
			got:  H("i", A("a", "1"), &Data{Attrs: map[string]string{"b": "2"}, Ext: map[string]any{"m": 1}}),
			want: &VNode{Sel: "i", Data: &Data{Attrs: map[string]string{"a": "1", "b": "2"}, Ext: map[string]any{"m": 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, cmpopts.IgnoreUnexported(ThunkData{}), cmp.Comparer(func(a, b *Hooks) bool { return a == b })); diff != "" {
				t.Fatalf("H mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHAppliesSVGNamespace(t *testing.T) {
	v := H("svg#icon",
		H("g", H("circle")),
		H("foreignObject", H("div", H("p"))),
		Text("t"),
		Comment("c"),
	)

	ns := func(v *VNode) string {
		if v.Data == nil {
			return ""
		}
		return v.Data.NS
	}

	checks := []struct {
		name string
		node *VNode
		want string
	}{
		{"svg", v, SVGNamespace},
		{"g", v.Children[0], SVGNamespace},
		{"circle", v.Children[0].Children[0], SVGNamespace},
		{"foreignObject", v.Children[1], SVGNamespace},
		{"div below foreignObject", v.Children[1].Children[0], ""},
		{"text", v.Children[2], ""},
		{"comment", v.Children[3], ""},
	}
	for _, c := range checks {
		if got := ns(c.node); got != c.want {
			t.Errorf("%s: ns=%q, want %q", c.name, got, c.want)
		}
	}

	if isSVG("svgx") {
		t.Fatal("svgx is not an svg selector")
	}
}
