package validate_test

import (
	"strings"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/validate"
)

func TestQ(t *testing.T) {
	if q, ok := validate.Q("  pro laptop "); !ok || q != "pro laptop" {
		t.Fatalf("got %q %v", q, ok)
	}
	if _, ok := validate.Q("<script>"); ok {
		t.Fatal("markup accepted")
	}
	if _, ok := validate.Q("   "); ok {
		t.Fatal("blank accepted")
	}
	q, ok := validate.Q(strings.Repeat("é", 200))
	if !ok || len([]rune(q)) != 80 {
		t.Fatalf("long query not truncated on runes: %d %v", len([]rune(q)), ok)
	}
}

func TestPageLimit(t *testing.T) {
	if validate.Page("") != 1 || validate.Page("-3") != 1 || validate.Page("4") != 4 {
		t.Fatal("bad page parsing")
	}
	cases := map[string]int{"": 20, "abc": 20, "0": 1, "-5": 1, "7": 7, "1000": validate.MaxLimit}
	for in, want := range cases {
		if got := validate.Limit(in, 20); got != want {
			t.Fatalf("Limit(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSort(t *testing.T) {
	if f, ok := validate.SortField("reviewCount"); !ok || f != domain.SortReviewCount {
		t.Fatalf("got %q %v", f, ok)
	}
	if _, ok := validate.SortField("stock"); ok {
		t.Fatal("unknown field accepted")
	}
	if o, ok := validate.SortOrder(""); !ok || o != domain.Asc {
		t.Fatalf("default order: %q %v", o, ok)
	}
	if o, ok := validate.SortOrder("DESC"); !ok || o != domain.Desc {
		t.Fatalf("got %q %v", o, ok)
	}
	if _, ok := validate.SortOrder("up"); ok {
		t.Fatal("bad order accepted")
	}
}

func TestNumbers(t *testing.T) {
	if p, ok := validate.Price(""); !ok || p != nil {
		t.Fatal("empty price should mean no bound")
	}
	if p, ok := validate.Price("99.5"); !ok || *p != 99.5 {
		t.Fatal("price not parsed")
	}
	for _, bad := range []string{"-1", "NaN", "ten"} {
		if _, ok := validate.Price(bad); ok {
			t.Fatalf("price %q accepted", bad)
		}
	}
	if _, ok := validate.Rating("5.1"); ok {
		t.Fatal("rating above 5 accepted")
	}
	if b, ok := validate.Bool("true"); !ok || !*b {
		t.Fatal("bool not parsed")
	}
}

func TestTags(t *testing.T) {
	tags, ok := validate.Tags("Sale, new,sale,,")
	if !ok || len(tags) != 2 || tags[0] != "sale" || tags[1] != "new" {
		t.Fatalf("got %v %v", tags, ok)
	}
	if _, ok := validate.Tags("sale,drop table"); ok {
		t.Fatal("malformed tag accepted")
	}
}

func TestLabelAndQty(t *testing.T) {
	if l, ok := validate.Label(" Home Audio "); !ok || l != "Home Audio" {
		t.Fatalf("got %q %v", l, ok)
	}
	if _, ok := validate.Label("a;b"); ok {
		t.Fatal("bad label accepted")
	}
	if validate.Qty("0") != 1 || validate.Qty("99") != 50 {
		t.Fatal("qty not clamped")
	}
}
