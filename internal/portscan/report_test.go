package portscan

import (
	"reflect"
	"strings"
	"testing"
)

func TestAggregate_FilterAndSort(t *testing.T) {
	in := []ProbeResult{
		{Protocol: ProtoUDP, Port: 80, Status: StatusOpenFiltered, Banner: "Open|Filtered"},
		{Protocol: ProtoTCP, Port: 80, Status: StatusOpen, Banner: NoBanner},
		{Protocol: ProtoTCP, Port: 8080, Status: StatusClosed},
		{Protocol: ProtoTCP, Port: 22, Status: StatusOpen, Banner: "SSH-2.0"},
		{Protocol: ProtoUDP, Port: 53, Status: StatusError},
	}
	got := Aggregate(in)

	wantOrder := []ProbeTask{
		{Protocol: ProtoTCP, Port: 22},
		{Protocol: ProtoTCP, Port: 80},
		{Protocol: ProtoUDP, Port: 80},
	}
	order := make([]ProbeTask, 0, len(got))
	for _, r := range got {
		if !r.Interesting() {
			t.Fatalf("non-reachable result survived aggregation: %+v", r)
		}
		order = append(order, ProbeTask{Protocol: r.Protocol, Port: r.Port})
	}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Fatalf("got order %v want %v", order, wantOrder)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
	closedOnly := []ProbeResult{{Protocol: ProtoTCP, Port: 80, Status: StatusClosed}}
	if got := Aggregate(closedOnly); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestCleanBanner(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"line1\nline2": "line1 line2",
		"a\nb\nc":      "a b c",
	}
	for in, want := range cases {
		if got := CleanBanner(in); got != want {
			t.Fatalf("CleanBanner(%q) = %q, want %q", in, got, want)
		}
	}
	long := strings.Repeat("x", 80)
	if got := CleanBanner(long); got != strings.Repeat("x", 50) {
		t.Fatalf("long banner not truncated to 50: len=%d", len(got))
	}
}
