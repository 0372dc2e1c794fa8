package main

import (
	"testing"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
)

func TestSplitCommand(t *testing.T) {
	name, args := splitCommand("/Discover checkBudget urgent")
	if name != "discover" || len(args) != 2 || args[0] != "checkBudget" {
		t.Fatalf("got %q %v", name, args)
	}
	if name, _ := splitCommand("/"); name != "" {
		t.Fatalf("empty command = %q", name)
	}
}

func TestParseParams(t *testing.T) {
	p, err := parseParams([]string{"urgent", "STRATEGIC"})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if p != (discovery.Params{Urgent: true, Strategic: true}) {
		t.Fatalf("got %+v", p)
	}
	if _, err := parseParams([]string{"loud"}); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
}
