package batch

import (
	"context"
	"path/filepath"
	"testing"

	"tonearm/internal/convert"
	"tonearm/internal/library"
	"tonearm/internal/media"
	"tonearm/internal/reconcile"
)

type scriptedConverter struct {
	calls    []string
	outcomes map[string]convert.Outcome
}

func (s *scriptedConverter) Convert(_ context.Context, item media.Item) convert.Outcome {
	s.calls = append(s.calls, item.Title)
	if outcome, ok := s.outcomes[item.Title]; ok {
		return outcome
	}
	return convert.Success(item.Title, item.Title+".mp3")
}

func partition(titles []string, present map[string]bool) reconcile.Result {
	items := make([]media.Item, 0, len(titles))
	inv := make(library.Inventory)
	for _, title := range titles {
		locator := "https://www.youtube.com/watch?v=x"
		if title == "" {
			locator = ""
		}
		items = append(items, media.NewItem(title, locator, ""))
		if present[title] {
			inv[title] = struct{}{}
		}
	}
	return reconcile.Partition(items, inv)
}

func TestRunMergesSkippedAndPreservesOrder(t *testing.T) {
	converter := &scriptedConverter{}
	runner := New(converter, "/music", ".mp3")

	res := partition([]string{"A", "B", "C"}, map[string]bool{"B": true})
	rep := runner.Run(context.Background(), res)

	if rep.Total() != 3 {
		t.Fatalf("total = %d", rep.Total())
	}
	if got := []string{rep.Entries[0].Outcome.Title, rep.Entries[1].Outcome.Title, rep.Entries[2].Outcome.Title}; got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("report order broken: %v", got)
	}
	if rep.Entries[1].Outcome.Class != convert.ClassSkipped {
		t.Fatalf("present item should be skipped, got %q", rep.Entries[1].Outcome.Class)
	}
	if want := filepath.Join("/music", "B.mp3"); rep.Entries[1].Outcome.Path != want {
		t.Fatalf("skipped path = %q, want %q", rep.Entries[1].Outcome.Path, want)
	}
	for _, call := range converter.calls {
		if call == "B" {
			t.Fatal("converter must never be invoked for a present item")
		}
	}
	counts := rep.Counts()
	if counts.Succeeded != 2 || counts.Skipped != 1 || counts.Failed != 0 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestRunClassifiesLocatorlessItemsAsFailed(t *testing.T) {
	converter := &scriptedConverter{}
	runner := New(converter, "/music", ".mp3")

	res := partition([]string{"A", ""}, nil)
	rep := runner.Run(context.Background(), res)

	if len(converter.calls) != 1 {
		t.Fatalf("converter calls = %v", converter.calls)
	}
	failures := rep.Failures()
	if len(failures) != 1 || failures[0].Outcome.Kind != convert.FailureInput {
		t.Fatalf("failures = %+v", failures)
	}
	if rep.AllSucceeded() {
		t.Fatal("report with a failure must not read as success")
	}
}

func TestRunSequentialByDefault(t *testing.T) {
	converter := &scriptedConverter{}
	runner := New(converter, "/music", ".mp3")

	res := partition([]string{"A", "B", "C"}, nil)
	runner.Run(context.Background(), res)

	want := []string{"A", "B", "C"}
	if len(converter.calls) != len(want) {
		t.Fatalf("calls = %v", converter.calls)
	}
	for i, title := range want {
		if converter.calls[i] != title {
			t.Fatalf("sequential order broken: %v", converter.calls)
		}
	}
}

func TestRunAccumulatesFailuresWithoutAborting(t *testing.T) {
	converter := &scriptedConverter{outcomes: map[string]convert.Outcome{
		"B": convert.Failure("B", convert.FailureFetch, "exhausted"),
	}}
	runner := New(converter, "/music", ".mp3")

	res := partition([]string{"A", "B", "C"}, nil)
	rep := runner.Run(context.Background(), res)

	if len(converter.calls) != 3 {
		t.Fatalf("a failure must not abort the batch: calls = %v", converter.calls)
	}
	counts := rep.Counts()
	if counts.Succeeded != 2 || counts.Failed != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}
