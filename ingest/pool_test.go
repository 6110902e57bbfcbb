package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/c360studio/ontograph/ontology"
)

func TestPoolClassifiesEverything(t *testing.T) {
	classify := func(n int) (*Record, error) {
		return &Record{Data: ontology.NewEntityData(fmt.Sprintf("T:%07d", n))}, nil
	}

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := NewPool(workers, classify)
			const total = 200

			go func() {
				defer pool.Close()
				for i := 0; i < total; i++ {
					if err := pool.Submit(context.Background(), i); err != nil {
						t.Error(err)
						return
					}
				}
			}()

			got := 0
			for out := range pool.Results() {
				if out.Err != nil {
					t.Fatalf("unexpected error: %v", out.Err)
				}
				got++
			}
			if got != total {
				t.Errorf("classified %d elements, want %d", got, total)
			}
		})
	}
}

func TestPoolErrorDoesNotDropQueuedWork(t *testing.T) {
	// A worker that hits a bad element must keep draining; queued
	// elements behind the failure still classify.
	bad := errors.New("malformed element")
	classify := func(n int) (*Record, error) {
		if n == 0 {
			return nil, bad
		}
		return &Record{Data: ontology.NewEntityData(fmt.Sprintf("T:%07d", n))}, nil
	}

	pool := NewPool(1, classify)
	const total = 50

	go func() {
		defer pool.Close()
		for i := 0; i < total; i++ {
			_ = pool.Submit(context.Background(), i)
		}
	}()

	records, failures := 0, 0
	for out := range pool.Results() {
		if out.Err != nil {
			failures++
			continue
		}
		records++
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if records != total-1 {
		t.Errorf("records = %d, want %d (queued work must survive the error)", records, total-1)
	}
}

func TestPoolSubmitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	classify := func(int) (*Record, error) {
		<-block
		return nil, nil
	}

	pool := NewPool(1, classify)
	ctx, cancel := context.WithCancel(context.Background())

	// Fill the queue past capacity, then cancel; Submit must unblock.
	go func() {
		for i := 0; ; i++ {
			if err := pool.Submit(ctx, i); err != nil {
				close(block)
				pool.Close()
				return
			}
		}
	}()
	cancel()

	for range pool.Results() {
		// drain
	}
}

func TestRecordApply(t *testing.T) {
	onto := ontology.New()
	data := ontology.NewEntityData("GO:0000001")
	data.Name = "test"
	rec := &Record{
		Data:  data,
		Edges: map[string][]string{"is_a": {"GO:0000002"}},
	}
	rec.Apply(onto)

	term, ok := onto.Term("GO:0000001")
	if !ok {
		t.Fatal("record not inserted")
	}
	name, _ := term.Name()
	if name != "test" {
		t.Errorf("Name = %q", name)
	}
	edges, _ := term.Relationships("is_a")
	if len(edges) != 1 || edges[0] != "GO:0000002" {
		t.Errorf("edges = %v", edges)
	}
}
