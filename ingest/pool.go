package ingest

import (
	"context"
	"sync"

	"github.com/c360studio/ontograph/ontology"
)

// queueDepth bounds both the raw-element queue and the result queue. A
// full raw queue suspends the scan loop (backpressure); an empty result
// queue suspends the merge loop. Neither side busy-waits.
const queueDepth = 64

// Record is one classified frame: the entity record plus its outgoing
// relationship edges, keyed by relationship type with document order and
// duplicates preserved. Classification is pure, so records can be merged
// in any completion order.
type Record struct {
	Data  *ontology.EntityData
	Edges map[string][]string
}

// Apply inserts the record into a graph. Only the merge loop calls this;
// workers never touch the graph.
func (r *Record) Apply(onto *ontology.Ontology) {
	term := onto.AddData(r.Data)
	for typ, targets := range r.Edges {
		onto.AddRelationship(term.ID(), typ, targets...)
	}
}

// Outcome is what a worker emits for one raw element: a record, or the
// classification error for that element.
type Outcome struct {
	Record *Record
	Err    error
}

// Pool runs a pure classification function over raw elements on a fixed
// set of workers. Workers share no mutable state; the only coordination
// is the two bounded channels. Closing the raw channel is the sentinel:
// each worker exits when it drains.
//
// A worker that hits a malformed element emits the error as an Outcome and
// keeps consuming: the queue always drains, and the merge loop decides
// what an element error means for the document. Workers never abandon
// queued elements.
type Pool[T any] struct {
	raw     chan T
	results chan Outcome
	wg      sync.WaitGroup
}

// NewPool starts workers classifying elements with classify. workers must
// be at least 1.
func NewPool[T any](workers int, classify func(T) (*Record, error)) *Pool[T] {
	if workers < 1 {
		workers = 1
	}
	p := &Pool[T]{
		raw:     make(chan T, queueDepth),
		results: make(chan Outcome, queueDepth),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for el := range p.raw {
				rec, err := classify(el)
				if err != nil {
					p.results <- Outcome{Err: err}
					continue
				}
				if rec != nil {
					p.results <- Outcome{Record: rec}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

// Submit queues one raw element, blocking when the queue is full. It
// returns the context error if ctx is done first.
func (p *Pool[T]) Submit(ctx context.Context, el T) error {
	select {
	case p.raw <- el:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals end of input. Each worker exits after draining its share
// of the queue; the result channel closes once all workers are gone.
func (p *Pool[T]) Close() {
	close(p.raw)
}

// Results returns the result channel. It is closed after Close once every
// outstanding element has been classified, so ranging over it drains the
// pool completely.
func (p *Pool[T]) Results() <-chan Outcome {
	return p.results
}
