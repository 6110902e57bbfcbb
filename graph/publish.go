// Package graph publishes merged ontology entities to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Source tag stamped on every published triple.
const tripleSource = "ontograph.ingest"

// Predicates for term entities.
const (
	PredicateTermName       = "ontology.term.name"
	PredicateTermNamespace  = "ontology.term.namespace"
	PredicateTermDefinition = "ontology.term.definition"
	PredicateTermSynonym    = "ontology.term.synonym"
	PredicateTermXref       = "ontology.term.xref"
	PredicateTermSubset     = "ontology.term.subset"
	PredicateTermObsolete   = "ontology.term.obsolete"
	PredicateTermIsA        = "ontology.term.is_a"
)

// PublishOntology publishes every term of a merged graph as an entity.
// A nil client skips publishing so ingestion works without a broker.
func PublishOntology(ctx context.Context, nc *natsclient.Client, onto *ontology.Ontology) error {
	if nc == nil {
		return nil
	}

	now := time.Now()
	for _, term := range onto.Terms() {
		payload, err := TermPayload(term, now)
		if err != nil {
			return fmt.Errorf("build payload for %s: %w", term.ID(), err)
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal term entity %s: %w", term.ID(), err)
		}
		if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
			return fmt.Errorf("publish term entity %s: %w", term.ID(), err)
		}
	}

	return nil
}

// TermPayload builds the validated wire payload for one term.
func TermPayload(term ontology.Term, now time.Time) (*EntityPayload, error) {
	triples, err := TermTriples(term, now)
	if err != nil {
		return nil, err
	}
	payload := &EntityPayload{
		EntityID_:  TermEntityID(term.ID()),
		TripleData: triples,
		UpdatedAt:  now,
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// TermTriples flattens one term record to graph triples.
func TermTriples(term ontology.Term, now time.Time) ([]message.Triple, error) {
	entityID := TermEntityID(term.ID())

	add := func(triples []message.Triple, predicate string, object any) []message.Triple {
		return append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	var triples []message.Triple

	name, err := term.Name()
	if err != nil {
		return nil, err
	}
	if name != "" {
		triples = add(triples, PredicateTermName, name)
	}

	namespace, err := term.Namespace()
	if err != nil {
		return nil, err
	}
	if namespace != "" {
		triples = add(triples, PredicateTermNamespace, namespace)
	}

	def, err := term.Definition()
	if err != nil {
		return nil, err
	}
	if def != nil {
		triples = add(triples, PredicateTermDefinition, def.Text)
	}

	synonyms, err := term.Synonyms()
	if err != nil {
		return nil, err
	}
	for _, syn := range synonyms {
		triples = add(triples, PredicateTermSynonym, syn.Text)
	}

	xrefs, err := term.Xrefs()
	if err != nil {
		return nil, err
	}
	for _, x := range xrefs {
		triples = add(triples, PredicateTermXref, x.ID)
	}

	subsets, err := term.Subsets()
	if err != nil {
		return nil, err
	}
	for _, subset := range subsets {
		triples = add(triples, PredicateTermSubset, subset)
	}

	obsolete, err := term.Obsolete()
	if err != nil {
		return nil, err
	}
	if obsolete {
		triples = add(triples, PredicateTermObsolete, true)
	}

	parents, err := term.Relationships(vocabulary.IsA)
	if err != nil {
		return nil, err
	}
	for _, parent := range parents {
		triples = add(triples, PredicateTermIsA, TermEntityID(parent))
	}

	return triples, nil
}

// TermEntityID generates a consistent entity ID for an ontology term.
// Format: ontograph.local.ontology.term.<id>
func TermEntityID(id string) string {
	return fmt.Sprintf("ontograph.local.ontology.term.%s", id)
}
